package cmdstreamer

import (
	"go.uber.org/zap"

	"github.com/dakusui/cmdstreamer/stream"
)

// logger is a nop unless verbose logging is enabled.
var logger = zap.NewNop().Sugar()

// VerboseLoggingEnable enables detailed logging, here and in the
// stream package, useful when chasing a pipeline that won't finish.
func VerboseLoggingEnable() {
	l := zap.Must(zap.NewDevelopment()).Sugar()
	logger = l
	stream.SetLogger(l)
}

// VerboseLoggingDisable disables detailed logging.
func VerboseLoggingDisable() {
	logger = zap.NewNop().Sugar()
	stream.SetLogger(nil)
}
