package stream

import "go.uber.org/zap"

// logger narrates pump and selector activity.  It's a nop unless
// SetLogger installs something chattier.
var logger = zap.NewNop().Sugar()

// SetLogger replaces the package logger.  Pass nil to silence it.
func SetLogger(l *zap.SugaredLogger) {
	if l == nil {
		logger = zap.NewNop().Sugar()
		return
	}
	logger = l
}
