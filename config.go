package cmdstreamer

import (
	"golang.org/x/text/encoding"

	"github.com/dakusui/cmdstreamer/stream"
)

// Config captures all parameters to New.  The zero value is usable;
// every field has a default applied on use.
type Config struct {
	// Stdin is the sequence of lines fed to the child's stdin.
	// When it ends, the child's stdin is closed so the child sees
	// EOF.  Default: an empty sequence (immediate EOF).
	Stdin stream.Sequence

	// Charset encodes stdin and decodes stdout and stderr.  A nil
	// Charset uses the platform default, which for every platform
	// Go targets means the bytes pass through untouched (UTF-8).
	// Use lineio.Charset to look one up by name.
	Charset encoding.Encoding

	// StdoutTransformer is applied to the child's stdout sequence
	// before it reaches StdoutConsumer.  Default: identity.
	StdoutTransformer stream.Transformer

	// StdoutConsumer is the terminal sink for stdout lines.  Its
	// selector route is the critical one: the pipeline is complete
	// when the child's stdout has drained, no matter how long the
	// caller wanted to keep writing input.  Default: discard.
	StdoutConsumer stream.Sink

	// StderrTransformer is applied to the child's stderr sequence
	// before it reaches StderrConsumer.  Default: drop everything.
	StderrTransformer stream.Transformer

	// StderrConsumer is the terminal sink for stderr lines, on a
	// non-critical route.  Default: discard.
	StderrConsumer stream.Sink

	// CommandTerminator, if not 0, is appended to the end of every
	// non-empty stdin line that doesn't already end with it, before
	// the newline.  This is a convenience for shells like mysql that
	// want such things.  Example: ';'
	CommandTerminator byte

	// WorkingDir is the working directory of the child process.
	// Default: inherited from this process.
	WorkingDir string

	// StdoutCapacity, when positive, lets the stdout route read
	// ahead of its consumer by up to this many lines through a
	// bounded queue with its own pump.  Default 0: the route pulls
	// the pipe directly and the OS pipe buffer is the only slack.
	StdoutCapacity int

	// StderrCapacity is like StdoutCapacity, for stderr.
	StderrCapacity int
}

func (c *Config) setDefaults() {
	if c.Stdin == nil {
		c.Stdin = stream.Empty()
	}
	if c.StdoutTransformer == nil {
		c.StdoutTransformer = stream.Identity
	}
	if c.StdoutConsumer == nil {
		c.StdoutConsumer = stream.Discard
	}
	if c.StderrTransformer == nil {
		c.StderrTransformer = stream.DropAll
	}
	if c.StderrConsumer == nil {
		c.StderrConsumer = stream.Discard
	}
}
