package lineio

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"go.uber.org/multierr"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/dakusui/cmdstreamer/stream"
)

// NewSink wraps a byte sink as a line consumer.  Every accepted line
// is encoded with enc (nil writes the bytes as-is), terminated per
// terminated(), and flushed immediately.  End flushes whatever is
// pending and closes the sink; calling End again is harmless.
//
// A non-zero terminator is appended before the newline when the line
// doesn't already carry one, a convenience for shells like mysql that
// want such things.
func NewSink(w io.WriteCloser, enc encoding.Encoding, terminator byte) stream.Sink {
	s := &writerSink{raw: w, terminator: terminator}
	if enc != nil {
		s.enc = transform.NewWriter(w, enc.NewEncoder())
		s.buf = bufio.NewWriter(s.enc)
	} else {
		s.buf = bufio.NewWriter(w)
	}
	return s
}

type writerSink struct {
	mu         sync.Mutex
	raw        io.WriteCloser
	enc        io.WriteCloser
	buf        *bufio.Writer
	terminator byte
	ended      bool
}

func (s *writerSink) Accept(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return fmt.Errorf("accept of %q after sink ended", line)
	}
	if _, err := s.buf.Write(terminated(line, s.terminator)); err != nil {
		return err
	}
	return s.buf.Flush()
}

func (s *writerSink) End() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return nil
	}
	s.ended = true
	err := s.buf.Flush()
	if s.enc != nil {
		err = multierr.Append(err, s.enc.Close())
	}
	return multierr.Append(err, s.raw.Close())
}
