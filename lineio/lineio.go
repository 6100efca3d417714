// Package lineio adapts raw byte streams to and from the line
// sequences of the stream package, decoding and encoding with a
// caller-chosen character set.
package lineio

import (
	"bufio"
	"io"
	"sync"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/dakusui/cmdstreamer/stream"
)

const (
	// scanInitialBufferSize is the initial buffer of the line scanner.
	scanInitialBufferSize = 64 * 1024
	// scanMaxBufferSize bounds how long a single line may be.
	scanMaxBufferSize = 1024 * 1024
)

// NewSequence wraps a byte source as a lazy sequence of lines, one
// line per Next, decoded with enc.  A nil enc reads the bytes as-is
// (the platform default on every platform Go targets is UTF-8).
//
// The source is read through a large buffer but yielded a line at a
// time.  Closing the sequence closes the source, which unblocks a
// Next stuck in a read; that Next then reports end-of-sequence rather
// than an error.
func NewSequence(r io.ReadCloser, enc encoding.Encoding) stream.Sequence {
	var src io.Reader = r
	if enc != nil {
		src = transform.NewReader(r, enc.NewDecoder())
	}
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, scanInitialBufferSize), scanMaxBufferSize)
	return &readerSequence{raw: r, scanner: scanner}
}

type readerSequence struct {
	mu      sync.Mutex
	raw     io.ReadCloser
	scanner *bufio.Scanner
	closed  bool
}

func (s *readerSequence) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *readerSequence) Next() (string, error) {
	if s.isClosed() {
		return "", io.EOF
	}
	if s.scanner.Scan() {
		return s.scanner.Text(), nil
	}
	err := s.scanner.Err()
	if err == nil || s.isClosed() {
		// Clean EOF, or a read failure we caused by closing the
		// source out from under a blocked Scan.
		return "", io.EOF
	}
	return "", err
}

func (s *readerSequence) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()
	return s.raw.Close()
}
