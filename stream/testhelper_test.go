package stream_test

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dakusui/cmdstreamer/stream"
)

const (
	timeOutLong = 2 * time.Second
	tick        = 5 * time.Millisecond
)

// dataLines generates ["prefix-0" .. "prefix-{n-1}"].
func dataLines(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s-%d", prefix, i)
	}
	return out
}

func dataStream(prefix string, n int) stream.Sequence {
	return stream.Of(dataLines(prefix, n)...)
}

// endless is an infinite sequence, for close-liveness tests.
type endless struct {
	mu     sync.Mutex
	prefix string
	n      int
	closed bool
}

func (e *endless) Next() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return "", io.EOF
	}
	e.n++
	return fmt.Sprintf("%s-%d", e.prefix, e.n), nil
}

func (e *endless) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	return nil
}

func (e *endless) isClosed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// subsequenceOf reports whether sub appears in full in order.
func subsequenceOf(sub, full []string) bool {
	i := 0
	for _, x := range full {
		if i < len(sub) && sub[i] == x {
			i++
		}
	}
	return i == len(sub)
}

// multiset counts occurrences per line.
func multiset(lines []string) map[string]int {
	m := map[string]int{}
	for _, x := range lines {
		m[x]++
	}
	return m
}

// drain consumes a sequence to the end.
func drain(s stream.Sequence) []string {
	var out []string
	for {
		line, err := s.Next()
		if err != nil {
			return out
		}
		out = append(out, line)
	}
}
