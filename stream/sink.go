package stream

import "sync"

// Sink consumes lines from a Sequence.
//
// Accept is handed one line at a time, in producer order.  End marks
// the end of input and releases anything the sink holds open; it is
// idempotent, and no Accept may follow it.
type Sink interface {
	Accept(line string) error
	End() error
}

// SinkFunc adapts a plain function to a Sink with a no-op End.
type SinkFunc func(string) error

func (f SinkFunc) Accept(line string) error { return f(line) }
func (f SinkFunc) End() error               { return nil }

// Discard is a Sink that does nothing.
var Discard Sink = &discard{}

type discard struct{}

func (d *discard) Accept(string) error { return nil }
func (d *discard) End() error          { return nil }

// Recall remembers all the lines it sees.  Safe for concurrent use.
type Recall struct {
	mu    sync.Mutex
	data  []string
	ended bool
}

func (r *Recall) Accept(line string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, line)
	return nil
}

func (r *Recall) End() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ended = true
	return nil
}

// Lines returns a copy of everything accepted so far.
func (r *Recall) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.data))
	copy(out, r.data)
	return out
}

// Ended reports whether End has been called.
func (r *Recall) Ended() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ended
}

func (r *Recall) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data, r.ended = nil, false
}
