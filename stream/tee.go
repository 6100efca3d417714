package stream

import (
	"io"
	"sync"
)

// Tee duplicates one input sequence into N downstream sequences, each
// receiving every line in the original order.
//
// Like the Partitioner, a single pump goroutine pulls the input and
// blocking-puts each line into every downstream's bounded queue, so
// the slowest downstream paces the input.  Closing a downstream
// detaches it: its copies are dropped from then on, and once every
// downstream is closed the input itself is closed and the pump exits.
type Tee struct {
	in         Sequence
	queues     []*Queue
	closedDown *Counter
	startOnce  sync.Once
}

// NewTee returns a Tee copying in across n downstreams (at least 1)
// with per-downstream queue capacity q (at least 1).
func NewTee(in Sequence, n, q int) *Tee {
	if n < 1 {
		n = 1
	}
	queues := make([]*Queue, n)
	for i := range queues {
		queues[i] = NewQueue(q)
	}
	return &Tee{
		in:         in,
		queues:     queues,
		closedDown: NewCounter(0),
	}
}

// Sequences starts the pump (once) and returns the N downstream
// sequences.  Each may be consumed by its own goroutine.
func (t *Tee) Sequences() []Sequence {
	t.startOnce.Do(func() { go t.pump() })
	out := make([]Sequence, len(t.queues))
	for i := range t.queues {
		q := t.queues[i]
		out[i] = &queueSequence{q: q, onClose: func() { t.downstreamClosed() }}
	}
	return out
}

func (t *Tee) downstreamClosed() {
	t.closedDown.Update(func(n int) int { return n + 1 })
	if t.closedDown.Value() == len(t.queues) {
		// Nobody is listening anymore; release the input so the
		// pump can exit even on an infinite sequence.
		_ = t.in.Close()
	}
}

func (t *Tee) pump() {
	count, dropped := 0, 0
	for {
		line, err := t.in.Next()
		if err != nil {
			if err != io.EOF {
				logger.Debugw("tee: input failed", "err", err)
			}
			break
		}
		count++
		for _, q := range t.queues {
			if !q.Put(line) {
				dropped++
			}
		}
	}
	_ = t.in.Close()
	for _, q := range t.queues {
		q.Close()
	}
	logger.Debugw("tee: pump done", "lines", count, "dropped", dropped)
}
