package stream

import (
	"io"
	"sync"
)

// Partitioner fans one input sequence out to N downstream sequences,
// routing each line by a key function.  Lines with the same key modulo
// N always land in the same downstream, in their original relative
// order.
//
// A single pump goroutine pulls the input and blocking-puts each line
// into its partition's bounded queue; a slow downstream therefore
// applies backpressure all the way to the input.  Closing a downstream
// detaches it: lines destined for it are dropped from then on, while
// the open downstreams keep receiving everything meant for them.  Once
// every downstream is closed, the input itself is closed and the pump
// exits.
type Partitioner struct {
	in         Sequence
	queues     []*Queue
	key        func(string) int
	closedDown *Counter
	startOnce  sync.Once
}

// NewPartitioner returns a Partitioner splitting in across n
// downstreams (at least 1) with per-partition queue capacity q
// (at least 1), keyed by key.
func NewPartitioner(in Sequence, n, q int, key func(string) int) *Partitioner {
	if n < 1 {
		n = 1
	}
	queues := make([]*Queue, n)
	for i := range queues {
		queues[i] = NewQueue(q)
	}
	return &Partitioner{
		in:         in,
		queues:     queues,
		key:        key,
		closedDown: NewCounter(0),
	}
}

// Sequences starts the pump (once) and returns the N downstream
// sequences.  Each may be consumed by its own goroutine.
func (p *Partitioner) Sequences() []Sequence {
	p.startOnce.Do(func() { go p.pump() })
	out := make([]Sequence, len(p.queues))
	for i := range p.queues {
		q := p.queues[i]
		out[i] = &queueSequence{q: q, onClose: func() { p.downstreamClosed() }}
	}
	return out
}

func (p *Partitioner) downstreamClosed() {
	p.closedDown.Update(func(n int) int { return n + 1 })
	if p.closedDown.Value() == len(p.queues) {
		// Nobody is listening anymore; release the input so the
		// pump can exit even on an infinite sequence.
		_ = p.in.Close()
	}
}

func (p *Partitioner) pump() {
	n := len(p.queues)
	count, dropped := 0, 0
	for {
		line, err := p.in.Next()
		if err != nil {
			if err != io.EOF {
				logger.Debugw("partitioner: input failed", "err", err)
			}
			break
		}
		count++
		i := ((p.key(line) % n) + n) % n
		if !p.queues[i].Put(line) {
			dropped++
		}
	}
	_ = p.in.Close()
	for _, q := range p.queues {
		q.Close()
	}
	logger.Debugw("partitioner: pump done", "lines", count, "dropped", dropped)
}
