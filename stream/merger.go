package stream

import (
	"io"
	"sync"
)

// Merger fans N input sequences in to one output sequence through a
// shared bounded queue, one pump goroutine per input.
//
// The output holds, as a multiset, the concatenation of all inputs;
// lines from any single input keep their relative order, but no
// ordering holds across inputs.  Fairness is approximate: a fast
// producer blocks once the queue fills, leaving slots for the slow
// ones.
//
// Each pump signals completion on a shared alive-producer counter.
// Once the counter hits zero and the queue drains, the output reports
// end-of-sequence.  Closing the output interrupts all pumps and closes
// their inputs.
type Merger struct {
	inputs    []Sequence
	out       *Queue
	alive     *Counter
	startOnce sync.Once
}

// NewMerger returns a Merger over the given inputs with the given
// shared queue capacity (at least 1).
func NewMerger(capacity int, inputs ...Sequence) *Merger {
	return &Merger{
		inputs: inputs,
		out:    NewQueue(capacity),
		alive:  NewCounter(len(inputs)),
	}
}

// Merge starts the pumps (once) and returns the output sequence.
func (m *Merger) Merge() Sequence {
	m.startOnce.Do(m.start)
	return &queueSequence{q: m.out, onClose: func() {
		for _, in := range m.inputs {
			_ = in.Close()
		}
	}}
}

func (m *Merger) start() {
	for i := range m.inputs {
		go m.pump(i, m.inputs[i])
	}
	go func() {
		m.alive.WaitWhile(func(n int) bool { return n > 0 })
		logger.Debugw("merger: all producers done; closing output")
		m.out.Close()
	}()
}

func (m *Merger) pump(i int, in Sequence) {
	count := 0
	for {
		line, err := in.Next()
		if err != nil {
			if err != io.EOF {
				logger.Debugw("merger: input failed", "input", i, "err", err)
			}
			break
		}
		if !m.out.Put(line) {
			// Output was closed under us; stop pulling.
			break
		}
		count++
	}
	_ = in.Close()
	m.alive.Update(func(n int) int { return n - 1 })
	logger.Debugw("merger: pump done", "input", i, "lines", count)
}
