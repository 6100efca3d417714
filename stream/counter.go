package stream

import "sync"

// Counter is a monitor-guarded integer used for completion signalling
// between pump goroutines and whoever awaits them.  Update mutates the
// value and wakes all waiters; WaitWhile sleeps until a predicate over
// the value stops holding.  Spurious wakeups are tolerated by the
// wait loop.
type Counter struct {
	mu   sync.Mutex
	cond *sync.Cond
	n    int
}

// NewCounter returns a Counter starting at n.
func NewCounter(n int) *Counter {
	c := &Counter{n: n}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// Update applies f to the value under the monitor, then wakes all
// goroutines blocked in WaitWhile.
func (c *Counter) Update(f func(int) int) {
	c.mu.Lock()
	c.n = f(c.n)
	c.cond.Broadcast()
	c.mu.Unlock()
}

// WaitWhile blocks until pred(value) is false.
func (c *Counter) WaitWhile(pred func(int) bool) {
	c.mu.Lock()
	for pred(c.n) {
		c.cond.Wait()
	}
	c.mu.Unlock()
}

// Value returns the current value.
func (c *Counter) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}
