package stream

import (
	"fmt"
	"io"
	"sync"
)

// Route binds one producer Sequence to one consumer Sink inside a
// Selector.  A critical route is one whose completion the Selector
// waits for; non-critical routes are cut off once every critical
// route has drained.
type Route struct {
	// Name appears in log output.  Optional.
	Name string
	// Producer is pulled by a dedicated goroutine until it ends.
	Producer Sequence
	// Consumer receives every line of Producer, in order, and has
	// End called exactly once when the route winds down.
	Consumer Sink
	// Critical marks this route as one that drives termination.
	Critical bool
}

// Selector pumps several producer sequences into their consumers
// concurrently, one goroutine per route.
//
// Wait returns once every critical route has seen the end of its
// producer.  At that point the producers of any still-live routes are
// closed, which their goroutines observe as end-of-sequence.  The
// first error raised by any route (a failed read, a consumer that
// returned an error) is what Wait returns; later errors from sibling
// routes are logged and suppressed.
type Selector struct {
	routes    []Route
	remaining *Counter
	wg        sync.WaitGroup
	startOnce sync.Once

	errMu    sync.Mutex
	firstErr error
}

// NewSelector returns a Selector over the given routes.  At least one
// route must be critical; Wait reports an error otherwise.
func NewSelector(routes ...Route) *Selector {
	return &Selector{routes: routes}
}

// Start spawns the route workers.  It is idempotent, and implied by
// Wait.
func (s *Selector) Start() {
	s.startOnce.Do(func() {
		critical := 0
		for i := range s.routes {
			if s.routes[i].Critical {
				critical++
			}
		}
		s.remaining = NewCounter(critical)
		for i := range s.routes {
			s.wg.Add(1)
			go s.run(i, s.routes[i])
		}
	})
}

// Wait runs the selector to completion: it blocks until every
// critical route's producer has ended, interrupts the surviving
// routes, joins all workers, and returns the first recorded error.
func (s *Selector) Wait() error {
	if err := s.validate(); err != nil {
		return err
	}
	s.Start()
	s.remaining.WaitWhile(func(n int) bool { return n > 0 })
	logger.Debugw("selector: critical routes drained; interrupting the rest")
	s.interrupt()
	s.wg.Wait()
	s.errMu.Lock()
	defer s.errMu.Unlock()
	return s.firstErr
}

func (s *Selector) validate() error {
	for i := range s.routes {
		if s.routes[i].Critical {
			return nil
		}
	}
	return fmt.Errorf("selector needs at least one critical route")
}

// run pumps one route until its producer ends or fails.
func (s *Selector) run(i int, r Route) {
	defer s.wg.Done()
	name := r.Name
	if name == "" {
		name = fmt.Sprintf("route-%d", i)
	}
	logger.Debugw("selector: route starting", "route", name)
	count := 0
	for {
		line, err := r.Producer.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.record(fmt.Errorf("reading %s; %w", name, err))
			break
		}
		count++
		if err = r.Consumer.Accept(line); err != nil {
			s.record(fmt.Errorf("consuming line %d of %s; %w", count, name, err))
			break
		}
	}
	if err := r.Consumer.End(); err != nil {
		s.record(fmt.Errorf("ending consumer of %s; %w", name, err))
	}
	if r.Critical {
		s.remaining.Update(func(n int) int { return n - 1 })
	}
	logger.Debugw("selector: route done", "route", name, "lines", count)
}

// record keeps the first error and interrupts the other routes so the
// whole selector winds down.  Later errors are logged only.
func (s *Selector) record(err error) {
	s.errMu.Lock()
	if s.firstErr == nil {
		s.firstErr = err
		s.errMu.Unlock()
		logger.Debugw("selector: recording first error", "err", err)
		s.interrupt()
		return
	}
	s.errMu.Unlock()
	logger.Debugw("selector: suppressing sibling error", "err", err)
}

// interrupt closes every producer.  Workers blocked in Next observe
// end-of-sequence and exit.  Close is idempotent on every Sequence,
// so calling this more than once is harmless.
func (s *Selector) interrupt() {
	for i := range s.routes {
		if err := s.routes[i].Producer.Close(); err != nil {
			logger.Debugw("selector: producer close failed", "route", i, "err", err)
		}
	}
}
