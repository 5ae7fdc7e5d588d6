// Package trigger implements an edge-triggered broadcast condition.
package trigger

import "sync"

// Cond is an edge-triggered condition shared by multiple goroutines.
// Waiters obtain a channel from Ready and block on it; a call to Signal
// closes that channel, waking all of them at once, and resets the condition
// so that later calls to Ready wait for a subsequent Signal.
//
// A zero Cond is ready for use, but must not be copied after any of its
// methods have been called.
type Cond struct {
	μ  sync.Mutex
	ch chan struct{} // lazily allocated by the first waiter
}

// New constructs a new Cond with no pending waiters.
func New() *Cond { return new(Cond) }

// Signal wakes all goroutines waiting on a channel from Ready, and resets the
// condition. If nobody has called Ready since the last Signal, Signal has no
// effect.
func (c *Cond) Signal() {
	c.μ.Lock()
	defer c.μ.Unlock()
	if c.ch != nil {
		close(c.ch)
		c.ch = nil
	}
}

// Ready returns a channel that is closed by the next call to Signal.
func (c *Cond) Ready() <-chan struct{} {
	c.μ.Lock()
	defer c.μ.Unlock()
	if c.ch == nil {
		c.ch = make(chan struct{})
	}
	return c.ch
}
