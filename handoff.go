// Package handoff implements a single-slot blocking rendezvous between a
// producer and a consumer.
package handoff

import (
	"context"
	"sync"

	"github.com/creachadair/handoff/trigger"
)

// A Cell is a container for at most one value of type T, shared by a producer
// and a consumer. The producer calls [Cell.Put] to store a value, blocking
// while the cell is full; the consumer calls [Cell.Take] to remove the value,
// blocking while the cell is empty. Each value put is taken exactly once, in
// the order it was put.
//
// Every change of state wakes all goroutines blocked on the cell, and each
// re-checks its condition before proceeding, so extra producers or consumers
// are safe, though no fairness among them is promised.
//
// A zero Cell is empty and ready for use, but must not be copied after its
// first use.
type Cell[T any] struct {
	// μ protects the fields below. The value and full fields are always
	// updated together.
	μ     sync.Mutex
	value T    // meaningful only when full is true
	full  bool // a value is present and not yet taken
	waits int  // number of times a caller has suspended

	// Signaled on every change to full.
	changed trigger.Cond
}

// New constructs a new empty [Cell].
func New[T any]() *Cell[T] { return new(Cell[T]) }

// Put stores v in c, blocking until c is empty.
// Put does not return until v is visible to a subsequent [Cell.Take].
func (c *Cell[T]) Put(v T) { _ = c.PutContext(context.Background(), v) }

// Take removes and returns the value stored in c, blocking until c is full.
func (c *Cell[T]) Take() T {
	v, _ := c.TakeContext(context.Background())
	return v
}

// PutContext stores v in c, blocking until c is empty or ctx ends. If ctx
// ends before v is stored, PutContext reports ctx.Err() and c is not
// modified; otherwise it returns nil.
//
// The context is only consulted while waiting: If c is empty when
// PutContext is called, v is stored even if ctx has already ended.
func (c *Cell[T]) PutContext(ctx context.Context, v T) error {
	c.μ.Lock()
	defer c.μ.Unlock()
	if err := c.waitLocked(ctx, true); err != nil {
		return err
	}
	c.setLocked(v, true)
	return nil
}

// TakeContext removes and returns the value stored in c, blocking until c is
// full or ctx ends. If ctx ends first, TakeContext returns a zero value and
// ctx.Err(), and c is not modified.
//
// As with [Cell.PutContext], ctx is only consulted while waiting.
func (c *Cell[T]) TakeContext(ctx context.Context) (T, error) {
	c.μ.Lock()
	defer c.μ.Unlock()
	if err := c.waitLocked(ctx, false); err != nil {
		var zero T
		return zero, err
	}
	return c.takeLocked(), nil
}

// TryPut stores v in c if c is empty, and reports whether it did so.
// TryPut does not block.
func (c *Cell[T]) TryPut(v T) bool {
	c.μ.Lock()
	defer c.μ.Unlock()
	if c.full {
		return false
	}
	c.setLocked(v, true)
	return true
}

// TryTake removes and returns the value stored in c if c is full, and reports
// whether a value was taken. TryTake does not block.
func (c *Cell[T]) TryTake() (T, bool) {
	c.μ.Lock()
	defer c.μ.Unlock()
	if !c.full {
		var zero T
		return zero, false
	}
	return c.takeLocked(), true
}

// Full reports whether c currently holds a value. The result is advisory,
// since another goroutine may change the state of c as soon as Full returns.
func (c *Cell[T]) Full() bool {
	c.μ.Lock()
	defer c.μ.Unlock()
	return c.full
}

// waitLocked blocks while c.full == busy, or until ctx ends.
// The caller must hold c.μ, which is released while waiting and re-acquired
// before waitLocked returns, whether or not it reports an error.
func (c *Cell[T]) waitLocked(ctx context.Context, busy bool) error {
	for c.full == busy {
		// N.B. Get the ready channel before releasing the lock, so that a state
		// change between the unlock and the select cannot be missed.
		ready := c.changed.Ready()
		c.waits++
		c.μ.Unlock()

		select {
		case <-ctx.Done():
			c.μ.Lock()
			return ctx.Err()
		case <-ready:
		}
		c.μ.Lock()
	}
	return nil
}

func (c *Cell[T]) takeLocked() T {
	v := c.value
	var zero T
	c.setLocked(zero, false)
	return v
}

func (c *Cell[T]) setLocked(v T, full bool) {
	c.value, c.full = v, full
	c.changed.Signal()
}
