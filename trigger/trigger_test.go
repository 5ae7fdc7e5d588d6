package trigger_test

import (
	"sync"
	"testing"
	"time"

	"github.com/creachadair/handoff/trigger"
	"github.com/fortytw2/leaktest"
)

func TestCond(t *testing.T) {
	defer leaktest.Check(t)()

	checkNotReady := func(t *testing.T, ch <-chan struct{}) {
		t.Helper()
		select {
		case <-ch:
			t.Error("Channel is ready when it should not be")
		default:
		}
	}

	t.Run("Signal", func(t *testing.T) {
		// Start up a bunch of tasks that wait on a condition, signal it, and
		// verify that it woke them all up.
		c := trigger.New()
		checkNotReady(t, c.Ready())

		const numTasks = 5

		ok := make([]bool, numTasks)
		var start, stop sync.WaitGroup

		for i := range numTasks {
			start.Add(1)
			stop.Add(1)
			go func() {
				defer stop.Done()
				ch := c.Ready()
				start.Done()
				<-ch
				ok[i] = true
			}()
		}

		// Wait until all the tasks have their channel.
		start.Wait()

		c.Signal()

		// After the signal, new arrivals must wait for another one.
		checkNotReady(t, c.Ready())

		stop.Wait()
		for i, b := range ok {
			if !b {
				t.Errorf("Task %d did not report success", i+1)
			}
		}
	})

	t.Run("Late", func(t *testing.T) {
		var c trigger.Cond // zero value is ready for use

		// A signal with no waiters is not remembered.
		c.Signal()
		c.Signal()
		late := c.Ready()
		checkNotReady(t, late)

		done := make(chan struct{})
		go func() { <-late; close(done) }()

		c.Signal()
		select {
		case <-done:
			t.Log("OK, late waiter saw the next signal")
		case <-time.After(time.Second):
			t.Error("Late waiter did not see the signal")
		}
	})

	t.Run("SameChannel", func(t *testing.T) {
		c := trigger.New()

		// Between signals, all callers share one channel.
		if a, b := c.Ready(), c.Ready(); a != b {
			t.Error("Ready returned different channels without a signal")
		}
		a := c.Ready()
		c.Signal()
		if b := c.Ready(); a == b {
			t.Error("Ready returned the same channel after a signal")
		}
	})
}
