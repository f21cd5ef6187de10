// Package task defines the deferred-cancellable work unit used by delayed
// submission and keyed coalescing.
//
// A [Handle] moves through at most one of two paths:
//
//	pending → cancelled
//	pending → running → done
//
// Transitions are a single compare-and-swap, so each handle executes at
// most once, cancellation of a handle that already fired is a benign no-op,
// and no registration generation counter is needed: superseding a handle
// simply cancels it and registers a fresh one.
package task

import (
	"sync/atomic"
	"time"
)

const (
	statePending int32 = iota
	stateCancelled
	stateRunning
	stateDone
)

// Handle is a unit of work that can be cancelled before it runs and
// observed for completion. Handles are safe for concurrent use.
type Handle struct {
	fn    func()
	state atomic.Int32
	timer *time.Timer
	done  chan struct{}
}

// New creates a pending handle wrapping fn.
func New(fn func()) *Handle {
	return &Handle{fn: fn, done: make(chan struct{})}
}

// After creates a pending handle wrapping fn and arms a timer that hands
// the handle to submit once d elapses. Cancelling before the deadline
// stops the timer; a cancel that loses the race to the timer is still
// honored because Perform checks state before running.
func After(d time.Duration, fn func(), submit func(func())) *Handle {
	h := New(fn)
	h.timer = time.AfterFunc(d, func() { submit(h.Perform) })
	return h
}

// Cancel moves a pending handle to cancelled and reports whether it won.
// Cancelling a handle that is already running, done, or cancelled is a
// no-op returning false; an in-flight body is never interrupted.
func (h *Handle) Cancel() bool {
	if !h.state.CompareAndSwap(statePending, stateCancelled) {
		return false
	}
	if h.timer != nil {
		h.timer.Stop()
	}
	close(h.done)
	return true
}

// Cancelled reports whether the handle was cancelled before it ran.
func (h *Handle) Cancelled() bool {
	return h.state.Load() == stateCancelled
}

// Perform runs the body if the handle is still pending, otherwise does
// nothing. The body runs on the calling goroutine. Completion is signalled
// even if the body panics.
func (h *Handle) Perform() {
	if !h.state.CompareAndSwap(statePending, stateRunning) {
		return
	}
	defer func() {
		h.state.Store(stateDone)
		close(h.done)
	}()
	h.fn()
}

// Done returns a channel closed once the handle has finished running or
// has been cancelled.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Wait blocks until the handle has finished running or been cancelled.
func (h *Handle) Wait() { <-h.done }
