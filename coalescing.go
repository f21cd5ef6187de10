package dqe

import "time"

// Debounce defers fn by interval under key: any further call with the same
// key before the deadline cancels the pending execution and restarts the
// deadline, so of a burst only the last call's fn runs, one full interval
// after the burst ends. Distinct keys — and the same key on distinct
// queues — debounce independently.
//
// The queue must be named; calling Debounce on an unnamed queue panics
// with [ErrUnnamedQueue]. The call never blocks.
func (q *Queue) Debounce(interval time.Duration, key any, fn func()) {
	// The registry read lock is held across the registration so a
	// concurrent SetName serializes against it: either the rename waits
	// and its reset cancels this handle, or it completes first and the
	// handle lands in the fresh context. AsyncAfter never blocks, so no
	// lock is held across user work.
	q.ctxMu.RLock()
	defer q.ctxMu.RUnlock()
	if q.qctx == nil {
		panic(ErrUnnamedQueue)
	}
	q.qctx.state.Debounce(q, interval, key, fn)
}

// Throttle runs fn immediately on the first call under key, then drops
// every further call with the same key until interval has elapsed after
// the admitted body completed. When async is true the admitted body is
// dispatched fire-and-forget; when false it is dispatched through
// [Queue.SafeSync] and the call blocks until the body completes (or
// returns immediately if the call was suppressed).
//
// The queue must be named; calling Throttle on an unnamed queue panics
// with [ErrUnnamedQueue].
func (q *Queue) Throttle(interval time.Duration, key any, async bool, fn func()) {
	// Admission runs under the registry read lock for the same rename
	// serialization as Debounce; dispatch may block, so it happens after
	// the lock is released.
	q.ctxMu.RLock()
	if q.qctx == nil {
		q.ctxMu.RUnlock()
		panic(ErrUnnamedQueue)
	}
	body, admitted := q.qctx.state.Admit(interval, key, fn)
	q.ctxMu.RUnlock()

	if !admitted {
		return
	}
	if async {
		q.Async(body)
		return
	}
	q.SafeSync(body)
}
