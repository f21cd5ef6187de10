package dqe

import (
	"github.com/pokanop/dqe/gls"
	"github.com/pokanop/dqe/task"
)

// SafeSync executes fn exactly once, synchronously with respect to the
// caller. If the caller is already executing on this queue the body runs
// inline on the calling stack with no submission — the deadlock-avoidance
// path. Otherwise the call blocks until the body has completed on the
// queue.
//
// Before blocking, SafeSync asserts that the target serial queue is not
// already occupied by the calling context through an intermediate queue;
// that reentrancy is invisible to the identity check and would block
// forever, so it panics with [ErrSyncDeadlock] instead.
func (q *Queue) SafeSync(fn func()) {
	if q.IsCurrent() {
		q.runSync(fn)
		return
	}
	q.assertNotOccupied()
	q.Sync(fn)
}

// SafeSyncTask is SafeSync over a pre-built work unit. The inline-vs-
// blocking policy is identical; a handle that was already cancelled or
// performed is a no-op either way.
func (q *Queue) SafeSyncTask(h *task.Handle) {
	if q.IsCurrent() {
		q.runSync(h.Perform)
		return
	}
	q.assertNotOccupied()
	q.Sync(h.Perform)
}

// assertNotOccupied panics if this serial queue appears anywhere in the
// calling goroutine's queue stack. A serial queue deeper in the stack can
// never grant another turn to this call chain — its turn holder is an
// ancestor frame of this very call — so blocking on it cannot return.
// Concurrent queues can always admit another body and are exempt.
func (q *Queue) assertNotOccupied() {
	if !q.serial {
		return
	}
	for _, v := range gls.Stack() {
		if occupant, ok := v.(*Queue); ok && occupant == q {
			panic(ErrSyncDeadlock)
		}
	}
}
