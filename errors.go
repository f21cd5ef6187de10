package dqe

import "errors"

var (
	// ErrUnnamedQueue is the panic value raised when Debounce or Throttle
	// is called on a queue that was never named. Coalescing state lives in
	// the queue's context, which only exists once the queue has a name;
	// calling without one is a programming error, not a runtime condition.
	ErrUnnamedQueue = errors.New("dqe: coalescing on an unnamed queue")

	// ErrSyncDeadlock is the panic value raised by SafeSync when the target
	// serial queue is already occupied by the calling context through an
	// intermediate queue. Blocking would never return; the precondition
	// turns the hang into a fault at the call site.
	ErrSyncDeadlock = errors.New("dqe: safe sync would deadlock: serial queue occupied by the calling context")
)
