// Package dqe augments task-execution queues with deterministic identity,
// deadlock-avoiding synchronous dispatch, and keyed work coalescing.
//
// Queues are serial (FIFO, one task at a time) or concurrent. Every task
// the runtime executes registers its queue for the duration of the body,
// so code in arbitrary call frames can ask "what queue am I on":
//
//	q := dqe.New(dqe.WithName("render"))
//	q.Async(func() {
//	    name, _ := dqe.CurrentQueueName() // "render"
//	    _ = q.IsCurrent()                 // true
//	})
//
// # Identity
//
// Naming a queue (at construction via [WithName], or later via
// [Queue.SetName]) attaches its context: reserved names resolve to the six
// standard kinds, anything else to a custom kind carrying the name
// verbatim. [Initialize] creates the six pre-named singletons — the serial
// main queue and the five concurrent quality-of-service globals — and the
// accessors [Main], [Background], [Utility], [Default], [UserInitiated]
// and [UserInteractive] return them.
//
// Identity queries never fail: [CurrentQueue], [CurrentQueueName] and
// [Queue.IsCurrent] report absence (false) for an unnamed queue or a call
// outside any managed task. [CurrentQueue] resolves custom-named queues to
// a live handle just like standard ones, because the per-task registration
// holds the queue itself. [Queue.IsCurrent] compares names, so two queues
// sharing a custom name are mutually current.
//
// # Safe synchronous dispatch
//
// [Queue.Sync] from a task already on the same serial queue blocks
// forever. [Queue.SafeSync] detects that reentrancy and runs the body
// inline on the calling stack instead; when the target serial queue is
// occupied deeper in the calling context it panics with [ErrSyncDeadlock]
// rather than hanging. [Queue.SafeSyncTask] applies the same policy to a
// pre-built [task.Handle].
//
// # Coalescing
//
// [Queue.Debounce] collapses a burst of calls under one identifier into a
// single delayed execution of the most recent call, restarting the delay
// on every call. [Queue.Throttle] admits the first call immediately and
// suppresses the rest until a cooldown window elapses. Both key strictly
// by (queue, identifier) and require the queue to be named; misuse panics
// with [ErrUnnamedQueue].
//
//	q.Debounce(300*time.Millisecond, "save", flushDocument)
//	q.Throttle(time.Second, "scroll", true, updateIndicator)
//
// # Admission control
//
// [WithMaxConcurrency] caps a concurrent queue's parallelism and
// [WithRateLimit] applies a token-bucket rate to task admission; neither
// changes submission semantics — Async never blocks the caller.
package dqe
