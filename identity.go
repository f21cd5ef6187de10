package dqe

import (
	"log/slog"

	"github.com/pokanop/dqe/coalesce"
	"github.com/pokanop/dqe/gls"
)

// queueContext is the per-queue metadata installed at naming time: the
// resolved kind plus the queue's coalescing state. A context exists if and
// only if the queue has been named; it is replaced wholesale by SetName
// and never mutated in place.
type queueContext struct {
	kind  Kind
	state *coalesce.State
}

// SetName parses name into a [Kind] via [KindFromName] and installs a
// fresh context carrying it, replacing any existing one. Naming resets the
// queue's coalescing state: pending debounce handles from the previous
// context are cancelled and open throttle windows are dropped.
func (q *Queue) SetName(name string) {
	kind := KindFromName(name)

	q.ctxMu.Lock()
	old := q.qctx
	q.qctx = &queueContext{kind: kind, state: coalesce.NewState(q.logger)}
	q.ctxMu.Unlock()

	if old != nil {
		old.state.Reset()
	}
	q.logger.Debug("queue named",
		slog.String("queue_id", q.id),
		slog.String("name", name),
	)
}

// Name returns the queue's name, or false if the queue was never named.
func (q *Queue) Name() (string, bool) {
	q.ctxMu.RLock()
	defer q.ctxMu.RUnlock()
	if q.qctx == nil {
		return "", false
	}
	return q.qctx.kind.Name(), true
}

// Kind returns the queue's kind, or false if the queue was never named.
func (q *Queue) Kind() (Kind, bool) {
	q.ctxMu.RLock()
	defer q.ctxMu.RUnlock()
	if q.qctx == nil {
		return Kind{}, false
	}
	return q.qctx.kind, true
}

// IsCurrent reports whether the calling task is executing on a queue with
// this queue's name. Both names must resolve: an unnamed queue is never
// current, and no queue is current outside a managed task. Comparison is
// by name, so two queues sharing a custom name are mutually current.
func (q *Queue) IsCurrent() bool {
	name, ok := q.Name()
	if !ok {
		return false
	}
	current, ok := CurrentQueueName()
	return ok && current == name
}

// CurrentQueue returns the queue the calling task is presently executing
// on, or false when called outside any managed task. Custom-named queues
// resolve to a live handle just like the standard ones: the registration
// the runtime refreshes around every task body holds the queue itself.
func CurrentQueue() (*Queue, bool) {
	v, ok := gls.Top()
	if !ok {
		return nil, false
	}
	q, ok := v.(*Queue)
	return q, ok
}

// CurrentQueueName returns the name of the queue the calling task is
// presently executing on, or false if that queue was never named or the
// call occurs outside any managed task.
func CurrentQueueName() (string, bool) {
	q, ok := CurrentQueue()
	if !ok {
		return "", false
	}
	return q.Name()
}

// IsMainQueue reports whether the calling task is executing on the main
// queue.
func IsMainQueue() bool {
	name, ok := CurrentQueueName()
	return ok && name == nameMain
}
