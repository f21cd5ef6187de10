package dqe

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"go.jetify.com/typeid/v2"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/pokanop/dqe/gls"
	"github.com/pokanop/dqe/task"
)

// newQueueID generates a TypeID with the "queue" prefix.
// It panics on an invalid prefix (programming error).
func newQueueID() string {
	tid, err := typeid.Generate("queue")
	if err != nil {
		panic(fmt.Sprintf("dqe: queue id: %v", err))
	}
	return tid.String()
}

// item is one entry in a serial queue's run list. Async items carry the
// body; sync items carry a turn/done channel pair instead, and the body
// runs on the submitting goroutine once the worker grants the turn.
type item struct {
	fn   func()
	turn chan struct{}
	done chan struct{}
}

// Queue is a task-execution queue. Serial queues run one task at a time in
// submission order on a dedicated worker goroutine; concurrent queues run
// tasks in parallel, optionally gated by a concurrency cap and a
// token-bucket rate limit.
//
// Queues live for the life of the process, like the platform queues they
// model: there is no teardown operation. All methods are safe for
// concurrent use.
type Queue struct {
	id     string
	serial bool
	logger *slog.Logger

	limiter *rate.Limiter
	sem     *semaphore.Weighted

	// Identity context. Write-locked by SetName, read-locked by identity
	// queries and coalescing context resolution. Nil until named.
	ctxMu sync.RWMutex
	qctx  *queueContext

	// Serial run list. The worker goroutine starts lazily on first
	// submission and then runs for the life of the queue.
	mu      sync.Mutex
	cond    *sync.Cond
	items   []*item
	started bool

	// Construction-time settings.
	initialName string
	maxConc     int
	rateLimit   float64
	rateBurst   int
}

// New creates a queue. Queues are serial and unnamed by default; see the
// options for concurrent execution, naming, and admission control.
func New(opts ...Option) *Queue {
	q := &Queue{
		id:     newQueueID(),
		serial: true,
		logger: slog.Default(),
	}
	q.cond = sync.NewCond(&q.mu)
	for _, opt := range opts {
		opt(q)
	}

	if !q.serial && q.maxConc > 0 {
		q.sem = semaphore.NewWeighted(int64(q.maxConc))
	}
	if q.rateLimit > 0 {
		burst := q.rateBurst
		if burst <= 0 {
			burst = 1
		}
		q.limiter = rate.NewLimiter(rate.Limit(q.rateLimit), burst)
	}
	if q.initialName != "" {
		q.SetName(q.initialName)
	}
	return q
}

// ID returns the queue's unique identifier.
func (q *Queue) ID() string { return q.id }

// Serial reports whether the queue runs tasks one at a time.
func (q *Queue) Serial() bool { return q.serial }

// String implements fmt.Stringer.
func (q *Queue) String() string {
	if name, ok := q.Name(); ok {
		return fmt.Sprintf("dqe.Queue(%s %q)", q.id, name)
	}
	return fmt.Sprintf("dqe.Queue(%s)", q.id)
}

// Async submits fn for fire-and-forget execution. It never blocks the
// caller; admission control applies when the task is picked up, not at
// submission.
func (q *Queue) Async(fn func()) {
	if q.serial {
		q.enqueue(&item{fn: fn})
		return
	}
	go func() {
		q.admit()
		defer q.release()
		q.runAsync(fn)
	}()
}

// Sync submits fn and blocks until it has completed. The body executes on
// the calling goroutine once the queue grants it a turn, so identity
// resolution nests correctly across sync dispatch. Calling Sync from a
// task already running on the same serial queue deadlocks; use SafeSync
// when that reentrancy is possible.
func (q *Queue) Sync(fn func()) {
	if q.serial {
		it := &item{turn: make(chan struct{}), done: make(chan struct{})}
		q.enqueue(it)
		<-it.turn
		defer close(it.done)
		q.runSync(fn)
		return
	}
	q.admit()
	defer q.release()
	q.runSync(fn)
}

// AsyncAfter schedules fn to run on the queue after d and returns a
// cancellable handle. Cancelling before the deadline guarantees the body
// never runs; cancelling after it fired is a no-op.
func (q *Queue) AsyncAfter(d time.Duration, fn func()) *task.Handle {
	return task.After(d, fn, q.Async)
}

func (q *Queue) enqueue(it *item) {
	q.mu.Lock()
	if !q.started {
		q.started = true
		go q.loop()
		q.logger.Debug("queue worker started", slog.String("queue_id", q.id))
	}
	q.items = append(q.items, it)
	q.mu.Unlock()
	q.cond.Signal()
}

// loop is the serial queue's worker goroutine. Async items run here; sync
// items hand the turn to the submitting goroutine and wait it out, which
// keeps one-at-a-time ordering across both kinds.
func (q *Queue) loop() {
	for {
		q.mu.Lock()
		for len(q.items) == 0 {
			q.cond.Wait()
		}
		it := q.items[0]
		q.items = q.items[1:]
		q.mu.Unlock()

		if q.limiter != nil {
			_ = q.limiter.Wait(context.Background())
		}

		if it.fn != nil {
			q.runAsync(it.fn)
			continue
		}
		close(it.turn)
		<-it.done
	}
}

// admit gates a concurrent task on the concurrency cap and rate limit.
func (q *Queue) admit() {
	if q.sem != nil {
		_ = q.sem.Acquire(context.Background(), 1)
	}
	if q.limiter != nil {
		_ = q.limiter.Wait(context.Background())
	}
}

func (q *Queue) release() {
	if q.sem != nil {
		q.sem.Release(1)
	}
}

// runAsync executes a fire-and-forget body with the queue registered as
// current. Panics are recovered and logged with a stack trace; there is no
// caller to propagate them to.
func (q *Queue) runAsync(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			q.logger.Error("task panicked",
				slog.String("queue_id", q.id),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()
	gls.Push(q)
	defer gls.Pop()
	fn()
}

// runSync executes a blocking body with the queue registered as current.
// Panics unwind to the caller after the registration pops.
func (q *Queue) runSync(fn func()) {
	gls.Push(q)
	defer gls.Pop()
	fn()
}
