package dqe

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// Debounce
// ---------------------------------------------------------------------------

func TestDebounce_RapidBurstRunsLastOnce(t *testing.T) {
	q := New(WithName("worker"))

	var runs atomic.Int32
	var last atomic.Int32
	for i := 1; i <= 10; i++ {
		n := int32(i)
		q.Debounce(300*time.Millisecond, "foo", func() {
			runs.Add(1)
			last.Store(n)
		})
	}

	time.Sleep(500 * time.Millisecond)
	if got := runs.Load(); got != 1 {
		t.Fatalf("expected exactly 1 execution, got %d", got)
	}
	if got := last.Load(); got != 10 {
		t.Fatalf("expected the last submission to run, got %d", got)
	}
}

func TestDebounce_TwoIdentifiersInOneBurst(t *testing.T) {
	q := New(WithName("worker"))

	var runs atomic.Int32
	for i := 0; i < 10; i++ {
		q.Debounce(300*time.Millisecond, "foo", func() { runs.Add(1) })
		q.Debounce(300*time.Millisecond, "bar", func() { runs.Add(1) })
	}

	time.Sleep(500 * time.Millisecond)
	if got := runs.Load(); got != 2 {
		t.Fatalf("expected one execution per identifier, got %d", got)
	}
}

func TestDebounce_SpacingExceedingIntervalRunsAll(t *testing.T) {
	q := New(WithName("worker"))

	var runs atomic.Int32
	for i := 0; i < 10; i++ {
		q.Debounce(25*time.Millisecond, "foo", func() { runs.Add(1) })
		time.Sleep(50 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	if got := runs.Load(); got != 10 {
		t.Fatalf("expected all 10 executions, got %d", got)
	}
}

func TestDebounce_BodyRunsOnQueue(t *testing.T) {
	q := New(WithName("worker"))

	var current atomic.Bool
	h := make(chan struct{})
	q.Debounce(20*time.Millisecond, "foo", func() {
		current.Store(q.IsCurrent())
		close(h)
	})

	select {
	case <-h:
	case <-time.After(time.Second):
		t.Fatal("debounced body never ran")
	}
	if !current.Load() {
		t.Fatal("debounced body did not run on its queue")
	}
}

func TestDebounce_IndependentAcrossQueues(t *testing.T) {
	a := New(WithName("a"))
	b := New(WithName("b"))

	var runs atomic.Int32
	a.Debounce(50*time.Millisecond, "foo", func() { runs.Add(1) })
	b.Debounce(50*time.Millisecond, "foo", func() { runs.Add(1) })

	time.Sleep(200 * time.Millisecond)
	if got := runs.Load(); got != 2 {
		t.Fatalf("same identifier on two queues must not coalesce: got %d", got)
	}
}

func TestDebounce_UnnamedQueuePanics(t *testing.T) {
	q := New()

	defer func() {
		err, ok := recover().(error)
		if !ok || !errors.Is(err, ErrUnnamedQueue) {
			t.Fatalf("expected ErrUnnamedQueue, got %v", err)
		}
	}()
	q.Debounce(time.Millisecond, "foo", func() {})
}

// ---------------------------------------------------------------------------
// Throttle
// ---------------------------------------------------------------------------

func TestThrottle_RapidBurstAdmitsFirstOnly(t *testing.T) {
	q := New(WithName("worker"))

	var runs atomic.Int32
	for i := 0; i < 10; i++ {
		q.Throttle(300*time.Millisecond, "foo", true, func() { runs.Add(1) })
	}

	time.Sleep(100 * time.Millisecond)
	if got := runs.Load(); got != 1 {
		t.Fatalf("expected 1 execution within the window, got %d", got)
	}
	time.Sleep(400 * time.Millisecond)
	if got := runs.Load(); got != 1 {
		t.Fatalf("expected exactly 1 execution total, got %d", got)
	}
}

func TestThrottle_TwoIdentifiersInOneBurst(t *testing.T) {
	q := New(WithName("worker"))

	var runs atomic.Int32
	for i := 0; i < 10; i++ {
		q.Throttle(300*time.Millisecond, "foo", true, func() { runs.Add(1) })
		q.Throttle(300*time.Millisecond, "bar", true, func() { runs.Add(1) })
	}

	time.Sleep(150 * time.Millisecond)
	if got := runs.Load(); got != 2 {
		t.Fatalf("expected one execution per identifier, got %d", got)
	}
}

func TestThrottle_SpacingExceedingIntervalRunsAll(t *testing.T) {
	for _, async := range []bool{true, false} {
		q := New(WithName("worker"))

		var runs atomic.Int32
		for i := 0; i < 10; i++ {
			q.Throttle(25*time.Millisecond, "foo", async, func() { runs.Add(1) })
			time.Sleep(50 * time.Millisecond)
		}

		time.Sleep(100 * time.Millisecond)
		if got := runs.Load(); got != 10 {
			t.Fatalf("async=%v: expected all 10 executions, got %d", async, got)
		}
	}
}

func TestThrottle_BlockingModeFromOwnTask(t *testing.T) {
	q := New(WithName("worker"))

	// async=false dispatches through SafeSync, which must short-circuit
	// inline when throttling from a task already on the queue.
	done := make(chan struct{})
	q.Async(func() {
		var runs atomic.Int32
		q.Throttle(50*time.Millisecond, "foo", false, func() { runs.Add(1) })
		if got := runs.Load(); got != 1 {
			t.Errorf("expected inline blocking throttle execution, got %d", got)
		}
		close(done)
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("blocking throttle deadlocked on same-queue reentrancy")
	}
}

func TestThrottle_UnnamedQueuePanics(t *testing.T) {
	q := New()

	defer func() {
		err, ok := recover().(error)
		if !ok || !errors.Is(err, ErrUnnamedQueue) {
			t.Fatalf("expected ErrUnnamedQueue, got %v", err)
		}
	}()
	q.Throttle(time.Millisecond, "foo", true, func() {})
}
