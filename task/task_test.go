package task

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestHandle_PerformRunsOnce(t *testing.T) {
	var runs atomic.Int32
	h := New(func() { runs.Add(1) })

	h.Perform()
	h.Perform()

	if got := runs.Load(); got != 1 {
		t.Fatalf("expected 1 run, got %d", got)
	}
	select {
	case <-h.Done():
	default:
		t.Fatal("expected Done to be closed after Perform")
	}
}

func TestHandle_CancelBeforePerform(t *testing.T) {
	var runs atomic.Int32
	h := New(func() { runs.Add(1) })

	if !h.Cancel() {
		t.Fatal("expected Cancel to win on a pending handle")
	}
	if !h.Cancelled() {
		t.Fatal("expected Cancelled after Cancel")
	}

	h.Perform()
	if got := runs.Load(); got != 0 {
		t.Fatalf("cancelled handle ran %d times", got)
	}
}

func TestHandle_CancelAfterPerformIsNoop(t *testing.T) {
	h := New(func() {})
	h.Perform()

	if h.Cancel() {
		t.Fatal("Cancel after Perform should report false")
	}
	if h.Cancelled() {
		t.Fatal("performed handle must not report Cancelled")
	}
}

func TestAfter_FiresThroughSubmit(t *testing.T) {
	var runs atomic.Int32
	h := After(20*time.Millisecond, func() { runs.Add(1) }, func(f func()) { go f() })

	h.Wait()
	if got := runs.Load(); got != 1 {
		t.Fatalf("expected 1 run, got %d", got)
	}
}

func TestAfter_CancelStopsTimer(t *testing.T) {
	var runs atomic.Int32
	h := After(30*time.Millisecond, func() { runs.Add(1) }, func(f func()) { go f() })

	if !h.Cancel() {
		t.Fatal("expected Cancel to win before the deadline")
	}
	time.Sleep(80 * time.Millisecond)
	if got := runs.Load(); got != 0 {
		t.Fatalf("cancelled deferred handle ran %d times", got)
	}
}

func TestHandle_WaitReturnsOnCancel(t *testing.T) {
	h := New(func() {})
	done := make(chan struct{})
	go func() {
		h.Wait()
		close(done)
	}()

	h.Cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after Cancel")
	}
}

func TestHandle_PerformSignalsDoneOnPanic(t *testing.T) {
	h := New(func() { panic("boom") })

	func() {
		defer func() { _ = recover() }()
		h.Perform()
	}()

	select {
	case <-h.Done():
	case <-time.After(time.Second):
		t.Fatal("Done not closed after panicking body")
	}
}
