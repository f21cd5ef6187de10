// Package coalesce implements per-queue, per-identifier work coalescing:
// debounce (defer-and-collapse, last call wins) and throttle (admit first,
// suppress until the window elapses).
//
// A [State] belongs to exactly one queue context and keys both primitives
// by identifier, so two identifiers on one queue — and one identifier on
// two queues — coalesce independently. All bookkeeping for a given state
// happens under a single mutex; the check-cancel-register sequence of
// debounce and the check-insert sequence of throttle are atomic with
// respect to concurrent callers, which rules out the lost-cancel race
// where two near-simultaneous calls each cancel the other and both
// schedule a survivor.
//
// The lock covers bookkeeping only. Caller-supplied work always runs
// outside it, later: debounced work through the [Scheduler], admitted
// throttle work through whatever dispatch the owning queue applies to the
// body [State.Admit] hands back.
package coalesce

import (
	"log/slog"
	"sync"
	"time"

	"github.com/pokanop/dqe/task"
)

// Scheduler is the slice of the queue surface debounce schedules through.
// Defined here, implemented by the owning queue.
type Scheduler interface {
	// AsyncAfter schedules fn to run after d and returns a cancellable
	// handle. Never blocks.
	AsyncAfter(d time.Duration, fn func()) *task.Handle
}

// registration pairs an identifier's live debounce handle with a unique
// address. The fired body compares map entries against its own
// registration, so a superseded handle can never deregister its successor.
type registration struct {
	h *task.Handle
}

// State holds the coalescing bookkeeping for one queue context: at most
// one live debounce handle and at most one open throttle window per
// identifier. Identifiers may be any comparable value.
type State struct {
	mu       sync.Mutex
	debounce map[any]*registration
	throttle map[any]struct{}
	logger   *slog.Logger
}

// NewState creates empty coalescing state. A nil logger falls back to
// slog.Default.
func NewState(logger *slog.Logger) *State {
	if logger == nil {
		logger = slog.Default()
	}
	return &State{
		debounce: make(map[any]*registration),
		throttle: make(map[any]struct{}),
		logger:   logger,
	}
}

// Debounce schedules fn to run after interval, superseding any pending
// execution registered under key: the previous handle is cancelled and the
// deadline restarts. Of a burst of calls arriving faster than interval
// apart, only the last one's fn runs, one full interval after the burst
// ends. Cancelling a handle that already fired is a no-op; the new
// registration always wins for future cancellation.
func (s *State) Debounce(sched Scheduler, interval time.Duration, key any, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.debounce[key]; ok {
		prev.h.Cancel()
		s.logger.Debug("debounce superseded", slog.Any("key", key))
	}

	reg := &registration{}
	reg.h = sched.AsyncAfter(interval, func() {
		fn()

		// Deregister, unless a later call already replaced this entry.
		s.mu.Lock()
		if s.debounce[key] == reg {
			delete(s.debounce, key)
		}
		s.mu.Unlock()
	})
	s.debounce[key] = reg
}

// Admit performs throttle admission under key. The first call opens the
// suppression window and returns true with the body to dispatch — fn
// wrapped so the window reopens interval after the body completes, even if
// it panics. Calls arriving while the window is open return false and the
// work is dropped. Dispatch is the caller's: the admitted body never runs
// under the state lock.
func (s *State) Admit(interval time.Duration, key any, fn func()) (func(), bool) {
	s.mu.Lock()
	if _, held := s.throttle[key]; held {
		s.mu.Unlock()
		s.logger.Debug("throttle suppressed", slog.Any("key", key))
		return nil, false
	}
	s.throttle[key] = struct{}{}
	s.mu.Unlock()

	body := func() {
		defer time.AfterFunc(interval, func() {
			s.mu.Lock()
			delete(s.throttle, key)
			s.mu.Unlock()
		})
		fn()
	}
	return body, true
}

// Reset cancels every pending debounce handle and clears all throttle
// windows. Called when a queue is renamed and its context replaced.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, reg := range s.debounce {
		reg.h.Cancel()
		delete(s.debounce, key)
	}
	clear(s.throttle)
}

// DebounceCount returns the number of identifiers with a live debounce
// registration.
func (s *State) DebounceCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.debounce)
}

// ThrottleCount returns the number of identifiers inside an open
// suppression window.
func (s *State) ThrottleCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.throttle)
}
