package dqe

import "log/slog"

// Option configures a Queue at construction time.
type Option func(*Queue)

// WithName names the queue as if SetName had been called immediately after
// construction. An empty name leaves the queue unnamed.
func WithName(name string) Option {
	return func(q *Queue) { q.initialName = name }
}

// WithConcurrent makes the queue execute tasks in parallel instead of one
// at a time.
func WithConcurrent() Option {
	return func(q *Queue) { q.serial = false }
}

// WithMaxConcurrency caps how many tasks a concurrent queue may run
// simultaneously. Zero means no cap. Serial queues ignore it.
func WithMaxConcurrency(n int) Option {
	return func(q *Queue) { q.maxConc = n }
}

// WithRateLimit sets the maximum sustained tasks per second admitted by
// the queue, with burst as the token-bucket burst size. Burst defaults to
// 1 if rate is set but burst is zero. Zero rate disables rate limiting.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(q *Queue) {
		q.rateLimit = perSecond
		q.rateBurst = burst
	}
}

// WithLogger sets the queue's logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(q *Queue) {
		if logger != nil {
			q.logger = logger
		}
	}
}
