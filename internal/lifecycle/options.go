package lifecycle

import (
	"context"
	"time"

	"github.com/reflekt-labs/reflekt/pkg/logger"
)

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithDeadBand sets the score delta below which a same-tier refresh is
// suppressed.
func WithDeadBand(deadBand int) Option {
	return func(m *Manager) {
		if deadBand >= 0 {
			m.deadBand = deadBand
		}
	}
}

// WithSubmitTimeout sets the per-attempt chain submission timeout.
func WithSubmitTimeout(timeout time.Duration) Option {
	return func(m *Manager) {
		if timeout > 0 {
			m.submitTimeout = timeout
		}
	}
}

// WithSubmitRetries sets how many times a timed-out submission is
// retried.
func WithSubmitRetries(retries int) Option {
	return func(m *Manager) {
		if retries >= 0 {
			m.submitRetries = retries
		}
	}
}

// WithRetryBackoff sets the base backoff between retries.
func WithRetryBackoff(backoff time.Duration) Option {
	return func(m *Manager) {
		if backoff > 0 {
			m.retryBackoff = backoff
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithOnChange registers a callback invoked after every committed
// transition.
func WithOnChange(fn func(ctx context.Context)) Option {
	return func(m *Manager) {
		m.onChange = fn
	}
}

// WithLogger overrides the manager logger.
func WithLogger(l logger.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}
