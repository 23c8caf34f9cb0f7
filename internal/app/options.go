package app

import (
	"time"

	"github.com/reflekt-labs/reflekt/internal/adapters/artifact"
	"github.com/reflekt-labs/reflekt/internal/adapters/chain"
	"github.com/reflekt-labs/reflekt/internal/adapters/repository"
	"github.com/reflekt-labs/reflekt/internal/adapters/wallet"
	"github.com/reflekt-labs/reflekt/internal/domain/badge"
	"github.com/reflekt-labs/reflekt/internal/domain/scoring"
	"github.com/reflekt-labs/reflekt/internal/domain/tier"
	"github.com/reflekt-labs/reflekt/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithMetricsProvider sets the wallet metrics source.
func WithMetricsProvider(p wallet.Provider) Option {
	return func(s *Service) {
		if p != nil {
			s.metricsSource = p
		}
	}
}

// WithScoringEngine sets the scoring engine.
func WithScoringEngine(e scoring.Engine) Option {
	return func(s *Service) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithClassifier sets the tier classifier.
func WithClassifier(c *tier.Classifier) Option {
	return func(s *Service) {
		if c != nil {
			s.classifier = c
		}
	}
}

// WithBadgeEvaluator sets the achievement evaluator.
func WithBadgeEvaluator(e *badge.Evaluator) Option {
	return func(s *Service) {
		if e != nil {
			s.badges = e
		}
	}
}

// WithStore sets the credential store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithSubmitter sets the chain submitter.
func WithSubmitter(sub chain.Submitter) Option {
	return func(s *Service) {
		if sub != nil {
			s.submitter = sub
		}
	}
}

// WithArtifactGenerator sets the badge artifact generator.
func WithArtifactGenerator(g artifact.Generator) Option {
	return func(s *Service) {
		if g != nil {
			s.artifacts = g
		}
	}
}

// WithWorkerCount sets the number of refresh workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the refresh queue capacity.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDeadBand sets the update suppression threshold.
func WithDeadBand(deadBand int) Option {
	return func(s *Service) {
		if deadBand >= 0 {
			s.deadBand = deadBand
		}
	}
}

// WithSubmitTimeout sets the per-attempt chain submission timeout.
func WithSubmitTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		if timeout > 0 {
			s.submitTimeout = timeout
		}
	}
}

// WithSubmitRetries sets the chain submission retry budget.
func WithSubmitRetries(retries int) Option {
	return func(s *Service) {
		if retries >= 0 {
			s.submitRetries = retries
		}
	}
}

// WithRetryBackoff sets the base backoff between chain retries.
func WithRetryBackoff(backoff time.Duration) Option {
	return func(s *Service) {
		if backoff > 0 {
			s.retryBackoff = backoff
		}
	}
}

// WithMaxLeaderboardLimit caps leaderboard query limits.
func WithMaxLeaderboardLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxLimit = limit
		}
	}
}

// WithRisingWindow sets the default rising-stars recency window.
func WithRisingWindow(window time.Duration) Option {
	return func(s *Service) {
		if window > 0 {
			s.risingWindow = window
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
