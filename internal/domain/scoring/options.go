package scoring

import (
	"time"

	"github.com/reflekt-labs/reflekt/internal/domain/model"
)

// Option applies a configuration option to the WeightedEngine.
type Option func(*WeightedEngine)

// WithWeights overrides individual criterion weights. Unknown criteria
// and non-positive weights are ignored; unspecified criteria keep their
// defaults.
func WithWeights(weights map[model.Criterion]int) Option {
	return func(e *WeightedEngine) {
		for c, w := range weights {
			if !model.ValidCriterion(string(c)) || w <= 0 {
				continue
			}
			e.weights[c] = w
		}
	}
}

// WithVolumeBuckets replaces the transaction volume bucket ladder. The
// ladder must be sorted by MinTransactions descending; empty input keeps
// the default.
func WithVolumeBuckets(buckets []VolumeBucket) Option {
	return func(e *WeightedEngine) {
		if len(buckets) > 0 {
			e.volumeBuckets = buckets
		}
	}
}

// WithTokenDiversityThreshold sets the distinct-asset count gate.
func WithTokenDiversityThreshold(n int) Option {
	return func(e *WeightedEngine) {
		if n > 0 {
			e.diversityThreshold = n
		}
	}
}

// WithWalletAgeThreshold sets the wallet age gate in days.
func WithWalletAgeThreshold(days int) Option {
	return func(e *WeightedEngine) {
		if days > 0 {
			e.ageThresholdDays = days
		}
	}
}

// WithBalanceThreshold sets the native balance gate.
func WithBalanceThreshold(balance float64) Option {
	return func(e *WeightedEngine) {
		if balance > 0 {
			e.balanceThreshold = balance
		}
	}
}

// WithClock pins the result timestamp source. Used by tests to make
// ComputedAt deterministic.
func WithClock(now func() time.Time) Option {
	return func(e *WeightedEngine) {
		if now != nil {
			e.now = now
		}
	}
}
