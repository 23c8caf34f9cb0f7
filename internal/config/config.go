// Package config defines service configuration structures and loading.
//
// Conventions:
// - Provide New() building a Config with defaults; Load layers file/env.
// - Every scoring weight, threshold, and tier bin is explicit here so
//   policy can evolve without touching the algorithm shape.
package config

import (
	"runtime"

	"github.com/reflekt-labs/reflekt/internal/domain/scoring"
	"github.com/reflekt-labs/reflekt/internal/domain/tier"
)

// Default lifecycle and pipeline settings.
const (
	defaultAddr                = ":9090"
	defaultUpdateDeadBand      = 3
	defaultSubmitTimeoutMS     = 5_000
	defaultSubmitRetries       = 2
	defaultRetryBackoffMS      = 250
	defaultRefreshQueueSize    = 10_000
	defaultMaxLeaderboardLimit = 100
	defaultRisingWindowMinutes = 24 * 60
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9090".
	Addr string `koanf:"addr"`

	// Weights maps criterion name to integer point weight.
	Weights map[string]int `koanf:"weights"`

	// Gate thresholds for the scoring engine.
	TokenDiversityThreshold int     `koanf:"token_diversity_threshold"`
	AgeThresholdDays        int     `koanf:"age_threshold_days"`
	BalanceThreshold        float64 `koanf:"balance_threshold"`

	// VolumeBuckets is the transaction count to volume tier ladder,
	// sorted by min_transactions descending.
	VolumeBuckets []scoring.VolumeBucket `koanf:"volume_buckets"`

	// TierBins is the score-to-tier ladder. Validated at startup: six
	// contiguous bins covering [0,100] exactly.
	TierBins []tier.Bin `koanf:"tier_bins"`

	// UpdateDeadBand is the minimum score delta that triggers an
	// on-chain update when the tier is unchanged.
	UpdateDeadBand int `koanf:"update_dead_band"`

	// Chain submission timeout and bounded retry policy.
	SubmitTimeoutMS int `koanf:"submit_timeout_ms"`
	SubmitRetries   int `koanf:"submit_retries"`
	RetryBackoffMS  int `koanf:"retry_backoff_ms"`

	// Refresh pipeline sizing.
	RefreshQueueSize   int `koanf:"refresh_queue_size"`
	RefreshWorkerCount int `koanf:"refresh_worker_count"`

	// MaxLeaderboardLimit caps leaderboard query limits.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// RisingWindowMinutes is the default rising-stars recency window.
	RisingWindowMinutes int `koanf:"rising_window_minutes"`
}

// New creates a Config populated with defaults.
func New() *Config {
	weights := map[string]int{}
	for c, w := range scoring.DefaultWeights() {
		weights[string(c)] = w
	}
	return &Config{
		LogLevel:                "info",
		Addr:                    defaultAddr,
		Weights:                 weights,
		TokenDiversityThreshold: 5,
		AgeThresholdDays:        365,
		BalanceThreshold:        1.0,
		VolumeBuckets:           scoring.DefaultVolumeBuckets(),
		TierBins:                tier.DefaultBins(),
		UpdateDeadBand:          defaultUpdateDeadBand,
		SubmitTimeoutMS:         defaultSubmitTimeoutMS,
		SubmitRetries:           defaultSubmitRetries,
		RetryBackoffMS:          defaultRetryBackoffMS,
		RefreshQueueSize:        defaultRefreshQueueSize,
		RefreshWorkerCount:      runtime.NumCPU() * 2,
		MaxLeaderboardLimit:     defaultMaxLeaderboardLimit,
		RisingWindowMinutes:     defaultRisingWindowMinutes,
	}
}
