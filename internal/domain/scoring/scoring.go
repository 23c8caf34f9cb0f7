// Package scoring computes reputation scores from wallet metric snapshots.
//
// The engine is a pure function of its input and configuration: no I/O,
// deterministic for identical snapshots, safe to run concurrently across
// addresses. Presence-style criteria are boolean gates rather than
// linearly scaled magnitudes; only transaction volume passes through a
// bucket ladder.
package scoring

import (
	"time"

	"github.com/reflekt-labs/reflekt/internal/domain/model"
)

// Score bounds.
const (
	MinScore = 0
	MaxScore = 100
)

// Default criterion weights. Each is the number of points awarded when
// the criterion's gate passes; frequent swaps is a penalty.
const (
	defaultLongTermHolderWeight    = 10
	defaultDAOParticipationWeight  = 20
	defaultNFTMintWeight           = 5
	defaultTransactionVolumeWeight = 15
	defaultTokenDiversityWeight    = 10
	defaultDeFiUsageWeight         = 15
	defaultWalletAgeWeight         = 10
	defaultENSWeight               = 5
	defaultBalanceWeight           = 5
	defaultFrequentSwapsPenalty    = 5
)

// Default gate thresholds.
const (
	defaultTokenDiversityThreshold = 5
	defaultWalletAgeThresholdDays  = 365
	defaultBalanceThreshold        = 1.0
)

// VolumeBucket maps a minimum transaction count to a volume tier in [0,1].
type VolumeBucket struct {
	MinTransactions int64   `json:"min_transactions" koanf:"min_transactions"`
	Tier            float64 `json:"tier" koanf:"tier"`
}

// DefaultVolumeBuckets mirrors the activity ladder of the original
// scoring table; evaluated top-down, first match wins.
func DefaultVolumeBuckets() []VolumeBucket {
	return []VolumeBucket{
		{MinTransactions: 1000, Tier: 1.0},
		{MinTransactions: 500, Tier: 0.8},
		{MinTransactions: 200, Tier: 0.65},
		{MinTransactions: 100, Tier: 0.5},
		{MinTransactions: 50, Tier: 0.4},
		{MinTransactions: 20, Tier: 0.25},
		{MinTransactions: 5, Tier: 0.1},
		{MinTransactions: 0, Tier: 0.0},
	}
}

// Weights is the tunable per-criterion point table.
type Weights map[model.Criterion]int

// DefaultWeights returns the default scoring policy table.
func DefaultWeights() Weights {
	return Weights{
		model.CriterionLongTermHolder:    defaultLongTermHolderWeight,
		model.CriterionDAOParticipation:  defaultDAOParticipationWeight,
		model.CriterionNFTMints:          defaultNFTMintWeight,
		model.CriterionTransactionVolume: defaultTransactionVolumeWeight,
		model.CriterionTokenDiversity:    defaultTokenDiversityWeight,
		model.CriterionDeFiUsage:         defaultDeFiUsageWeight,
		model.CriterionWalletAge:         defaultWalletAgeWeight,
		model.CriterionENSOwnership:      defaultENSWeight,
		model.CriterionBalance:           defaultBalanceWeight,
		model.CriterionFrequentSwaps:     defaultFrequentSwapsPenalty,
	}
}

// Engine scores wallet metric snapshots.
type Engine interface {
	// Score computes the blended score for one snapshot. Fails with
	// ErrInvalidMetrics when the snapshot is incomplete.
	Score(metrics model.WalletMetrics) (model.ReputationScore, error)
}

// WeightedEngine implements Engine with the additive gate-and-clamp policy.
type WeightedEngine struct {
	weights            Weights
	volumeBuckets      []VolumeBucket
	diversityThreshold int
	ageThresholdDays   int
	balanceThreshold   float64
	now                func() time.Time
}

// NewWeightedEngine creates an engine with the default policy, adjusted
// by options.
func NewWeightedEngine(opts ...Option) *WeightedEngine {
	e := &WeightedEngine{
		weights:            DefaultWeights(),
		volumeBuckets:      DefaultVolumeBuckets(),
		diversityThreshold: defaultTokenDiversityThreshold,
		ageThresholdDays:   defaultWalletAgeThresholdDays,
		balanceThreshold:   defaultBalanceThreshold,
		now:                time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Score computes the weighted sum over all criteria, subtracts the swap
// penalty, and clamps to [MinScore, MaxScore].
func (e *WeightedEngine) Score(metrics model.WalletMetrics) (model.ReputationScore, error) {
	if err := validate(metrics); err != nil {
		return model.ReputationScore{}, err
	}

	breakdown := model.Breakdown{}
	gate := func(c model.Criterion, pass bool) {
		if pass {
			breakdown[c] = e.weights[c]
		} else {
			breakdown[c] = 0
		}
	}

	gate(model.CriterionLongTermHolder, metrics.IsLongTermHolder)
	gate(model.CriterionDAOParticipation, metrics.DAOParticipations > 0)
	gate(model.CriterionNFTMints, metrics.NFTMintCount > 0)
	gate(model.CriterionTokenDiversity, metrics.TokenDiversity >= e.diversityThreshold)
	gate(model.CriterionDeFiUsage, metrics.DeFiUsage)
	gate(model.CriterionWalletAge, metrics.WalletAgeDays >= e.ageThresholdDays)
	gate(model.CriterionENSOwnership, metrics.HasENS)
	gate(model.CriterionBalance, metrics.BalanceNative >= e.balanceThreshold)

	volumeTier := e.volumeTier(metrics.TransactionCount)
	breakdown[model.CriterionTransactionVolume] = int(volumeTier * float64(e.weights[model.CriterionTransactionVolume]))

	if metrics.FrequentSwaps {
		breakdown[model.CriterionFrequentSwaps] = -e.weights[model.CriterionFrequentSwaps]
	} else {
		breakdown[model.CriterionFrequentSwaps] = 0
	}

	value := breakdown.Total()
	if value < MinScore {
		value = MinScore
	}
	if value > MaxScore {
		value = MaxScore
	}

	return model.ReputationScore{
		Address:     metrics.Address,
		Value:       value,
		Breakdown:   breakdown,
		BlockNumber: metrics.BlockNumber,
		ComputedAt:  e.now(),
	}, nil
}

// volumeTier maps a raw transaction count through the bucket ladder.
func (e *WeightedEngine) volumeTier(txCount int64) float64 {
	for _, b := range e.volumeBuckets {
		if txCount >= b.MinTransactions {
			return b.Tier
		}
	}
	return 0
}

// validate rejects incomplete snapshots instead of silently defaulting.
func validate(m model.WalletMetrics) error {
	switch {
	case m.Address == "":
		return NewInvalidMetrics("missing address")
	case m.CapturedAt.IsZero():
		return NewInvalidMetrics("missing capture time")
	case m.DAOParticipations < 0:
		return NewInvalidMetrics("negative dao participation count")
	case m.NFTMintCount < 0:
		return NewInvalidMetrics("negative nft mint count")
	case m.TransactionCount < 0:
		return NewInvalidMetrics("negative transaction count")
	case m.TokenDiversity < 0:
		return NewInvalidMetrics("negative token diversity")
	case m.WalletAgeDays < 0:
		return NewInvalidMetrics("negative wallet age")
	case m.BalanceNative < 0:
		return NewInvalidMetrics("negative balance")
	}
	if _, ok := model.NormalizeAddress(m.Address); !ok {
		return NewInvalidMetrics("malformed address")
	}
	return nil
}
