// Package badge derives achievement badges from wallet metric snapshots.
//
// Badges are qualitative markers layered on top of the blended score;
// they feed the candidate search filter and the credential artifact.
package badge

import (
	"github.com/reflekt-labs/reflekt/internal/domain/model"
)

// Badge names.
const (
	EarlyAdopter = "Early Adopter"
	DAOVoter     = "DAO Voter"
	NFTCollector = "NFT Collector"
	DeFiNative   = "DeFi Native"
	PowerUser    = "Power User"
	Whale        = "Whale"
	DiamondHands = "Diamond Hands"
	ENSOwner     = "ENS Owner"
	Diversified  = "Diversified Portfolio"
)

// Default award thresholds.
const (
	defaultEarlyAdopterAgeDays = 1825 // five years on-chain
	defaultDAOVoterMin         = 2
	defaultNFTCollectorMin     = 20
	defaultPowerUserMinTx      = 500
	defaultWhaleMinBalance     = 10.0
	defaultDiversifiedMin      = 10
)

// All lists every badge the evaluator can award.
func All() []string {
	return []string{
		EarlyAdopter,
		DAOVoter,
		NFTCollector,
		DeFiNative,
		PowerUser,
		Whale,
		DiamondHands,
		ENSOwner,
		Diversified,
	}
}

// Evaluator awards badges for a metrics snapshot.
type Evaluator struct {
	earlyAdopterAgeDays int
	daoVoterMin         int
	nftCollectorMin     int
	powerUserMinTx      int64
	whaleMinBalance     float64
	diversifiedMin      int
}

// Option applies a configuration option to the Evaluator.
type Option func(*Evaluator)

// WithEarlyAdopterAge sets the wallet age, in days, for Early Adopter.
func WithEarlyAdopterAge(days int) Option {
	return func(e *Evaluator) {
		if days > 0 {
			e.earlyAdopterAgeDays = days
		}
	}
}

// WithWhaleBalance sets the native balance floor for Whale.
func WithWhaleBalance(balance float64) Option {
	return func(e *Evaluator) {
		if balance > 0 {
			e.whaleMinBalance = balance
		}
	}
}

// NewEvaluator creates an evaluator with default thresholds.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{
		earlyAdopterAgeDays: defaultEarlyAdopterAgeDays,
		daoVoterMin:         defaultDAOVoterMin,
		nftCollectorMin:     defaultNFTCollectorMin,
		powerUserMinTx:      defaultPowerUserMinTx,
		whaleMinBalance:     defaultWhaleMinBalance,
		diversifiedMin:      defaultDiversifiedMin,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate returns the badges earned by the snapshot, in All() order.
// Pure and deterministic, same as the scoring engine.
func (e *Evaluator) Evaluate(m model.WalletMetrics) []string {
	var earned []string
	if m.WalletAgeDays >= e.earlyAdopterAgeDays {
		earned = append(earned, EarlyAdopter)
	}
	if m.DAOParticipations >= e.daoVoterMin {
		earned = append(earned, DAOVoter)
	}
	if m.NFTMintCount >= e.nftCollectorMin {
		earned = append(earned, NFTCollector)
	}
	if m.DeFiUsage {
		earned = append(earned, DeFiNative)
	}
	if m.TransactionCount >= e.powerUserMinTx {
		earned = append(earned, PowerUser)
	}
	if m.BalanceNative >= e.whaleMinBalance {
		earned = append(earned, Whale)
	}
	if m.IsLongTermHolder && !m.FrequentSwaps {
		earned = append(earned, DiamondHands)
	}
	if m.HasENS {
		earned = append(earned, ENSOwner)
	}
	if m.TokenDiversity >= e.diversifiedMin {
		earned = append(earned, Diversified)
	}
	return earned
}
