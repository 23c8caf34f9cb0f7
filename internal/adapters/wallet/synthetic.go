package wallet

import (
	"context"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/reflekt-labs/reflekt/internal/domain/model"
)

// Synthetic metric ranges.
const (
	syntheticMaxDAOs      = 6
	syntheticMaxNFTMints  = 40
	syntheticMaxTxCount   = 2000
	syntheticMaxDiversity = 20
	syntheticMaxAgeDays   = 2500
	syntheticMaxBalance   = 25.0
	syntheticBlockNumber  = 19_000_000
)

// SyntheticProvider fabricates plausible snapshots, deterministic per
// address: the address hash seeds the generator, so repeated calls for
// the same wallet return identical metrics. Used by demos and the seed
// tool; never by production deployments.
type SyntheticProvider struct {
	now func() time.Time
}

// NewSyntheticProvider creates a synthetic metrics source.
func NewSyntheticProvider() *SyntheticProvider {
	return &SyntheticProvider{now: time.Now}
}

// GetMetrics derives a snapshot from the address hash.
func (p *SyntheticProvider) GetMetrics(ctx context.Context, address model.Address) (model.WalletMetrics, error) {
	addr, ok := model.NormalizeAddress(address)
	if !ok {
		return model.WalletMetrics{}, ErrMetricsUnavailable
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(addr))
	rng := rand.New(rand.NewSource(int64(h.Sum64()))) //nolint:gosec // deterministic synthetic data, not crypto

	return model.WalletMetrics{
		Address:           addr,
		BlockNumber:       syntheticBlockNumber,
		IsLongTermHolder:  rng.Intn(2) == 0,
		DAOParticipations: rng.Intn(syntheticMaxDAOs),
		NFTMintCount:      rng.Intn(syntheticMaxNFTMints),
		TransactionCount:  int64(rng.Intn(syntheticMaxTxCount)),
		TokenDiversity:    rng.Intn(syntheticMaxDiversity),
		DeFiUsage:         rng.Intn(3) > 0,
		WalletAgeDays:     rng.Intn(syntheticMaxAgeDays),
		HasENS:            rng.Intn(3) == 0,
		BalanceNative:     rng.Float64() * syntheticMaxBalance,
		FrequentSwaps:     rng.Intn(4) == 0,
		CapturedAt:        p.now(),
	}, nil
}
