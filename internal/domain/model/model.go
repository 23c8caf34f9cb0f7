// Package model contains domain entities shared between layers.
package model

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Address is a checksummed EVM account identifier.
type Address = string

// NormalizeAddress validates a hex address and returns its EIP-55
// checksummed form. Returns false when the input is not an address.
func NormalizeAddress(raw string) (Address, bool) {
	if !common.IsHexAddress(raw) {
		return "", false
	}
	return common.HexToAddress(raw).Hex(), true
}

// Criterion names one scored signal of wallet behavior. The set of
// criteria is closed; weights and thresholds for each are configuration.
type Criterion string

// Scored criteria.
const (
	CriterionLongTermHolder    Criterion = "long_term_holder"
	CriterionDAOParticipation  Criterion = "dao_participation"
	CriterionNFTMints          Criterion = "nft_mints"
	CriterionTransactionVolume Criterion = "transaction_volume"
	CriterionTokenDiversity    Criterion = "token_diversity"
	CriterionDeFiUsage         Criterion = "defi_usage"
	CriterionWalletAge         Criterion = "wallet_age"
	CriterionENSOwnership      Criterion = "ens_ownership"
	CriterionBalance           Criterion = "balance"
	CriterionFrequentSwaps     Criterion = "frequent_swaps"
)

// Criteria lists every scored criterion in presentation order.
func Criteria() []Criterion {
	return []Criterion{
		CriterionLongTermHolder,
		CriterionDAOParticipation,
		CriterionNFTMints,
		CriterionTransactionVolume,
		CriterionTokenDiversity,
		CriterionDeFiUsage,
		CriterionWalletAge,
		CriterionENSOwnership,
		CriterionBalance,
		CriterionFrequentSwaps,
	}
}

// ValidCriterion reports whether name is one of the scored criteria.
func ValidCriterion(name string) bool {
	for _, c := range Criteria() {
		if c == Criterion(name) {
			return true
		}
	}
	return false
}

// WalletMetrics is an immutable snapshot of a wallet's on-chain behavior,
// captured at a single block height by the metrics collaborator. The
// scoring engine never mixes fields from different snapshots.
type WalletMetrics struct {
	Address           Address   `json:"address"`
	BlockNumber       uint64    `json:"block_number"`
	IsLongTermHolder  bool      `json:"is_long_term_holder"`
	DAOParticipations int       `json:"dao_participations"`
	NFTMintCount      int       `json:"nft_mint_count"`
	TransactionCount  int64     `json:"transaction_count"`
	TokenDiversity    int       `json:"token_diversity"`
	DeFiUsage         bool      `json:"defi_usage"`
	WalletAgeDays     int       `json:"wallet_age_days"`
	HasENS            bool      `json:"has_ens"`
	BalanceNative     float64   `json:"balance_native"`
	FrequentSwaps     bool      `json:"frequent_swaps"`
	CapturedAt        time.Time `json:"captured_at"`
}

// Breakdown records the signed points each criterion contributed to a
// blended score. The leaderboard's category ranking reads from it.
type Breakdown map[Criterion]int

// Total sums all contributions without clamping.
func (b Breakdown) Total() int {
	total := 0
	for _, pts := range b {
		total += pts
	}
	return total
}

// Clone returns an independent copy of the breakdown.
func (b Breakdown) Clone() Breakdown {
	out := make(Breakdown, len(b))
	for c, pts := range b {
		out[c] = pts
	}
	return out
}

// ReputationScore is the blended, clamped result of scoring one snapshot.
type ReputationScore struct {
	Address     Address   `json:"address"`
	Value       int       `json:"value"`
	Breakdown   Breakdown `json:"breakdown"`
	BlockNumber uint64    `json:"block_number"`
	ComputedAt  time.Time `json:"computed_at"`
}

// CredentialState tracks a credential through its lifecycle.
type CredentialState string

// Lifecycle states. A burned credential frees the address for a re-mint
// under a fresh token id.
const (
	StateMinted CredentialState = "minted"
	StateBurned CredentialState = "burned"
)

// Credential is the durable soulbound badge record. OwnerAddress is set
// exactly once at mint and never changes; TokenID is unique and never
// reissued to the same address after a burn.
type Credential struct {
	TokenID      uint64          `json:"token_id"`
	OwnerAddress Address         `json:"owner_address"`
	Score        int             `json:"score"`
	PrevScore    int             `json:"prev_score"`
	Tier         string          `json:"tier"`
	Badges       []string        `json:"badges"`
	Breakdown    Breakdown       `json:"breakdown"`
	ArtifactURI  string          `json:"artifact_uri"`
	State        CredentialState `json:"state"`
	MintedAt     time.Time       `json:"minted_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Live reports whether the credential currently counts toward the
// leaderboard and blocks further mints for its owner.
func (c Credential) Live() bool {
	return c.State == StateMinted
}

// HasBadge reports whether the credential carries the named badge.
func (c Credential) HasBadge(name string) bool {
	for _, b := range c.Badges {
		if b == name {
			return true
		}
	}
	return false
}
