// Package chain defines the on-chain settlement contract for soulbound
// credentials. The ledger itself is external; implementations here only
// submit operations and report outcomes.
package chain

import (
	"context"

	"github.com/reflekt-labs/reflekt/internal/domain/model"
)

// Submitter sends credential operations to the settlement layer. All
// calls may block on network latency and must honor ctx; a deadline hit
// surfaces as ErrSubmissionTimeout.
type Submitter interface {
	// SubmitMint issues a new token bound to address and returns its id.
	SubmitMint(ctx context.Context, address model.Address, uri string, score int, tierName string) (uint64, error)

	// SubmitUpdate rewrites score, tier, and artifact of an existing token.
	SubmitUpdate(ctx context.Context, tokenID uint64, uri string, score int, tierName string) error

	// SubmitBurn destroys an existing token.
	SubmitBurn(ctx context.Context, tokenID uint64) error
}
