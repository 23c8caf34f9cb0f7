// Package repository holds the local credential state. The store is the
// service's view of what has been confirmed on the settlement layer; it
// is written only after a chain submission succeeds.
package repository

import (
	"context"

	"github.com/reflekt-labs/reflekt/internal/domain/model"
)

// Store persists credential records keyed by owner address.
type Store interface {
	// Get returns the credential for address, reporting whether one
	// exists at all (live or burned).
	Get(ctx context.Context, address model.Address) (model.Credential, bool, error)

	// Put records the credential for its owner address. The store
	// enforces token ownership: once a token id has been recorded for
	// an owner, recording it for anyone else fails with
	// ErrTransferRejected, and minting with a previously issued id
	// fails with ErrTokenReused.
	Put(ctx context.Context, cred model.Credential) error

	// ListLive returns all credentials in the minted state.
	ListLive(ctx context.Context) ([]model.Credential, error)

	// TokenIssued reports whether the store has ever seen tokenID.
	TokenIssued(ctx context.Context, tokenID uint64) (bool, error)
}
