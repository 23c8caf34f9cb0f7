package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/reflekt-labs/reflekt/internal/domain/model"
)

// MemStore is the in-memory Store implementation. Safe for concurrent
// use; records are copied on the way in and out so callers never share
// mutable state with the store.
type MemStore struct {
	mu     sync.RWMutex
	byAddr map[model.Address]model.Credential
	owners map[uint64]model.Address // token id -> owner, never rebound
}

// NewMemStore creates an empty store.
func NewMemStore() *MemStore {
	return &MemStore{
		byAddr: make(map[model.Address]model.Credential),
		owners: make(map[uint64]model.Address),
	}
}

// Get returns the credential for address.
func (s *MemStore) Get(_ context.Context, address model.Address) (model.Credential, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cred, ok := s.byAddr[address]
	if !ok {
		return model.Credential{}, false, nil
	}
	return copyCredential(cred), true, nil
}

// Put records cred, enforcing token ownership.
func (s *MemStore) Put(_ context.Context, cred model.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner, issued := s.owners[cred.TokenID]
	if issued && owner != cred.OwnerAddress {
		return fmt.Errorf("%w: token %d belongs to %s", ErrTransferRejected, cred.TokenID, owner)
	}
	if !issued {
		// A fresh token id must not collide with the owner's history.
		if prev, ok := s.byAddr[cred.OwnerAddress]; ok && prev.TokenID == cred.TokenID {
			return fmt.Errorf("%w: token %d", ErrTokenReused, cred.TokenID)
		}
		s.owners[cred.TokenID] = cred.OwnerAddress
	}
	s.byAddr[cred.OwnerAddress] = copyCredential(cred)
	return nil
}

// ListLive returns all minted credentials.
func (s *MemStore) ListLive(_ context.Context) ([]model.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Credential, 0, len(s.byAddr))
	for _, cred := range s.byAddr {
		if cred.Live() {
			out = append(out, copyCredential(cred))
		}
	}
	return out, nil
}

// TokenIssued reports whether tokenID has ever been recorded.
func (s *MemStore) TokenIssued(_ context.Context, tokenID uint64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.owners[tokenID]
	return ok, nil
}

// Len reports the number of addresses with any credential record.
func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byAddr)
}

func copyCredential(cred model.Credential) model.Credential {
	out := cred
	out.Breakdown = cred.Breakdown.Clone()
	if cred.Badges != nil {
		out.Badges = append([]string(nil), cred.Badges...)
	}
	return out
}
