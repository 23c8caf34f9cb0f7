// Package wallet defines the metrics ingestion contract and local
// providers. Real deployments plug an indexer-backed implementation in;
// the in-memory and synthetic providers cover tests and demos.
package wallet

import (
	"context"
	"fmt"
	"sync"

	"github.com/reflekt-labs/reflekt/internal/domain/model"
)

// Provider supplies one metrics snapshot per address.
type Provider interface {
	// GetMetrics returns the latest snapshot for address. Fails with
	// ErrMetricsUnavailable when the upstream source has nothing;
	// retries belong to the caller, not the provider.
	GetMetrics(ctx context.Context, address model.Address) (model.WalletMetrics, error)
}

// InMemoryProvider serves snapshots seeded through Put. Keys are stored
// checksummed so lookups are case-insensitive over hex addresses.
type InMemoryProvider struct {
	mu        sync.RWMutex
	snapshots map[model.Address]model.WalletMetrics
}

// NewInMemoryProvider creates an empty provider.
func NewInMemoryProvider() *InMemoryProvider {
	return &InMemoryProvider{snapshots: make(map[model.Address]model.WalletMetrics)}
}

// Put stores a snapshot, replacing any previous one for the address.
func (p *InMemoryProvider) Put(ctx context.Context, metrics model.WalletMetrics) error {
	addr, ok := model.NormalizeAddress(metrics.Address)
	if !ok {
		return fmt.Errorf("put metrics: %w", ErrMetricsUnavailable)
	}
	metrics.Address = addr
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snapshots[addr] = metrics
	return nil
}

// GetMetrics returns the stored snapshot for address.
func (p *InMemoryProvider) GetMetrics(ctx context.Context, address model.Address) (model.WalletMetrics, error) {
	addr, ok := model.NormalizeAddress(address)
	if !ok {
		return model.WalletMetrics{}, fmt.Errorf("%w: malformed address %q", ErrMetricsUnavailable, address)
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	m, found := p.snapshots[addr]
	if !found {
		return model.WalletMetrics{}, fmt.Errorf("%w: no snapshot for %s", ErrMetricsUnavailable, addr)
	}
	return m, nil
}
