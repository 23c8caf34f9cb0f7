// Package pending tracks addresses with an in-flight refresh so the
// same wallet is not queued twice.
package pending

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/reflekt-labs/reflekt/internal/domain/model"
)

// Tracker records addresses awaiting a refresh.
type Tracker interface {
	// SeenAndRecord atomically checks whether address already has a
	// pending refresh and records it if not. Returns true if it was
	// already pending.
	SeenAndRecord(ctx context.Context, address model.Address) bool

	// Unrecord clears the pending mark after the refresh completes or
	// fails to enqueue.
	Unrecord(ctx context.Context, address model.Address)

	Size() int64
}

// inMemoryTracker is the map-backed Tracker.
type inMemoryTracker struct {
	mu      sync.Mutex
	pending map[model.Address]struct{}
	size    atomic.Int64
}

// NewInMemoryTracker creates an empty tracker.
func NewInMemoryTracker() Tracker {
	return &inMemoryTracker{pending: make(map[model.Address]struct{})}
}

func (t *inMemoryTracker) SeenAndRecord(_ context.Context, address model.Address) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.pending[address]; ok {
		return true
	}
	t.pending[address] = struct{}{}
	t.size.Add(1)
	return false
}

func (t *inMemoryTracker) Unrecord(_ context.Context, address model.Address) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.pending[address]; ok {
		delete(t.pending, address)
		t.size.Add(-1)
	}
}

func (t *inMemoryTracker) Size() int64 {
	return t.size.Load()
}
