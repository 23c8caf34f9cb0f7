package chain

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/reflekt-labs/reflekt/internal/domain/model"
	"github.com/reflekt-labs/reflekt/pkg/metrics"
)

// Default simulator configuration constants.
const (
	defaultMinLatency = 20 * time.Millisecond
	defaultMaxLatency = 120 * time.Millisecond
	defaultRandomSeed = 42
)

// token is the simulated ledger's record of one credential token.
type token struct {
	owner  model.Address
	uri    string
	score  int
	tier   string
	burned bool
}

// SimLedger implements Submitter with an in-memory ledger and simulated
// consensus latency. Token ids are allocated from a monotonic counter
// and never reused, which is what guarantees re-mint freshness.
type SimLedger struct {
	mu     sync.Mutex
	nextID uint64
	tokens map[uint64]*token

	minLatency time.Duration
	maxLatency time.Duration
	rng        *rand.Rand
}

// Option applies a configuration option to the SimLedger.
type Option func(*SimLedger)

// WithLatencyRange sets the simulated confirmation latency bounds.
func WithLatencyRange(minLatency, maxLatency time.Duration) Option {
	return func(s *SimLedger) {
		if minLatency > 0 && maxLatency > minLatency {
			s.minLatency = minLatency
			s.maxLatency = maxLatency
		}
	}
}

// NewSimLedger creates a simulated ledger.
func NewSimLedger(opts ...Option) *SimLedger {
	s := &SimLedger{
		nextID:     1,
		tokens:     make(map[uint64]*token),
		minLatency: defaultMinLatency,
		maxLatency: defaultMaxLatency,
		rng:        rand.New(rand.NewSource(defaultRandomSeed)), //nolint:gosec // deterministic latency simulation
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitMint allocates a fresh token id bound to address.
func (s *SimLedger) SubmitMint(ctx context.Context, address model.Address, uri string, score int, tierName string) (uint64, error) {
	if err := s.confirm(ctx); err != nil {
		return 0, err
	}
	if address == "" {
		return 0, fmt.Errorf("%w: empty address", ErrSubmissionFailed)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.tokens[id] = &token{owner: address, uri: uri, score: score, tier: tierName}
	return id, nil
}

// SubmitUpdate rewrites the mutable fields of a live token.
func (s *SimLedger) SubmitUpdate(ctx context.Context, tokenID uint64, uri string, score int, tierName string) error {
	if err := s.confirm(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[tokenID]
	if !ok || t.burned {
		return fmt.Errorf("%w: token %d", ErrUnknownToken, tokenID)
	}
	t.uri = uri
	t.score = score
	t.tier = tierName
	return nil
}

// SubmitBurn destroys a live token.
func (s *SimLedger) SubmitBurn(ctx context.Context, tokenID uint64) error {
	if err := s.confirm(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[tokenID]
	if !ok || t.burned {
		return fmt.Errorf("%w: token %d", ErrUnknownToken, tokenID)
	}
	t.burned = true
	return nil
}

// OwnerOf reports the owner of a token, for inspection in tests.
func (s *SimLedger) OwnerOf(tokenID uint64) (model.Address, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[tokenID]
	if !ok {
		return "", false
	}
	return t.owner, true
}

// confirm simulates consensus latency, honoring ctx cancellation.
func (s *SimLedger) confirm(ctx context.Context) error {
	start := time.Now()
	defer func() {
		metrics.RecordChainSubmitLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.Lock()
	latency := s.minLatency + time.Duration(s.rng.Int63n(int64(s.maxLatency-s.minLatency)))
	s.mu.Unlock()

	timer := time.NewTimer(latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w: %v", ErrSubmissionTimeout, ctx.Err())
		}
		return fmt.Errorf("%w: %v", ErrSubmissionFailed, ctx.Err())
	}
}
