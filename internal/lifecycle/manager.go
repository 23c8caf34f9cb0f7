// Package lifecycle owns the credential state machine: mint, update,
// no-op, burn, re-mint. All transitions settle on chain before any
// local state changes, so a failed submission never leaves the store
// ahead of the ledger.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/reflekt-labs/reflekt/internal/adapters/artifact"
	"github.com/reflekt-labs/reflekt/internal/adapters/chain"
	"github.com/reflekt-labs/reflekt/internal/adapters/repository"
	"github.com/reflekt-labs/reflekt/internal/domain/model"
	"github.com/reflekt-labs/reflekt/internal/syncutil"
	"github.com/reflekt-labs/reflekt/pkg/logger"
	"github.com/reflekt-labs/reflekt/pkg/metrics"
)

// Default lifecycle configuration constants.
const (
	defaultDeadBand      = 3
	defaultSubmitTimeout = 5 * time.Second
	defaultSubmitRetries = 2
	defaultRetryBackoff  = 250 * time.Millisecond
)

// Outcome names the transition a request produced.
type Outcome string

// Transition outcomes.
const (
	OutcomeMinted    Outcome = "minted"
	OutcomeUpdated   Outcome = "updated"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeBurned    Outcome = "burned"
)

// Assessment is the scored input to a credential request.
type Assessment struct {
	Address   model.Address
	Score     int
	Tier      string
	Badges    []string
	Breakdown model.Breakdown
}

// Result reports the transition and the credential after it.
type Result struct {
	Outcome    Outcome
	Credential model.Credential
}

// Manager drives credential transitions.
type Manager struct {
	store     repository.Store
	submitter chain.Submitter
	artifacts artifact.Generator
	locks     *syncutil.KeyedMutex

	deadBand      int
	submitTimeout time.Duration
	submitRetries int
	retryBackoff  time.Duration

	now      func() time.Time
	onChange func(ctx context.Context)

	logger logger.Logger
}

// NewManager creates a lifecycle manager with configuration options.
func NewManager(store repository.Store, submitter chain.Submitter, artifacts artifact.Generator, opts ...Option) *Manager {
	m := &Manager{
		store:         store,
		submitter:     submitter,
		artifacts:     artifacts,
		locks:         syncutil.NewKeyedMutex(),
		deadBand:      defaultDeadBand,
		submitTimeout: defaultSubmitTimeout,
		submitRetries: defaultSubmitRetries,
		retryBackoff:  defaultRetryBackoff,
		now:           time.Now,
		logger:        logger.Get().Named("lifecycle"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RequestCredential applies an assessment to the address's credential:
// mint when none is live, update when the score moved materially, no-op
// otherwise. Concurrent requests for the same address are rejected
// rather than queued.
func (m *Manager) RequestCredential(ctx context.Context, a Assessment) (Result, error) {
	unlock, ok := m.locks.TryLock(string(a.Address))
	if !ok {
		m.logger.Warn(ctx, "concurrent credential request rejected",
			logger.String("address", string(a.Address)),
		)
		return Result{}, fmt.Errorf("%w: %s", ErrAlreadyCredentialed, a.Address)
	}
	defer unlock()

	cred, exists, err := m.store.Get(ctx, a.Address)
	if err != nil {
		metrics.RecordLifecycleError("store")
		return Result{}, fmt.Errorf("load credential: %w", err)
	}

	if exists && cred.Live() {
		return m.refresh(ctx, cred, a)
	}
	return m.mint(ctx, a)
}

// Burn destroys the address's live credential. Blocks until any
// in-flight request for the address completes.
func (m *Manager) Burn(ctx context.Context, address model.Address) (Result, error) {
	unlock, err := m.locks.Lock(ctx, string(address))
	if err != nil {
		return Result{}, fmt.Errorf("acquire lock: %w", err)
	}
	defer unlock()

	cred, exists, err := m.store.Get(ctx, address)
	if err != nil {
		metrics.RecordLifecycleError("store")
		return Result{}, fmt.Errorf("load credential: %w", err)
	}
	if !exists || !cred.Live() {
		return Result{}, fmt.Errorf("%w: %s", ErrNoActiveCredential, address)
	}

	err = m.submitWithRetry(ctx, func(sctx context.Context) error {
		return m.submitter.SubmitBurn(sctx, cred.TokenID)
	})
	if err != nil {
		metrics.RecordLifecycleError("burn")
		return Result{}, fmt.Errorf("burn token %d: %w", cred.TokenID, err)
	}

	cred.State = model.StateBurned
	cred.UpdatedAt = m.now()
	if err := m.store.Put(ctx, cred); err != nil {
		metrics.RecordLifecycleError("store")
		return Result{}, fmt.Errorf("record burn: %w", err)
	}

	metrics.RecordCredentialBurn()
	m.logger.Info(ctx, "credential burned",
		logger.String("address", string(address)),
		logger.Uint64("token_id", cred.TokenID),
	)
	m.notifyChange(ctx)
	return Result{Outcome: OutcomeBurned, Credential: cred}, nil
}

// mint issues a fresh credential. Re-mints after a burn take this path
// and always receive a new token id.
func (m *Manager) mint(ctx context.Context, a Assessment) (Result, error) {
	art, err := m.artifacts.Generate(ctx, artifact.Request{
		Address:   a.Address,
		Score:     a.Score,
		Tier:      a.Tier,
		Badges:    a.Badges,
		Breakdown: a.Breakdown,
	})
	if err != nil {
		metrics.RecordLifecycleError("artifact")
		return Result{}, fmt.Errorf("generate artifact: %w", err)
	}

	var tokenID uint64
	err = m.submitWithRetry(ctx, func(sctx context.Context) error {
		var serr error
		tokenID, serr = m.submitter.SubmitMint(sctx, a.Address, art.MetadataURI, a.Score, a.Tier)
		return serr
	})
	if err != nil {
		metrics.RecordLifecycleError("mint")
		return Result{}, fmt.Errorf("mint for %s: %w", a.Address, err)
	}

	issued, err := m.store.TokenIssued(ctx, tokenID)
	if err != nil {
		metrics.RecordLifecycleError("store")
		return Result{}, fmt.Errorf("check token %d: %w", tokenID, err)
	}
	if issued {
		metrics.RecordLifecycleError("token_reuse")
		return Result{}, fmt.Errorf("%w: token %d", repository.ErrTokenReused, tokenID)
	}

	now := m.now()
	cred := model.Credential{
		TokenID:      tokenID,
		OwnerAddress: a.Address,
		Score:        a.Score,
		PrevScore:    a.Score,
		Tier:         a.Tier,
		Badges:       a.Badges,
		Breakdown:    a.Breakdown.Clone(),
		ArtifactURI:  art.MetadataURI,
		State:        model.StateMinted,
		MintedAt:     now,
		UpdatedAt:    now,
	}
	if err := m.store.Put(ctx, cred); err != nil {
		if errors.Is(err, repository.ErrTransferRejected) {
			metrics.RecordTransferRejected()
			m.logger.Error(ctx, "soulbound violation blocked",
				logger.String("address", string(a.Address)),
				logger.Uint64("token_id", tokenID),
			)
		} else {
			metrics.RecordLifecycleError("store")
		}
		return Result{}, fmt.Errorf("record mint: %w", err)
	}

	metrics.RecordCredentialMint()
	m.logger.Info(ctx, "credential minted",
		logger.String("address", string(a.Address)),
		logger.Uint64("token_id", tokenID),
		logger.Int("score", a.Score),
		logger.String("tier", a.Tier),
	)
	m.notifyChange(ctx)
	return Result{Outcome: OutcomeMinted, Credential: cred}, nil
}

// refresh updates a live credential, suppressing immaterial movements.
func (m *Manager) refresh(ctx context.Context, cred model.Credential, a Assessment) (Result, error) {
	delta := a.Score - cred.Score
	if delta < 0 {
		delta = -delta
	}
	if delta < m.deadBand && a.Tier == cred.Tier {
		metrics.RecordCredentialNoop()
		m.logger.Debug(ctx, "credential unchanged",
			logger.String("address", string(a.Address)),
			logger.Int("delta", delta),
		)
		return Result{Outcome: OutcomeUnchanged, Credential: cred}, nil
	}

	art, err := m.artifacts.Generate(ctx, artifact.Request{
		Address:   a.Address,
		Score:     a.Score,
		Tier:      a.Tier,
		Badges:    a.Badges,
		Breakdown: a.Breakdown,
	})
	if err != nil {
		metrics.RecordLifecycleError("artifact")
		return Result{}, fmt.Errorf("generate artifact: %w", err)
	}

	err = m.submitWithRetry(ctx, func(sctx context.Context) error {
		return m.submitter.SubmitUpdate(sctx, cred.TokenID, art.MetadataURI, a.Score, a.Tier)
	})
	if err != nil {
		metrics.RecordLifecycleError("update")
		return Result{}, fmt.Errorf("update token %d: %w", cred.TokenID, err)
	}

	cred.PrevScore = cred.Score
	cred.Score = a.Score
	cred.Tier = a.Tier
	cred.Badges = a.Badges
	cred.Breakdown = a.Breakdown.Clone()
	cred.ArtifactURI = art.MetadataURI
	cred.UpdatedAt = m.now()
	if err := m.store.Put(ctx, cred); err != nil {
		metrics.RecordLifecycleError("store")
		return Result{}, fmt.Errorf("record update: %w", err)
	}

	metrics.RecordCredentialUpdate()
	m.logger.Info(ctx, "credential updated",
		logger.String("address", string(a.Address)),
		logger.Uint64("token_id", cred.TokenID),
		logger.Int("score", a.Score),
		logger.String("tier", a.Tier),
	)
	m.notifyChange(ctx)
	return Result{Outcome: OutcomeUpdated, Credential: cred}, nil
}

// submitWithRetry runs one chain submission with a per-attempt timeout.
// Only timeouts are retried; an explicit rejection is final.
func (m *Manager) submitWithRetry(ctx context.Context, submit func(context.Context) error) error {
	var last error
	for attempt := 0; attempt <= m.submitRetries; attempt++ {
		if attempt > 0 {
			metrics.RecordChainRetry()
			backoff := m.retryBackoff << (attempt - 1)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return fmt.Errorf("retry aborted: %w", ctx.Err())
			}
		}

		sctx, cancel := context.WithTimeout(ctx, m.submitTimeout)
		err := submit(sctx)
		cancel()
		if err == nil {
			return nil
		}
		last = err
		if !errors.Is(err, chain.ErrSubmissionTimeout) {
			return err
		}
	}
	return last
}

func (m *Manager) notifyChange(ctx context.Context) {
	if m.onChange != nil {
		m.onChange(ctx)
	}
}
