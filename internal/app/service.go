// Package app wires the domain, adapters, and lifecycle into one
// service that backs the HTTP API and the refresh pipeline.
package app

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/reflekt-labs/reflekt/internal/adapters/artifact"
	"github.com/reflekt-labs/reflekt/internal/adapters/chain"
	refreshqueue "github.com/reflekt-labs/reflekt/internal/adapters/mq/queue"
	workerpool "github.com/reflekt-labs/reflekt/internal/adapters/mq/worker"
	"github.com/reflekt-labs/reflekt/internal/adapters/repository"
	"github.com/reflekt-labs/reflekt/internal/adapters/wallet"
	"github.com/reflekt-labs/reflekt/internal/domain/badge"
	"github.com/reflekt-labs/reflekt/internal/domain/model"
	"github.com/reflekt-labs/reflekt/internal/domain/pending"
	"github.com/reflekt-labs/reflekt/internal/domain/scoring"
	"github.com/reflekt-labs/reflekt/internal/domain/tier"
	"github.com/reflekt-labs/reflekt/internal/leaderboard"
	"github.com/reflekt-labs/reflekt/internal/lifecycle"
	"github.com/reflekt-labs/reflekt/pkg/logger"
	"github.com/reflekt-labs/reflekt/pkg/metrics"
)

// Assessment bundles the scored view of one wallet.
type Assessment struct {
	Address    model.Address         `json:"address"`
	Score      model.ReputationScore `json:"score"`
	Tier       tier.Tier             `json:"tier"`
	Badges     []string              `json:"badges"`
	Metrics    model.WalletMetrics   `json:"metrics"`
	AssessedAt time.Time             `json:"assessed_at"`
}

// Service implements the API dependencies for the reputation system.
type Service struct {
	mu sync.RWMutex

	// Core components
	metricsSource wallet.Provider
	engine        scoring.Engine
	classifier    *tier.Classifier
	badges        *badge.Evaluator
	store         repository.Store
	submitter     chain.Submitter
	artifacts     artifact.Generator
	manager       *lifecycle.Manager
	index         *leaderboard.Index
	tracker       pending.Tracker
	queue         refreshqueue.Queue
	pool          *workerpool.Pool

	// Configuration
	workerCount   int
	queueSize     int
	deadBand      int
	submitTimeout time.Duration
	submitRetries int
	retryBackoff  time.Duration
	maxLimit      int
	risingWindow  time.Duration

	now func() time.Time

	// State
	started bool

	// Logging
	logger logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:   runtime.NumCPU() * 2,
		queueSize:     10000,
		deadBand:      3,
		submitTimeout: 5 * time.Second,
		submitRetries: 2,
		retryBackoff:  250 * time.Millisecond,
		maxLimit:      100,
		risingWindow:  24 * time.Hour,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	s.logger.Info(ctx, "starting reputation service...")

	if s.metricsSource == nil {
		s.metricsSource = wallet.NewSyntheticProvider()
	}
	if s.engine == nil {
		s.engine = scoring.NewWeightedEngine()
	}
	if s.classifier == nil {
		classifier, err := tier.NewClassifier(tier.DefaultBins())
		if err != nil {
			return fmt.Errorf("tier ladder: %w", err)
		}
		s.classifier = classifier
	}
	if s.badges == nil {
		s.badges = badge.NewEvaluator()
	}
	if s.store == nil {
		s.store = repository.NewMemStore()
	}
	if s.submitter == nil {
		s.submitter = chain.NewSimLedger()
	}
	if s.artifacts == nil {
		s.artifacts = artifact.NewInMemoryGenerator()
	}

	s.index = leaderboard.NewIndex()
	s.tracker = pending.NewInMemoryTracker()
	s.queue = refreshqueue.NewInMemoryQueue(
		refreshqueue.WithCapacity(s.queueSize),
	)
	s.manager = lifecycle.NewManager(s.store, s.submitter, s.artifacts,
		lifecycle.WithDeadBand(s.deadBand),
		lifecycle.WithSubmitTimeout(s.submitTimeout),
		lifecycle.WithSubmitRetries(s.submitRetries),
		lifecycle.WithRetryBackoff(s.retryBackoff),
		lifecycle.WithClock(s.now),
		lifecycle.WithOnChange(s.rebuildIndex),
	)
	s.pool = workerpool.NewPool(s.workerCount, s.queue, s)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "reputation service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queue_size", s.queueSize),
		logger.Int("dead_band", s.deadBand),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.logger.Info(ctx, "stopping reputation service...")

	if s.pool != nil {
		_ = s.pool.Shutdown(ctx)
	}

	s.started = false
	s.logger.Info(ctx, "reputation service stopped")
}

// Assess fetches wallet metrics and produces the full scored view
// without touching credential state.
func (s *Service) Assess(ctx context.Context, address model.Address) (Assessment, error) {
	start := time.Now()

	m, err := s.metricsSource.GetMetrics(ctx, address)
	if err != nil {
		return Assessment{}, fmt.Errorf("wallet metrics for %s: %w", address, err)
	}

	score, err := s.engine.Score(m)
	if err != nil {
		metrics.RecordScoringError()
		return Assessment{}, fmt.Errorf("score %s: %w", address, err)
	}
	metrics.RecordScoreComputed()
	metrics.RecordScoringLatency(float64(time.Since(start).Milliseconds()))

	return Assessment{
		Address:    address,
		Score:      score,
		Tier:       s.classifier.Classify(score.Value),
		Badges:     s.badges.Evaluate(m),
		Metrics:    m,
		AssessedAt: s.now(),
	}, nil
}

// SyncCredential assesses the wallet and drives the credential state
// machine with the result.
func (s *Service) SyncCredential(ctx context.Context, address model.Address) (lifecycle.Result, error) {
	a, err := s.Assess(ctx, address)
	if err != nil {
		return lifecycle.Result{}, err
	}
	return s.manager.RequestCredential(ctx, lifecycle.Assessment{
		Address:   a.Address,
		Score:     a.Score.Value,
		Tier:      string(a.Tier),
		Badges:    a.Badges,
		Breakdown: a.Score.Breakdown,
	})
}

// BurnCredential destroys the wallet's live credential.
func (s *Service) BurnCredential(ctx context.Context, address model.Address) (lifecycle.Result, error) {
	return s.manager.Burn(ctx, address)
}

// GetCredential returns the stored credential for address.
func (s *Service) GetCredential(ctx context.Context, address model.Address) (model.Credential, bool, error) {
	return s.store.Get(ctx, address)
}

// EnqueueRefresh schedules an asynchronous credential sync. Duplicate
// requests for an address already in flight are collapsed.
func (s *Service) EnqueueRefresh(ctx context.Context, address model.Address) (string, bool) {
	if s.tracker.SeenAndRecord(ctx, address) {
		s.logger.Debug(ctx, "refresh already pending",
			logger.String("address", string(address)),
		)
		return "", true
	}

	job := refreshqueue.NewJob(address)
	if !s.queue.Enqueue(ctx, job) {
		s.tracker.Unrecord(ctx, address)
		return "", false
	}
	return job.RequestID, true
}

// Refresh implements the worker Syncer contract: a queued job becomes
// a full credential sync.
func (s *Service) Refresh(ctx context.Context, job refreshqueue.Job) error {
	defer s.tracker.Unrecord(ctx, job.Address)

	_, err := s.SyncCredential(ctx, job.Address)
	if err != nil {
		return fmt.Errorf("refresh %s: %w", job.Address, err)
	}
	return nil
}

// TopN returns the top leaderboard entries.
func (s *Service) TopN(_ context.Context, limit int) []leaderboard.Entry {
	return s.index.TopN(s.clampLimit(limit))
}

// TopByCategory ranks by one criterion's contribution.
func (s *Service) TopByCategory(_ context.Context, criterion model.Criterion, limit int) ([]leaderboard.Entry, error) {
	return s.index.TopByCategory(criterion, s.clampLimit(limit))
}

// RisingStars returns recently improved credentials. A non-positive
// window falls back to the configured default.
func (s *Service) RisingStars(_ context.Context, window time.Duration, limit int) []leaderboard.Entry {
	if window <= 0 {
		window = s.risingWindow
	}
	return s.index.RisingStars(window, s.clampLimit(limit), s.now())
}

// Search filters the leaderboard with candidate predicates.
func (s *Service) Search(_ context.Context, q leaderboard.Query) ([]leaderboard.Entry, error) {
	q.Limit = s.clampLimit(q.Limit)
	return s.index.Search(q)
}

// ExportProfiles projects the candidates matching q into recruitment
// export payloads.
func (s *Service) ExportProfiles(_ context.Context, q leaderboard.Query) ([]leaderboard.Profile, error) {
	q.Limit = s.clampLimit(q.Limit)
	return s.index.ExportProfiles(q, s.now())
}

// Statistics aggregates the live credential population.
func (s *Service) Statistics(_ context.Context) leaderboard.Stats {
	return s.index.Statistics()
}

// TierLadder exposes the configured tier bins with descriptions.
func (s *Service) TierLadder(_ context.Context) []tier.Bin {
	return s.classifier.Bins()
}

// QueueDepth reports the number of queued refresh jobs.
func (s *Service) QueueDepth(ctx context.Context) int {
	return s.queue.Len(ctx)
}

// rebuildIndex refreshes the leaderboard snapshot from the store.
func (s *Service) rebuildIndex(ctx context.Context) {
	creds, err := s.store.ListLive(ctx)
	if err != nil {
		s.logger.Error(ctx, "leaderboard rebuild failed", logger.Error(err))
		return
	}
	s.index.Rebuild(creds)
}

func (s *Service) clampLimit(limit int) int {
	if limit <= 0 || limit > s.maxLimit {
		return s.maxLimit
	}
	return limit
}
