// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/reflekt-labs/reflekt/internal/adapters/chain"
	"github.com/reflekt-labs/reflekt/internal/adapters/wallet"
	"github.com/reflekt-labs/reflekt/internal/app"
	"github.com/reflekt-labs/reflekt/internal/domain/model"
	"github.com/reflekt-labs/reflekt/internal/domain/scoring"
	"github.com/reflekt-labs/reflekt/internal/domain/tier"
	"github.com/reflekt-labs/reflekt/internal/leaderboard"
	"github.com/reflekt-labs/reflekt/internal/lifecycle"
)

// Dependencies required by HTTP handlers. An interface bundle keeps the
// handler layer loosely coupled to the service implementation.
type Dependencies interface {
	Assess(ctx context.Context, address model.Address) (app.Assessment, error)
	SyncCredential(ctx context.Context, address model.Address) (lifecycle.Result, error)
	BurnCredential(ctx context.Context, address model.Address) (lifecycle.Result, error)
	GetCredential(ctx context.Context, address model.Address) (model.Credential, bool, error)
	EnqueueRefresh(ctx context.Context, address model.Address) (string, bool)

	TopN(ctx context.Context, limit int) []leaderboard.Entry
	TopByCategory(ctx context.Context, criterion model.Criterion, limit int) ([]leaderboard.Entry, error)
	RisingStars(ctx context.Context, window time.Duration, limit int) []leaderboard.Entry
	Search(ctx context.Context, q leaderboard.Query) ([]leaderboard.Entry, error)
	ExportProfiles(ctx context.Context, q leaderboard.Query) ([]leaderboard.Profile, error)
	Statistics(ctx context.Context) leaderboard.Stats
	TierLadder(ctx context.Context) []tier.Bin
	QueueDepth(ctx context.Context) int
}

// Server wires HTTP routes for the business API.
type Server struct {
	reputationHandler  *ReputationHandler
	credentialHandler  *CredentialHandler
	leaderboardHandler *LeaderboardHandler
	searchHandler      *SearchHandler
	statsHandler       *StatsHandler
	healthHandler      *HealthHandler
}

// NewServer creates an API server with all handlers.
func NewServer(deps Dependencies, maxLimit int) *Server {
	return &Server{
		reputationHandler:  NewReputationHandler(deps),
		credentialHandler:  NewCredentialHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps, maxLimit),
		searchHandler:      NewSearchHandler(deps),
		statsHandler:       NewStatsHandler(deps),
		healthHandler:      NewHealthHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/reputation", MetricsMiddleware(s.reputationHandler.HandleComputeReputation, "reputation"))
	mux.HandleFunc("/credentials/sync", MetricsMiddleware(s.credentialHandler.HandleSync, "credentials_sync"))
	mux.HandleFunc("/credentials/burn", MetricsMiddleware(s.credentialHandler.HandleBurn, "credentials_burn"))
	mux.HandleFunc("/credentials/", MetricsMiddleware(s.credentialHandler.HandleGetCredential, "credentials_get"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/leaderboard/category/", MetricsMiddleware(s.leaderboardHandler.HandleGetCategory, "leaderboard_category"))
	mux.HandleFunc("/leaderboard/rising", MetricsMiddleware(s.leaderboardHandler.HandleGetRising, "leaderboard_rising"))
	mux.HandleFunc("/candidates/search", MetricsMiddleware(s.searchHandler.HandleSearch, "candidates_search"))
	mux.HandleFunc("/candidates/export", MetricsMiddleware(s.searchHandler.HandleExport, "candidates_export"))
	mux.HandleFunc("/tiers", MetricsMiddleware(s.statsHandler.HandleTiers, "tiers"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
}

// addressRequest is the common body shape for address-keyed operations.
type addressRequest struct {
	Address string `json:"address"`
	Async   bool   `json:"async,omitempty"`
}

// resultResponse reports a credential transition.
type resultResponse struct {
	Outcome    string           `json:"outcome"`
	Credential model.Credential `json:"credential"`
}

// ackResponse acknowledges an async refresh.
type ackResponse struct {
	Status    string `json:"status"`
	RequestID string `json:"request_id,omitempty"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError maps sentinel errors onto stable HTTP codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, lifecycle.ErrAlreadyCredentialed):
		writeError(w, http.StatusConflict, "operation_in_flight", err)
	case errors.Is(err, lifecycle.ErrNoActiveCredential):
		writeError(w, http.StatusNotFound, "no_active_credential", err)
	case errors.Is(err, lifecycle.ErrTransferRejected):
		writeError(w, http.StatusForbidden, "transfer_rejected", err)
	case errors.Is(err, wallet.ErrMetricsUnavailable):
		writeError(w, http.StatusNotFound, "metrics_unavailable", err)
	case errors.Is(err, scoring.ErrInvalidMetrics):
		writeError(w, http.StatusBadRequest, "invalid_metrics", err)
	case errors.Is(err, chain.ErrSubmissionTimeout):
		writeError(w, http.StatusGatewayTimeout, "chain_timeout", err)
	case errors.Is(err, chain.ErrSubmissionFailed):
		writeError(w, http.StatusBadGateway, "chain_rejected", err)
	case errors.Is(err, leaderboard.ErrUnknownCategory):
		writeError(w, http.StatusBadRequest, "unknown_category", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

// Wrap annotates err with the operation name.
func Wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// NewKind builds an error of the given kind for op.
func NewKind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}

// WrapKind attaches both a kind and a cause to op.
func WrapKind(op string, kind error, err error) error {
	return fmt.Errorf("%s: %w: %v", op, kind, err)
}
