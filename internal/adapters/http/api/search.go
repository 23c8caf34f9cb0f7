// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/reflekt-labs/reflekt/internal/leaderboard"
)

// SearchDependencies defines the interface for candidate search.
type SearchDependencies interface {
	Search(ctx context.Context, q leaderboard.Query) ([]leaderboard.Entry, error)
	ExportProfiles(ctx context.Context, q leaderboard.Query) ([]leaderboard.Profile, error)
}

// SearchHandler handles candidate search requests.
type SearchHandler struct {
	deps SearchDependencies
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(deps SearchDependencies) *SearchHandler {
	return &SearchHandler{deps: deps}
}

// HandleSearch handles POST /candidates/search requests. All populated
// predicates must hold for a wallet to match.
func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	const op = "api.search_candidates"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var q leaderboard.Query
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	entries, err := h.deps.Search(r.Context(), q)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// HandleExport handles POST /candidates/export requests: the same
// predicates as search, projected into recruitment profiles.
func (h *SearchHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	const op = "api.export_candidates"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var q leaderboard.Query
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	profiles, err := h.deps.ExportProfiles(r.Context(), q)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}
