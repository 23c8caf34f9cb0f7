// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/reflekt-labs/reflekt/internal/domain/model"
	"github.com/reflekt-labs/reflekt/internal/leaderboard"
)

// LeaderboardDependencies defines the interface for ranking queries.
type LeaderboardDependencies interface {
	TopN(ctx context.Context, limit int) []leaderboard.Entry
	TopByCategory(ctx context.Context, criterion model.Criterion, limit int) ([]leaderboard.Entry, error)
	RisingStars(ctx context.Context, window time.Duration, limit int) []leaderboard.Entry
}

// LeaderboardHandler handles leaderboard requests.
type LeaderboardHandler struct {
	deps     LeaderboardDependencies
	maxLimit int
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps LeaderboardDependencies, maxLimit int) *LeaderboardHandler {
	return &LeaderboardHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetLeaderboard handles GET /leaderboard?limit=N requests.
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_leaderboard"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	limit, err := h.parseLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	writeJSON(w, http.StatusOK, h.deps.TopN(r.Context(), limit))
}

// HandleGetCategory handles GET /leaderboard/category/{criterion} requests.
func (h *LeaderboardHandler) HandleGetCategory(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_leaderboard_category"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/leaderboard/category/")
	if name == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	limit, err := h.parseLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	entries, err := h.deps.TopByCategory(r.Context(), model.Criterion(name), limit)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// HandleGetRising handles GET /leaderboard/rising?window_minutes=M requests.
func (h *LeaderboardHandler) HandleGetRising(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_rising_stars"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	limit, err := h.parseLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	var window time.Duration
	if raw := r.URL.Query().Get("window_minutes"); raw != "" {
		minutes, perr := strconv.Atoi(raw)
		if perr != nil || minutes < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		window = time.Duration(minutes) * time.Minute
	}
	writeJSON(w, http.StatusOK, h.deps.RisingStars(r.Context(), window, limit))
}

// parseLimit reads the optional limit query parameter. Absent means the
// configured maximum.
func (h *LeaderboardHandler) parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return h.maxLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, ErrBadRequest
	}
	if limit > h.maxLimit {
		limit = h.maxLimit
	}
	return limit, nil
}
