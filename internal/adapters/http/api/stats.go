// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/reflekt-labs/reflekt/internal/domain/tier"
	"github.com/reflekt-labs/reflekt/internal/leaderboard"
)

// StatsDependencies defines the interface for service statistics.
type StatsDependencies interface {
	Statistics(ctx context.Context) leaderboard.Stats
	TierLadder(ctx context.Context) []tier.Bin
	QueueDepth(ctx context.Context) int
}

// StatsHandler handles stats and tier ladder requests.
type StatsHandler struct {
	deps StatsDependencies
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(deps StatsDependencies) *StatsHandler {
	return &StatsHandler{deps: deps}
}

// statsResponse combines population statistics with pipeline state.
type statsResponse struct {
	leaderboard.Stats
	QueueDepth int `json:"queue_depth"`
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{
		Stats:      h.deps.Statistics(r.Context()),
		QueueDepth: h.deps.QueueDepth(r.Context()),
	})
}

// tierEntry is one rung of the tier ladder with its description.
type tierEntry struct {
	Tier        string `json:"tier"`
	MinScore    int    `json:"min_score"`
	MaxScore    int    `json:"max_score"`
	Description string `json:"description"`
}

// HandleTiers handles GET /tiers requests.
func (h *StatsHandler) HandleTiers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	bins := h.deps.TierLadder(r.Context())
	out := make([]tierEntry, 0, len(bins))
	for _, b := range bins {
		out = append(out, tierEntry{
			Tier:        string(b.Tier),
			MinScore:    b.Min,
			MaxScore:    b.Max,
			Description: tier.Describe(b.Tier),
		})
	}
	writeJSON(w, http.StatusOK, out)
}
