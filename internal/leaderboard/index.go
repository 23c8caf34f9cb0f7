// Package leaderboard ranks live credentials. The index holds an
// immutable snapshot rebuilt from the credential store after every
// committed transition; reads never block writers.
package leaderboard

import (
	"sort"
	"sync"
	"time"

	"github.com/reflekt-labs/reflekt/internal/domain/model"
	"github.com/reflekt-labs/reflekt/pkg/metrics"
)

// Entry is one ranked credential.
type Entry struct {
	Rank      int             `json:"rank"`
	Address   model.Address   `json:"address"`
	TokenID   uint64          `json:"token_id"`
	Score     int             `json:"score"`
	PrevScore int             `json:"prev_score"`
	Tier      string          `json:"tier"`
	Badges    []string        `json:"badges,omitempty"`
	Breakdown model.Breakdown `json:"breakdown"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Stats summarizes the live credential population.
type Stats struct {
	TotalCredentials int            `json:"total_credentials"`
	AverageScore     float64        `json:"average_score"`
	MinScore         int            `json:"min_score"`
	MaxScore         int            `json:"max_score"`
	TierDistribution map[string]int `json:"tier_distribution"`
	BadgesAwarded    map[string]int `json:"badges_awarded"`
}

// Index is the rebuildable ranking over live credentials.
type Index struct {
	mu      sync.RWMutex
	entries []Entry // score desc, token id asc, ranks assigned
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{}
}

// Rebuild replaces the snapshot from the full live credential set.
// Ordering is score descending with token id ascending as tiebreak, so
// earlier mints rank ahead on equal scores.
func (idx *Index) Rebuild(creds []model.Credential) {
	start := time.Now()

	entries := make([]Entry, 0, len(creds))
	for i := range creds {
		c := &creds[i]
		if !c.Live() {
			continue
		}
		entries = append(entries, Entry{
			Address:   c.OwnerAddress,
			TokenID:   c.TokenID,
			Score:     c.Score,
			PrevScore: c.PrevScore,
			Tier:      c.Tier,
			Badges:    c.Badges,
			Breakdown: c.Breakdown,
			UpdatedAt: c.UpdatedAt,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].TokenID < entries[j].TokenID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	idx.mu.Lock()
	idx.entries = entries
	idx.mu.Unlock()

	metrics.RecordLeaderboardRebuild(float64(time.Since(start).Milliseconds()))
	metrics.UpdateLiveCredentials(len(entries))
}

// TopN returns the highest ranked entries, at most limit.
func (idx *Index) TopN(limit int) []Entry {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	if limit <= 0 || len(idx.entries) == 0 {
		return []Entry{}
	}
	if limit > len(idx.entries) {
		limit = len(idx.entries)
	}
	out := make([]Entry, limit)
	copy(out, idx.entries[:limit])
	return out
}

// TopByCategory ranks by one criterion's contribution, breaking ties
// on blended score then token id. Ranks are reassigned for the view.
func (idx *Index) TopByCategory(criterion model.Criterion, limit int) ([]Entry, error) {
	if !model.ValidCriterion(string(criterion)) {
		return nil, ErrUnknownCategory
	}

	idx.mu.RLock()
	entries := make([]Entry, len(idx.entries))
	copy(entries, idx.entries)
	idx.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		ci, cj := entries[i].Breakdown[criterion], entries[j].Breakdown[criterion]
		if ci != cj {
			return ci > cj
		}
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].TokenID < entries[j].TokenID
	})
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

// RisingStars returns entries whose score rose in their latest refresh
// within the window, ordered by gain descending.
func (idx *Index) RisingStars(window time.Duration, limit int, now time.Time) []Entry {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	cutoff := now.Add(-window)
	rising := make([]Entry, 0)
	for _, e := range idx.entries {
		if e.Score > e.PrevScore && !e.UpdatedAt.Before(cutoff) {
			rising = append(rising, e)
		}
	}
	sort.Slice(rising, func(i, j int) bool {
		di, dj := rising[i].Score-rising[i].PrevScore, rising[j].Score-rising[j].PrevScore
		if di != dj {
			return di > dj
		}
		return rising[i].TokenID < rising[j].TokenID
	})
	if limit > 0 && limit < len(rising) {
		rising = rising[:limit]
	}
	for i := range rising {
		rising[i].Rank = i + 1
	}
	return rising
}

// Statistics aggregates the current snapshot.
func (idx *Index) Statistics() Stats {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	stats := Stats{
		TierDistribution: make(map[string]int),
		BadgesAwarded:    make(map[string]int),
	}
	if len(idx.entries) == 0 {
		return stats
	}

	stats.TotalCredentials = len(idx.entries)
	stats.MinScore = idx.entries[0].Score
	stats.MaxScore = idx.entries[0].Score
	sum := 0
	for _, e := range idx.entries {
		sum += e.Score
		if e.Score < stats.MinScore {
			stats.MinScore = e.Score
		}
		if e.Score > stats.MaxScore {
			stats.MaxScore = e.Score
		}
		stats.TierDistribution[e.Tier]++
		for _, b := range e.Badges {
			stats.BadgesAwarded[b]++
		}
	}
	stats.AverageScore = float64(sum) / float64(len(idx.entries))
	return stats
}

// Len reports the number of entries in the current snapshot.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}
