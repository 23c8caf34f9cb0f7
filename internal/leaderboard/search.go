package leaderboard

import (
	"github.com/reflekt-labs/reflekt/internal/domain/model"
)

// Query is a candidate search. All populated predicates must hold for
// an entry to match.
type Query struct {
	MinScore          int                     `json:"min_score"`
	MinCategoryScores map[model.Criterion]int `json:"min_category_scores,omitempty"`
	RequiredBadges    []string                `json:"required_badges,omitempty"`
	Tiers             []string                `json:"tiers,omitempty"`
	Limit             int                     `json:"limit"`
}

// Validate rejects queries naming unknown criteria.
func (q Query) Validate() error {
	for c := range q.MinCategoryScores {
		if !model.ValidCriterion(string(c)) {
			return ErrUnknownCategory
		}
	}
	return nil
}

// Search filters the snapshot with the query's predicates, preserving
// leaderboard order.
func (idx *Index) Search(q Query) ([]Entry, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]Entry, 0)
	for _, e := range idx.entries {
		if !matches(e, q) {
			continue
		}
		out = append(out, e)
		if q.Limit > 0 && len(out) >= q.Limit {
			break
		}
	}
	return out, nil
}

func matches(e Entry, q Query) bool {
	if e.Score < q.MinScore {
		return false
	}
	for c, minVal := range q.MinCategoryScores {
		if e.Breakdown[c] < minVal {
			return false
		}
	}
	for _, b := range q.RequiredBadges {
		if !hasBadge(e.Badges, b) {
			return false
		}
	}
	if len(q.Tiers) > 0 {
		found := false
		for _, t := range q.Tiers {
			if e.Tier == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func hasBadge(badges []string, name string) bool {
	for _, b := range badges {
		if b == name {
			return true
		}
	}
	return false
}
