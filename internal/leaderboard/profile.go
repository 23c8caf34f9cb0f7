package leaderboard

import (
	"sort"
	"time"

	"github.com/reflekt-labs/reflekt/internal/domain/model"
)

// maxStrengths caps how many top categories an export names.
const maxStrengths = 3

// Profile is the recruitment-facing export of one credentialed wallet:
// the blended score, skill tier, achievements, strongest categories,
// and coarse experience signals DAOs and recruiters filter on.
type Profile struct {
	Address        model.Address `json:"candidate_address"`
	TokenID        uint64        `json:"token_id"`
	OverallScore   int           `json:"overall_score"`
	SkillLevel     string        `json:"skill_level"`
	Achievements   []string      `json:"achievements,omitempty"`
	Strengths      []string      `json:"strengths,omitempty"`
	Governance     bool          `json:"governance_involvement"`
	DeFiExperience bool          `json:"defi_experience"`
	NFTFamiliarity bool          `json:"nft_familiarity"`
	GeneratedAt    time.Time     `json:"generated_at"`
}

// ExportProfiles projects the entries matching q into recruitment
// profiles, in leaderboard order.
func (idx *Index) ExportProfiles(q Query, now time.Time) ([]Profile, error) {
	entries, err := idx.Search(q)
	if err != nil {
		return nil, err
	}

	out := make([]Profile, 0, len(entries))
	for _, e := range entries {
		out = append(out, exportProfile(e, now))
	}
	return out, nil
}

func exportProfile(e Entry, now time.Time) Profile {
	return Profile{
		Address:        e.Address,
		TokenID:        e.TokenID,
		OverallScore:   e.Score,
		SkillLevel:     e.Tier,
		Achievements:   e.Badges,
		Strengths:      strengths(e.Breakdown),
		Governance:     e.Breakdown[model.CriterionDAOParticipation] > 0,
		DeFiExperience: e.Breakdown[model.CriterionDeFiUsage] > 0,
		NFTFamiliarity: e.Breakdown[model.CriterionNFTMints] > 0,
		GeneratedAt:    now,
	}
}

// strengths names the highest-contributing categories, strongest first,
// ties broken by the canonical criterion order.
func strengths(b model.Breakdown) []string {
	type contribution struct {
		criterion model.Criterion
		order     int
		points    int
	}

	contribs := make([]contribution, 0, len(b))
	for i, c := range model.Criteria() {
		if b[c] > 0 {
			contribs = append(contribs, contribution{criterion: c, order: i, points: b[c]})
		}
	}
	sort.Slice(contribs, func(i, j int) bool {
		if contribs[i].points != contribs[j].points {
			return contribs[i].points > contribs[j].points
		}
		return contribs[i].order < contribs[j].order
	})

	if len(contribs) > maxStrengths {
		contribs = contribs[:maxStrengths]
	}
	out := make([]string, 0, len(contribs))
	for _, c := range contribs {
		out = append(out, string(c.criterion))
	}
	return out
}
