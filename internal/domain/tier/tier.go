// Package tier classifies blended scores into discrete reputation tiers.
package tier

import (
	"fmt"

	"github.com/reflekt-labs/reflekt/internal/domain/scoring"
)

// Tier is a discrete reputation bracket, ordered from Novice upward.
type Tier string

// Tiers in ascending order.
const (
	Novice    Tier = "novice"
	Common    Tier = "common"
	Uncommon  Tier = "uncommon"
	Rare      Tier = "rare"
	Epic      Tier = "epic"
	Legendary Tier = "legendary"
)

// All lists tiers in ascending order.
func All() []Tier {
	return []Tier{Novice, Common, Uncommon, Rare, Epic, Legendary}
}

// Valid reports whether name is a known tier.
func Valid(name string) bool {
	for _, t := range All() {
		if t == Tier(name) {
			return true
		}
	}
	return false
}

// Bin is a half-open score range [Min, Max) mapped to one tier. The top
// bin is closed at scoring.MaxScore so the ladder covers [0,100] exactly.
type Bin struct {
	Tier Tier `json:"tier" koanf:"tier"`
	Min  int  `json:"min" koanf:"min"`
	Max  int  `json:"max" koanf:"max"`
}

// DefaultBins returns the default tier ladder.
func DefaultBins() []Bin {
	return []Bin{
		{Tier: Novice, Min: 0, Max: 20},
		{Tier: Common, Min: 20, Max: 40},
		{Tier: Uncommon, Min: 40, Max: 60},
		{Tier: Rare, Min: 60, Max: 75},
		{Tier: Epic, Min: 75, Max: 90},
		{Tier: Legendary, Min: 90, Max: 100},
	}
}

// descriptions explains each tier for presentation surfaces.
var descriptions = map[Tier]string{
	Legendary: "Elite Web3 contributor with exceptional on-chain reputation",
	Epic:      "Highly respected community member with strong track record",
	Rare:      "Active participant with solid Web3 presence",
	Uncommon:  "Regular user showing consistent engagement",
	Common:    "Growing presence in Web3 ecosystem",
	Novice:    "Beginning the Web3 journey",
}

// Describe returns the human-readable description for a tier.
func Describe(t Tier) string {
	return descriptions[t]
}

// Classifier maps a clamped score to exactly one tier.
type Classifier struct {
	bins []Bin
}

// NewClassifier validates the bin ladder and builds a classifier.
// Bins must be contiguous, non-overlapping, in ascending order, and
// cover [scoring.MinScore, scoring.MaxScore] exactly; anything else
// fails with ErrInvalidTierConfig so startup aborts before serving.
func NewClassifier(bins []Bin) (*Classifier, error) {
	if len(bins) == 0 {
		bins = DefaultBins()
	}
	if len(bins) != len(All()) {
		return nil, NewInvalidTierConfig(fmt.Sprintf("expected %d bins, got %d", len(All()), len(bins)))
	}
	next := scoring.MinScore
	for i, b := range bins {
		if !Valid(string(b.Tier)) {
			return nil, NewInvalidTierConfig(fmt.Sprintf("unknown tier %q", b.Tier))
		}
		if b.Min != next {
			return nil, NewInvalidTierConfig(fmt.Sprintf("bin %d starts at %d, want %d", i, b.Min, next))
		}
		if b.Max <= b.Min {
			return nil, NewInvalidTierConfig(fmt.Sprintf("bin %d is empty [%d,%d)", i, b.Min, b.Max))
		}
		next = b.Max
	}
	if next != scoring.MaxScore {
		return nil, NewInvalidTierConfig(fmt.Sprintf("ladder ends at %d, want %d", next, scoring.MaxScore))
	}
	out := make([]Bin, len(bins))
	copy(out, bins)
	return &Classifier{bins: out}, nil
}

// Classify returns the tier whose bin contains score. The top bin is
// inclusive of scoring.MaxScore. Out-of-range input is a programming
// error upstream; the classifier saturates rather than panics.
func (c *Classifier) Classify(score int) Tier {
	if score < scoring.MinScore {
		score = scoring.MinScore
	}
	if score > scoring.MaxScore {
		score = scoring.MaxScore
	}
	for i, b := range c.bins {
		last := i == len(c.bins)-1
		if score >= b.Min && (score < b.Max || (last && score == b.Max)) {
			return b.Tier
		}
	}
	// Unreachable once NewClassifier has validated the ladder.
	return Novice
}

// Bins returns a copy of the validated ladder.
func (c *Classifier) Bins() []Bin {
	out := make([]Bin, len(c.bins))
	copy(out, c.bins)
	return out
}
