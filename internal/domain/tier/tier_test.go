package tier_test

import (
	"testing"

	tier "github.com/reflekt-labs/reflekt/internal/domain/tier"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClassifier_Classify(t *testing.T) {
	Convey("Given a classifier over the default ladder", t, func() {
		c, err := tier.NewClassifier(tier.DefaultBins())
		So(err, ShouldBeNil)

		Convey("Then every score in range maps to a tier", func() {
			for score := 0; score <= 100; score++ {
				So(tier.Valid(string(c.Classify(score))), ShouldBeTrue)
			}
		})

		Convey("Then bin boundaries land on the expected tiers", func() {
			So(c.Classify(0), ShouldEqual, tier.Novice)
			So(c.Classify(19), ShouldEqual, tier.Novice)
			So(c.Classify(20), ShouldEqual, tier.Common)
			So(c.Classify(40), ShouldEqual, tier.Uncommon)
			So(c.Classify(60), ShouldEqual, tier.Rare)
			So(c.Classify(74), ShouldEqual, tier.Rare)
			So(c.Classify(75), ShouldEqual, tier.Epic)
			So(c.Classify(89), ShouldEqual, tier.Epic)
			So(c.Classify(90), ShouldEqual, tier.Legendary)
			So(c.Classify(100), ShouldEqual, tier.Legendary)
		})

		Convey("Then out-of-range scores saturate", func() {
			So(c.Classify(-10), ShouldEqual, tier.Novice)
			So(c.Classify(500), ShouldEqual, tier.Legendary)
		})

		Convey("Then Bins returns a copy", func() {
			bins := c.Bins()
			bins[0].Max = 99
			So(c.Classify(50), ShouldEqual, tier.Uncommon)
		})
	})
}

func TestNewClassifier_Validation(t *testing.T) {
	Convey("Given candidate tier ladders", t, func() {
		Convey("When a bin is missing", func() {
			bins := tier.DefaultBins()[:5]
			_, err := tier.NewClassifier(bins)
			So(err, ShouldWrap, tier.ErrInvalidTierConfig)
		})

		Convey("When the ladder has a gap", func() {
			bins := tier.DefaultBins()
			bins[1].Min = 25
			_, err := tier.NewClassifier(bins)
			So(err, ShouldWrap, tier.ErrInvalidTierConfig)
		})

		Convey("When bins overlap", func() {
			bins := tier.DefaultBins()
			bins[2].Min = 35
			_, err := tier.NewClassifier(bins)
			So(err, ShouldWrap, tier.ErrInvalidTierConfig)
		})

		Convey("When the ladder does not end at the maximum score", func() {
			bins := tier.DefaultBins()
			bins[5].Max = 95
			_, err := tier.NewClassifier(bins)
			So(err, ShouldWrap, tier.ErrInvalidTierConfig)
		})

		Convey("When a tier name is unknown", func() {
			bins := tier.DefaultBins()
			bins[3].Tier = "mythic"
			_, err := tier.NewClassifier(bins)
			So(err, ShouldWrap, tier.ErrInvalidTierConfig)
		})

		Convey("When the ladder is the default", func() {
			_, err := tier.NewClassifier(tier.DefaultBins())
			So(err, ShouldBeNil)
		})
	})
}

func TestDescribe(t *testing.T) {
	Convey("Given the tier descriptions", t, func() {
		Convey("Then every tier has one", func() {
			for _, tr := range tier.All() {
				So(tier.Describe(tr), ShouldNotBeEmpty)
			}
		})
	})
}
