package leaderboard_test

import (
	"testing"
	"time"

	"github.com/reflekt-labs/reflekt/internal/domain/model"
	leaderboard "github.com/reflekt-labs/reflekt/internal/leaderboard"
	. "github.com/smartystreets/goconvey/convey"
)

func TestIndex_ExportProfiles(t *testing.T) {
	Convey("Given a rebuilt index", t, func() {
		idx := buildIndex()
		now := baseTime.Add(time.Hour)

		Convey("When exporting without predicates", func() {
			profiles, err := idx.ExportProfiles(leaderboard.Query{}, now)

			Convey("Then every live credential is projected in leaderboard order", func() {
				So(err, ShouldBeNil)
				So(len(profiles), ShouldEqual, 4)
				So(profiles[0].Address, ShouldEqual, "0xa2")
				So(profiles[0].TokenID, ShouldEqual, 1)
				So(profiles[0].OverallScore, ShouldEqual, 90)
				So(profiles[0].SkillLevel, ShouldEqual, "legendary")
				So(profiles[0].Achievements, ShouldContain, "DAO Voter")
				So(profiles[0].GeneratedAt.Equal(now), ShouldBeTrue)
			})

			Convey("Then experience signals follow the breakdown", func() {
				So(err, ShouldBeNil)
				So(profiles[0].Governance, ShouldBeTrue)
				So(profiles[0].DeFiExperience, ShouldBeFalse)
				So(profiles[0].NFTFamiliarity, ShouldBeFalse)
				So(profiles[0].Strengths, ShouldResemble, []string{
					string(model.CriterionDAOParticipation),
					string(model.CriterionTransactionVolume),
				})
			})
		})

		Convey("When exporting with predicates", func() {
			profiles, err := idx.ExportProfiles(leaderboard.Query{MinScore: 60}, now)

			Convey("Then only matching candidates are exported", func() {
				So(err, ShouldBeNil)
				So(len(profiles), ShouldEqual, 3)
				for _, p := range profiles {
					So(p.OverallScore, ShouldBeGreaterThanOrEqualTo, 60)
				}
			})
		})

		Convey("When the query names an unknown criterion", func() {
			_, err := idx.ExportProfiles(leaderboard.Query{
				MinCategoryScores: map[model.Criterion]int{"charisma": 1},
			}, now)
			So(err, ShouldWrap, leaderboard.ErrUnknownCategory)
		})
	})
}

func TestIndex_ExportProfilesStrengths(t *testing.T) {
	Convey("Given a credential strong in many categories", t, func() {
		idx := leaderboard.NewIndex()
		idx.Rebuild([]model.Credential{{
			TokenID:      1,
			OwnerAddress: "0xb1",
			Score:        80,
			Tier:         "epic",
			Breakdown: model.Breakdown{
				model.CriterionDAOParticipation:  20,
				model.CriterionDeFiUsage:         15,
				model.CriterionTransactionVolume: 15,
				model.CriterionLongTermHolder:    10,
				model.CriterionNFTMints:          5,
				model.CriterionFrequentSwaps:     -5,
			},
			State:     model.StateMinted,
			UpdatedAt: baseTime,
		}})

		Convey("When exporting the profile", func() {
			profiles, err := idx.ExportProfiles(leaderboard.Query{}, baseTime)
			So(err, ShouldBeNil)
			So(len(profiles), ShouldEqual, 1)

			Convey("Then strengths name the top categories, ties in canonical order", func() {
				So(profiles[0].Strengths, ShouldResemble, []string{
					string(model.CriterionDAOParticipation),
					string(model.CriterionTransactionVolume),
					string(model.CriterionDeFiUsage),
				})
			})

			Convey("Then penalties never count as strengths", func() {
				So(profiles[0].Strengths, ShouldNotContain, string(model.CriterionFrequentSwaps))
			})

			Convey("Then all experience signals are set", func() {
				So(profiles[0].Governance, ShouldBeTrue)
				So(profiles[0].DeFiExperience, ShouldBeTrue)
				So(profiles[0].NFTFamiliarity, ShouldBeTrue)
			})
		})
	})
}
