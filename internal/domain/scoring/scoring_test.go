package scoring_test

import (
	"testing"
	"time"

	"github.com/reflekt-labs/reflekt/internal/domain/model"
	scoring "github.com/reflekt-labs/reflekt/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

const testAddress = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

func fullMetrics() model.WalletMetrics {
	return model.WalletMetrics{
		Address:           testAddress,
		BlockNumber:       19_000_000,
		IsLongTermHolder:  true,
		DAOParticipations: 3,
		NFTMintCount:      12,
		TransactionCount:  1500,
		TokenDiversity:    8,
		DeFiUsage:         true,
		WalletAgeDays:     900,
		HasENS:            true,
		BalanceNative:     4.2,
		FrequentSwaps:     false,
		CapturedAt:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestWeightedEngine_Score(t *testing.T) {
	Convey("Given an engine with the default policy", t, func() {
		engine := scoring.NewWeightedEngine()

		Convey("When every criterion passes", func() {
			result, err := engine.Score(fullMetrics())

			Convey("Then the score is the full additive sum", func() {
				So(err, ShouldBeNil)
				So(result.Value, ShouldEqual, 95)
				So(result.Address, ShouldEqual, testAddress)
				So(result.BlockNumber, ShouldEqual, 19_000_000)
			})

			Convey("And the breakdown accounts for every criterion", func() {
				So(err, ShouldBeNil)
				So(len(result.Breakdown), ShouldEqual, len(model.Criteria()))
				So(result.Breakdown.Total(), ShouldEqual, result.Value)
				So(result.Breakdown[model.CriterionDAOParticipation], ShouldEqual, 20)
				So(result.Breakdown[model.CriterionTransactionVolume], ShouldEqual, 15)
			})
		})

		Convey("When the wallet also swaps frequently", func() {
			m := fullMetrics()
			m.FrequentSwaps = true
			result, err := engine.Score(m)

			Convey("Then the penalty lands exactly on the tier boundary", func() {
				So(err, ShouldBeNil)
				So(result.Value, ShouldEqual, 90)
				So(result.Breakdown[model.CriterionFrequentSwaps], ShouldEqual, -5)
			})
		})

		Convey("When the wallet has no activity at all", func() {
			m := model.WalletMetrics{
				Address:    testAddress,
				CapturedAt: time.Now(),
			}
			result, err := engine.Score(m)

			Convey("Then the score is zero with a zeroed breakdown", func() {
				So(err, ShouldBeNil)
				So(result.Value, ShouldEqual, 0)
				So(result.Breakdown.Total(), ShouldEqual, 0)
			})
		})

		Convey("When only frequent swaps applies", func() {
			m := model.WalletMetrics{
				Address:       testAddress,
				FrequentSwaps: true,
				CapturedAt:    time.Now(),
			}
			result, err := engine.Score(m)

			Convey("Then the score clamps at the floor instead of going negative", func() {
				So(err, ShouldBeNil)
				So(result.Value, ShouldEqual, 0)
			})
		})

		Convey("When the same snapshot is scored twice", func() {
			first, err1 := engine.Score(fullMetrics())
			second, err2 := engine.Score(fullMetrics())

			Convey("Then both runs agree", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(first.Value, ShouldEqual, second.Value)
				So(first.Breakdown, ShouldResemble, second.Breakdown)
			})
		})

		Convey("When transaction counts walk the volume ladder", func() {
			cases := map[int64]int{
				0:    0,
				4:    0,
				5:    1,  // 0.1 * 15
				50:   6,  // 0.4 * 15
				200:  9,  // 0.65 * 15
				500:  12, // 0.8 * 15
				1000: 15,
				5000: 15,
			}
			for txCount, want := range cases {
				m := model.WalletMetrics{
					Address:          testAddress,
					TransactionCount: txCount,
					CapturedAt:       time.Now(),
				}
				result, err := engine.Score(m)
				So(err, ShouldBeNil)
				So(result.Breakdown[model.CriterionTransactionVolume], ShouldEqual, want)
			}
		})
	})
}

func TestWeightedEngine_Validation(t *testing.T) {
	Convey("Given an engine with the default policy", t, func() {
		engine := scoring.NewWeightedEngine()

		Convey("When the snapshot has no address", func() {
			m := fullMetrics()
			m.Address = ""
			_, err := engine.Score(m)
			So(err, ShouldWrap, scoring.ErrInvalidMetrics)
		})

		Convey("When the address is not hex", func() {
			m := fullMetrics()
			m.Address = "not-an-address"
			_, err := engine.Score(m)
			So(err, ShouldWrap, scoring.ErrInvalidMetrics)
		})

		Convey("When the capture time is missing", func() {
			m := fullMetrics()
			m.CapturedAt = time.Time{}
			_, err := engine.Score(m)
			So(err, ShouldWrap, scoring.ErrInvalidMetrics)
		})

		Convey("When a count is negative", func() {
			m := fullMetrics()
			m.NFTMintCount = -1
			_, err := engine.Score(m)
			So(err, ShouldWrap, scoring.ErrInvalidMetrics)
		})
	})
}

func TestWeightedEngine_Options(t *testing.T) {
	Convey("Given an engine with custom weights and thresholds", t, func() {
		engine := scoring.NewWeightedEngine(
			scoring.WithWeights(scoring.Weights{
				model.CriterionDAOParticipation: 40,
			}),
			scoring.WithBalanceThreshold(10.0),
			scoring.WithClock(func() time.Time {
				return time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
			}),
		)

		Convey("When scoring a full snapshot", func() {
			result, err := engine.Score(fullMetrics())

			Convey("Then the overridden weight applies", func() {
				So(err, ShouldBeNil)
				So(result.Breakdown[model.CriterionDAOParticipation], ShouldEqual, 40)
			})

			Convey("And the raised balance threshold gates the balance points", func() {
				So(err, ShouldBeNil)
				So(result.Breakdown[model.CriterionBalance], ShouldEqual, 0)
			})

			Convey("And the injected clock stamps the result", func() {
				So(err, ShouldBeNil)
				So(result.ComputedAt.Equal(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)), ShouldBeTrue)
			})
		})
	})
}
