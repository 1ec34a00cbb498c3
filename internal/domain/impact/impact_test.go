package impact_test

import (
	"math"
	"testing"

	"github.com/playrank/ranked/internal/domain/impact"
	"github.com/playrank/ranked/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSources(t *testing.T) {
	Convey("Given the neutral source", t, func() {
		var src impact.Source = impact.Neutral{}

		Convey("Then every lookup reports no value", func() {
			v, ok := src.Impact(1, "anyone")
			So(ok, ShouldBeFalse)
			So(v, ShouldEqual, 0)
		})
	})

	Convey("Given a static source", t, func() {
		src := impact.Static{7: {"ana": 42.5}}

		Convey("Then stored pairs resolve and others do not", func() {
			v, ok := src.Impact(7, "ana")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 42.5)

			_, ok = src.Impact(7, "ben")
			So(ok, ShouldBeFalse)
			_, ok = src.Impact(8, "ana")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestCalibrated(t *testing.T) {
	Convey("Given performances on calibrated positions", t, func() {
		perfs := []model.PlayerPerformance{
			{MatchID: 1, PlayerName: "carry", Position: 1, Kills: 10, Deaths: 2, Assists: 5, NetWorth: 20000},
			{MatchID: 1, PlayerName: "support", Position: 5, Kills: 1, Deaths: 8, Assists: 15, NetWorth: 8000},
			{MatchID: 1, PlayerName: "coach", Position: 6, Kills: 0, Deaths: 0, Assists: 0, NetWorth: 0},
		}
		src := impact.NewCalibrated(perfs)

		Convey("Then the carry's score matches the frozen formula", func() {
			// raw = 2*10 - 1.5*2 + 0.5*5 + 0.002*20000 = 59.5
			// impact = 100 * tanh((59.5 - 66.076) / 46.737)
			want := 100 * math.Tanh((59.5-66.076)/46.737)
			v, ok := src.Impact(1, "carry")
			So(ok, ShouldBeTrue)
			So(v, ShouldAlmostEqual, want, 1e-9)
		})

		Convey("Then every score stays inside [-100, 100]", func() {
			for _, row := range src.Rows() {
				So(row.Impact, ShouldBeBetween, -100, 100)
			}
		})

		Convey("Then uncalibrated positions get no score", func() {
			_, ok := src.Impact(1, "coach")
			So(ok, ShouldBeFalse)
			So(src.Rows(), ShouldHaveLength, 2)
		})
	})

	Convey("Given an extreme stat line", t, func() {
		perfs := []model.PlayerPerformance{
			{MatchID: 2, PlayerName: "smurf", Position: 1, Kills: 40, Deaths: 0, Assists: 30, NetWorth: 60000},
		}
		src := impact.NewCalibrated(perfs)

		Convey("Then tanh keeps the score bounded", func() {
			v, ok := src.Impact(2, "smurf")
			So(ok, ShouldBeTrue)
			So(v, ShouldBeLessThan, 100)
			So(v, ShouldBeGreaterThan, 80)
		})
	})
}
