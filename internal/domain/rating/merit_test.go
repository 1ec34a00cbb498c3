package rating

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTeamShares(t *testing.T) {
	p := DefaultParams()

	Convey("Given a winning roster with mixed impacts", t, func() {
		shares, merit := p.teamShares([]float64{50, 0, -50}, true)

		Convey("Then shares sum to one", func() {
			So(sumF(shares), ShouldAlmostEqual, 1.0, 1e-12)
		})

		Convey("Then higher impact earns the larger share", func() {
			So(shares[0], ShouldBeGreaterThan, shares[1])
			So(shares[1], ShouldBeGreaterThan, shares[2])
		})

		Convey("Then merit keys map impacts into [0,1]", func() {
			So(merit[0], ShouldAlmostEqual, 0.75, 1e-12)
			So(merit[1], ShouldAlmostEqual, 0.50, 1e-12)
			So(merit[2], ShouldAlmostEqual, 0.25, 1e-12)
		})
	})

	Convey("Given a losing roster the sign flips", t, func() {
		shares, _ := p.teamShares([]float64{50, -50}, false)

		Convey("Then the least negative impact loses the most", func() {
			// Loser merit rewards -impact: the -50 player defended best.
			So(shares[1], ShouldBeGreaterThan, shares[0])
		})
	})

	Convey("Given extreme impacts the equal-split floor still pays out", t, func() {
		shares, _ := p.teamShares([]float64{100, -100}, true)

		Convey("Then the worst player keeps the guaranteed minimum", func() {
			floor := (1 - p.MeritWeight) / 2
			So(shares[1], ShouldAlmostEqual, floor, 1e-12)
			So(sumF(shares), ShouldAlmostEqual, 1.0, 1e-12)
		})
	})

	Convey("Given a merit sum of zero the split is uniform", t, func() {
		zero := DefaultParams()
		zero.MapGamma = 1.0
		shares, _ := zero.teamShares([]float64{-100, -100, -100}, true)

		Convey("Then every player gets 1/n", func() {
			for _, s := range shares {
				So(s, ShouldAlmostEqual, 1.0/3.0, 1e-12)
			}
		})
	})
}

func sumF(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x
	}
	return s
}
