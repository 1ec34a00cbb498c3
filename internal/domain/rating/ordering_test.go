package rating

import (
	"testing"
	"time"

	"github.com/playrank/ranked/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestOrderMatches(t *testing.T) {
	at := func(h int) time.Time { return time.Date(2024, 3, 1, h, 0, 0, 0, time.UTC) }

	Convey("Given matches in arbitrary order", t, func() {
		matches := []model.Match{
			{ID: 3, StartTime: at(12), Winner: model.SideDire},
			{ID: 1, StartTime: at(10), Winner: model.SideRadiant},
			{ID: 2, StartTime: at(10), Winner: model.SideRadiant},
		}
		perfs := []model.PlayerPerformance{
			{MatchID: 3, PlayerName: "a", Team: model.SideRadiant, Position: 2},
			{MatchID: 3, PlayerName: "b", Team: model.SideRadiant, Position: 1},
			{MatchID: 3, PlayerName: "c", Team: model.SideDire, Position: 1},
			{MatchID: 1, PlayerName: "a", Team: model.SideRadiant, Position: 1},
			{MatchID: 1, PlayerName: "b", Team: model.SideDire, Position: 1},
			{MatchID: 2, PlayerName: "a", Team: model.SideRadiant, Position: 1},
			{MatchID: 2, PlayerName: "b", Team: model.SideDire, Position: 1},
		}

		inputs := orderMatches(matches, perfs)

		Convey("Then matches sort by start time then id", func() {
			So(inputs, ShouldHaveLength, 3)
			So(inputs[0].match.ID, ShouldEqual, 1)
			So(inputs[1].match.ID, ShouldEqual, 2)
			So(inputs[2].match.ID, ShouldEqual, 3)
		})

		Convey("Then rosters sort by position", func() {
			So(inputs[2].radiant[0].PlayerName, ShouldEqual, "b")
			So(inputs[2].radiant[1].PlayerName, ShouldEqual, "a")
		})
	})

	Convey("Given degenerate input rows", t, func() {
		matches := []model.Match{
			{ID: 1, StartTime: at(10), Winner: model.SideRadiant},
			{ID: 2, StartTime: at(11), Winner: "middle"},
			{ID: 3, StartTime: at(12), Winner: model.SideDire},
		}
		perfs := []model.PlayerPerformance{
			{MatchID: 1, PlayerName: "a", Team: model.SideRadiant, Position: 1},
			{MatchID: 1, PlayerName: "b", Team: "spectator", Position: 1},
			{MatchID: 2, PlayerName: "a", Team: model.SideRadiant, Position: 1},
			{MatchID: 2, PlayerName: "b", Team: model.SideDire, Position: 1},
			{MatchID: 3, PlayerName: "a", Team: model.SideDire, Position: 1},
		}

		inputs := orderMatches(matches, perfs)

		Convey("Then matches without both rosters or a recognized winner are dropped whole", func() {
			// 1 has no dire roster after the side filter, 2 has an
			// unknown winner, 3 has no radiant roster.
			So(inputs, ShouldBeEmpty)
		})
	})
}
