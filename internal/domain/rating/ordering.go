package rating

import (
	"sort"

	"github.com/playrank/ranked/internal/domain/model"
)

// matchInput is one rateable match with both rosters attached.
type matchInput struct {
	match   model.Match
	radiant []model.PlayerPerformance
	dire    []model.PlayerPerformance
}

// orderMatches establishes the canonical processing order: matches by
// start time then match id ascending, rosters by side then position then
// player name ascending. This order is the sole source of determinism for
// the fold, so it is derived from record content only.
//
// Rows on an unrecognized side, matches with an unrecognized winner and
// matches lacking a non-empty roster on either side are dropped whole.
// That is a data-quality filter, not a failure.
func orderMatches(matches []model.Match, perfs []model.PlayerPerformance) []matchInput {
	byMatch := make(map[int64][]model.PlayerPerformance, len(matches))
	for _, pf := range perfs {
		if !pf.Team.Valid() {
			continue
		}
		byMatch[pf.MatchID] = append(byMatch[pf.MatchID], pf)
	}

	inputs := make([]matchInput, 0, len(matches))
	for _, m := range matches {
		if !m.Winner.Valid() {
			continue
		}
		in := matchInput{match: m}
		for _, pf := range byMatch[m.ID] {
			if pf.Team == model.SideRadiant {
				in.radiant = append(in.radiant, pf)
			} else {
				in.dire = append(in.dire, pf)
			}
		}
		if len(in.radiant) == 0 || len(in.dire) == 0 {
			continue
		}
		sortRoster(in.radiant)
		sortRoster(in.dire)
		inputs = append(inputs, in)
	}

	sort.SliceStable(inputs, func(a, b int) bool {
		am, bm := inputs[a].match, inputs[b].match
		if !am.StartTime.Equal(bm.StartTime) {
			return am.StartTime.Before(bm.StartTime)
		}
		return am.ID < bm.ID
	})
	return inputs
}

func sortRoster(roster []model.PlayerPerformance) {
	sort.SliceStable(roster, func(a, b int) bool {
		if roster[a].Position != roster[b].Position {
			return roster[a].Position < roster[b].Position
		}
		return roster[a].PlayerName < roster[b].PlayerName
	})
}
