// Package impact supplies bounded per-player performance scores.
//
// The rating engine consumes impact as an opaque real number in roughly
// [-100, 100]; where a source has no value for a player the engine falls
// back to a neutral 0.0.
package impact

// Source yields the impact score of a player in a match.
type Source interface {
	// Impact returns the score and whether the source has one for this
	// (match, player) pair.
	Impact(matchID int64, player string) (float64, bool)
}

// Neutral is a Source with no scores; every player rates as neutral.
type Neutral struct{}

// Impact always reports no value.
func (Neutral) Impact(int64, string) (float64, bool) { return 0, false }

// Static serves scores from a fixed map keyed by match id and player
// name. Used for tests and manual overrides.
type Static map[int64]map[string]float64

// Impact looks up the stored score.
func (s Static) Impact(matchID int64, player string) (float64, bool) {
	byPlayer, ok := s[matchID]
	if !ok {
		return 0, false
	}
	v, ok := byPlayer[player]
	return v, ok
}
