// Package model contains domain records passed between layers.
package model

import "time"

// TeamSide identifies one of the two fixed sides of a match.
type TeamSide string

// The two recognized side labels. Rows carrying anything else are dropped
// by the ordering filter.
const (
	SideRadiant TeamSide = "radiant"
	SideDire    TeamSide = "dire"
)

// Valid reports whether the side is one of the two recognized labels.
func (s TeamSide) Valid() bool {
	return s == SideRadiant || s == SideDire
}

// Match is one played game of the ladder.
type Match struct {
	ID           int64
	StartTime    time.Time
	Duration     string // raw form from the log, e.g. "46:30" or "1:12:05"
	DurationSec  int
	RadiantKills int
	DireKills    int
	Winner       TeamSide
}

// PlayerPerformance is one player's line in one match.
type PlayerPerformance struct {
	MatchID    int64
	PlayerName string
	Team       TeamSide
	Position   int
	NetWorth   int
	Kills      int
	Deaths     int
	Assists    int
}

// RatingEvent is one row of the engine's output: the rating movement of a
// single player in a single match. Events are emitted sorted by match id
// and player name and never mutated afterwards.
type RatingEvent struct {
	MatchID      int64
	PlayerName   string
	Pool         int64
	ThSkew       float64
	PrSkew       float64
	TeamShare    float64
	RatingBefore int64
	RatingAfter  int64
	RatingDiff   int64
}
