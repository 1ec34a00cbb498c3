// Package rating implements the deterministic sequential rating engine.
//
// The engine folds a match history in canonical order (start time, match
// id, side, position) over a mutable rating ledger. For each match it
// derives two lopsidedness signals (a rating-based theoretical skew and a
// kill-based performance skew), sizes an integer pool of rating points
// from their combined magnitude, splits each roster's side of the pool by
// merit shares with a largest-remainder apportionment, and applies the
// units with opposite signs to winners and losers. Both rosters draw from
// the same pool value, so every match is exactly zero-sum.
//
// Identical input produces byte-identical output regardless of input
// ordering: all sorting is on content-derived keys and no map iteration
// order ever reaches a result.
package rating

import (
	"context"
	"sort"

	"github.com/playrank/ranked/internal/domain/impact"
	"github.com/playrank/ranked/internal/domain/model"
	"github.com/playrank/ranked/pkg/logger"
	"github.com/playrank/ranked/pkg/metrics"
)

// Ledger owns the persistent per-player rating state consumed and mutated
// by the fold. Implementations create unseen players at the configured
// initial rating.
type Ledger interface {
	// Rating returns the player's current rating.
	Rating(name string) int64
	// Apply adds delta to the player's rating and returns the value
	// before and after the write.
	Apply(name string, delta int64) (before, after int64)
}

// Rater turns a match history into an ordered sequence of rating events.
type Rater interface {
	Run(ctx context.Context, matches []model.Match, perfs []model.PlayerPerformance) ([]model.RatingEvent, error)
}

// Engine is the full skew/merit rating formula.
type Engine struct {
	params  Params
	ledger  Ledger
	impacts impact.Source
	log     logger.Logger
}

// New builds an Engine. Params are validated up front: an invalid
// configuration fails here, before any match is touched.
func New(ledger Ledger, opts ...Option) (*Engine, error) {
	e := &Engine{
		params:  DefaultParams(),
		ledger:  ledger,
		impacts: impact.Neutral{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.params.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Run folds every rateable match in canonical order and returns rating
// events sorted by (match id, player name). The fold mutates the ledger;
// if Run returns early on context cancellation the ledger holds a
// truncated history and must be discarded, not resumed.
func (e *Engine) Run(ctx context.Context, matches []model.Match, perfs []model.PlayerPerformance) ([]model.RatingEvent, error) {
	inputs := orderMatches(matches, perfs)
	if skipped := len(matches) - len(inputs); skipped > 0 {
		metrics.AddMatchesSkipped(skipped)
		if e.log != nil {
			e.log.Warn(ctx, "dropped matches without a full roster", logger.Int("count", skipped))
		}
	}

	events := make([]model.RatingEvent, 0, len(perfs))
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		events = append(events, e.rateMatch(in)...)
		metrics.IncMatchesRated()
	}
	sortEvents(events)
	return events, nil
}

// rateMatch computes and applies both rosters' rating movement for one
// match. All events of a match are produced together; a match is never
// partially applied.
func (e *Engine) rateMatch(in matchInput) []model.RatingEvent {
	sk := e.matchSkews(in.match, in.radiant, in.dire)
	pool := e.poolSize(sk.magnitude)
	metrics.ObservePool(float64(pool))

	winRadiant := in.match.Winner == model.SideRadiant
	events := e.rateRoster(in.match, in.radiant, sk, pool, winRadiant)
	return append(events, e.rateRoster(in.match, in.dire, sk, pool, !winRadiant)...)
}

// rateRoster splits one side's pool units across its players and applies
// them to the ledger, positive for the winning side, negative otherwise.
func (e *Engine) rateRoster(m model.Match, roster []model.PlayerPerformance, sk skews, pool int64, winners bool) []model.RatingEvent {
	names := make([]string, len(roster))
	impacts := make([]float64, len(roster))
	for i, pf := range roster {
		names[i] = pf.PlayerName
		if v, ok := e.impacts.Impact(m.ID, pf.PlayerName); ok {
			impacts[i] = v
		}
	}

	shares, merit := e.params.teamShares(impacts, winners)
	units := apportion(shares, merit, names, pool)

	events := make([]model.RatingEvent, len(roster))
	for i := range roster {
		delta := units[i]
		if !winners {
			delta = -delta
		}
		before, after := e.ledger.Apply(names[i], delta)
		events[i] = model.RatingEvent{
			MatchID:      m.ID,
			PlayerName:   names[i],
			Pool:         pool,
			ThSkew:       sk.thSkew,
			PrSkew:       sk.prSkew,
			TeamShare:    shares[i],
			RatingBefore: before,
			RatingAfter:  after,
			RatingDiff:   delta,
		}
	}
	return events
}

// sortEvents orders the output for downstream reporting.
func sortEvents(events []model.RatingEvent) {
	sort.SliceStable(events, func(a, b int) bool {
		if events[a].MatchID != events[b].MatchID {
			return events[a].MatchID < events[b].MatchID
		}
		return events[a].PlayerName < events[b].PlayerName
	})
}
