package rating

import (
	"context"
	"fmt"

	"github.com/playrank/ranked/internal/domain/model"
	"github.com/playrank/ranked/pkg/metrics"
)

// defaultWinDelta is the fixed movement of the simple formula.
const defaultWinDelta = 25

// Simple is the fixed-delta rating formula: winners gain a constant
// number of points and losers lose the same constant. It shares the
// canonical ordering, the roster filter and the event schema with the
// full engine, which keeps the two formulas swappable downstream.
type Simple struct {
	ledger   Ledger
	winDelta int64
}

// SimpleOption applies a configuration option to Simple.
type SimpleOption func(*Simple)

// WithWinDelta overrides the fixed per-player movement.
func WithWinDelta(delta int64) SimpleOption {
	return func(s *Simple) {
		if delta > 0 {
			s.winDelta = delta
		}
	}
}

// NewSimple builds the fixed-delta rater.
func NewSimple(ledger Ledger, opts ...SimpleOption) (*Simple, error) {
	s := &Simple{
		ledger:   ledger,
		winDelta: defaultWinDelta,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.winDelta <= 0 {
		return nil, fmt.Errorf("%w: win delta must be positive", ErrInvalidParams)
	}
	return s, nil
}

// Run folds the history in canonical order applying the fixed delta. The
// emitted events carry neutral skews and an equal team share so the
// output schema matches the full engine's.
func (s *Simple) Run(ctx context.Context, matches []model.Match, perfs []model.PlayerPerformance) ([]model.RatingEvent, error) {
	inputs := orderMatches(matches, perfs)
	if skipped := len(matches) - len(inputs); skipped > 0 {
		metrics.AddMatchesSkipped(skipped)
	}

	events := make([]model.RatingEvent, 0, len(perfs))
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		winRadiant := in.match.Winner == model.SideRadiant
		events = append(events, s.rateRoster(in.match, in.radiant, winRadiant)...)
		events = append(events, s.rateRoster(in.match, in.dire, !winRadiant)...)
		metrics.IncMatchesRated()
	}
	sortEvents(events)
	return events, nil
}

func (s *Simple) rateRoster(m model.Match, roster []model.PlayerPerformance, winners bool) []model.RatingEvent {
	delta := s.winDelta
	if !winners {
		delta = -delta
	}
	share := 1.0 / float64(len(roster))

	events := make([]model.RatingEvent, len(roster))
	for i, pf := range roster {
		before, after := s.ledger.Apply(pf.PlayerName, delta)
		events[i] = model.RatingEvent{
			MatchID:      m.ID,
			PlayerName:   pf.PlayerName,
			Pool:         s.winDelta,
			ThSkew:       1.0,
			PrSkew:       1.0,
			TeamShare:    share,
			RatingBefore: before,
			RatingAfter:  after,
			RatingDiff:   delta,
		}
	}
	return events
}
