// Package app wires the pipeline stages: parse the match log, persist the
// history, compute impacts, fold the rating engine, and render reports.
package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/playrank/ranked/internal/adapters/parser"
	"github.com/playrank/ranked/internal/adapters/report"
	"github.com/playrank/ranked/internal/adapters/repository"
	"github.com/playrank/ranked/internal/adapters/storage"
	"github.com/playrank/ranked/internal/config"
	"github.com/playrank/ranked/internal/domain/impact"
	"github.com/playrank/ranked/internal/domain/model"
	"github.com/playrank/ranked/internal/domain/rating"
	"github.com/playrank/ranked/pkg/logger"
	"github.com/playrank/ranked/pkg/metrics"
)

// Pipeline runs one full batch pass over a match log.
type Pipeline struct {
	cfg *config.Config
	log logger.Logger
}

// Option applies a configuration option to the Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(log logger.Logger) Option {
	return func(p *Pipeline) {
		if log != nil {
			p.log = log
		}
	}
}

// New creates a Pipeline for the given configuration.
func New(cfg *config.Config, opts ...Option) *Pipeline {
	p := &Pipeline{cfg: cfg}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Summary reports what a run produced.
type Summary struct {
	RunID         string
	MatchesParsed int
	ParseFailures int
	MatchesRated  int
	Players       int
	Events        int
}

// Run executes the pipeline once. Reports land in cfg.OutputDir; the
// SQLite database at cfg.DBPath holds the full history afterwards.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	if p.log == nil {
		p.log = logger.Get()
	}
	runID := uuid.NewString()
	log := p.log.Named("pipeline")
	log.Info(ctx, "starting run",
		logger.String("run_id", runID),
		logger.String("input", p.cfg.InputPath),
		logger.String("formula", p.cfg.Formula),
	)

	res, err := parser.ParseFile(p.cfg.InputPath)
	if err != nil {
		return nil, err
	}
	metrics.AddMatchesParsed(len(res.Matches))
	metrics.AddParseFailures(len(res.Failures))
	for _, ferr := range res.Failures {
		log.Warn(ctx, "skipping unparseable match block", logger.Error(ferr))
	}
	log.Info(ctx, "parsed match log",
		logger.Int("matches", len(res.Matches)),
		logger.Int("failures", len(res.Failures)),
	)

	db, err := storage.Open(ctx, p.cfg.DBPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if err := db.SaveMatches(ctx, res.Matches, res.Performances); err != nil {
		return nil, err
	}

	src, err := p.buildImpactSource(ctx, db, res.Performances)
	if err != nil {
		return nil, err
	}

	ledger := repository.NewMemoryStore(
		repository.WithInitialRating(p.cfg.InitialRating),
	)
	rater, err := p.buildRater(ledger, src)
	if err != nil {
		return nil, err
	}

	events, err := rater.Run(ctx, res.Matches, res.Performances)
	if err != nil {
		return nil, err
	}
	metrics.SetPlayersTracked(ledger.Count())

	if err := db.SaveRatingEvents(ctx, events); err != nil {
		return nil, err
	}

	lb, err := db.Leaderboard(ctx)
	if err != nil {
		return nil, err
	}
	breakdown, err := db.MatchBreakdown(ctx)
	if err != nil {
		return nil, err
	}
	meta := report.Meta{
		RunID:       runID,
		GeneratedAt: time.Now(),
		SourceFile:  p.cfg.InputPath,
		Formula:     p.cfg.Formula,
	}
	if err := report.WriteFiles(p.cfg.OutputDir, meta, lb, breakdown); err != nil {
		return nil, err
	}

	metrics.ObserveRunDuration(time.Since(start).Seconds())
	summary := &Summary{
		RunID:         runID,
		MatchesParsed: len(res.Matches),
		ParseFailures: len(res.Failures),
		MatchesRated:  countMatches(events),
		Players:       ledger.Count(),
		Events:        len(events),
	}
	log.Info(ctx, "run complete",
		logger.String("run_id", summary.RunID),
		logger.Int("matches_rated", summary.MatchesRated),
		logger.Int("players", summary.Players),
		logger.Int("events", summary.Events),
	)
	return summary, nil
}

// buildImpactSource returns the calibrated source when enabled, persisting
// its scores alongside the match history.
func (p *Pipeline) buildImpactSource(ctx context.Context, db *storage.DB, perfs []model.PlayerPerformance) (impact.Source, error) {
	if !p.cfg.ImpactEnabled {
		return impact.Neutral{}, nil
	}
	src := impact.NewCalibrated(perfs)
	if err := db.SaveImpacts(ctx, src.Rows()); err != nil {
		return nil, err
	}
	return src, nil
}

func (p *Pipeline) buildRater(ledger rating.Ledger, src impact.Source) (rating.Rater, error) {
	switch p.cfg.Formula {
	case config.FormulaSimple:
		return rating.NewSimple(ledger,
			rating.WithWinDelta(p.cfg.WinDelta),
		)
	default:
		return rating.New(ledger,
			rating.WithParams(p.cfg.Params()),
			rating.WithImpactSource(src),
			rating.WithLogger(p.log.Named("rating")),
		)
	}
}

// countMatches counts distinct match ids in an ordered event slice.
func countMatches(events []model.RatingEvent) int {
	var n int
	var last int64 = -1
	for _, ev := range events {
		if ev.MatchID != last {
			n++
			last = ev.MatchID
		}
	}
	return n
}
