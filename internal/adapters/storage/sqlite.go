// Package storage persists match history and rating results in SQLite
// and serves the aggregated leaderboard queries.
package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // sqlite driver
	"github.com/playrank/ranked/internal/domain/impact"
	"github.com/playrank/ranked/internal/domain/model"
)

// timeLayout orders lexicographically the same as chronologically, which
// the aggregation queries rely on.
const timeLayout = "2006-01-02 15:04:05"

const schema = `
create table if not exists matches (
    match_id      integer primary key,
    date_time     text    not null,
    duration      text    not null,
    duration_sec  integer not null,
    radiant_kills integer not null,
    dire_kills    integer not null,
    winning_team  text    not null
);

create table if not exists player_results (
    match_id    integer not null references matches(match_id),
    player_name text    not null,
    team        text    not null,
    position    integer not null,
    net_worth   integer not null,
    kills       integer not null,
    deaths      integer not null,
    assists     integer not null
);

create table if not exists impact_results (
    match_id    integer not null references matches(match_id),
    player_name text    not null,
    impact      real    not null
);

create table if not exists rating_results (
    match_id      integer not null references matches(match_id),
    player_name   text    not null,
    pool          integer not null,
    th_skew       real    not null,
    pr_skew       real    not null,
    team_share    real    not null,
    rating_before integer not null,
    rating_after  integer not null,
    rating_diff   integer not null
);
`

// DB wraps the SQLite handle.
type DB struct {
	db *sqlx.DB
}

// Open connects to the SQLite database at path and creates the schema.
// ":memory:" gives an ephemeral store for single-shot runs.
func Open(ctx context.Context, path string) (*DB, error) {
	db, err := sqlx.ConnectContext(ctx, "sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &DB{db: db}, nil
}

// Close releases the database handle.
func (d *DB) Close() error {
	return d.db.Close()
}

// SaveMatches replaces the stored match history with the given one.
func (d *DB) SaveMatches(ctx context.Context, matches []model.Match, perfs []model.PlayerPerformance) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	for _, table := range []string{"rating_results", "impact_results", "player_results", "matches"} {
		if _, err := tx.ExecContext(ctx, "delete from "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, m := range matches {
		if _, err := tx.ExecContext(ctx,
			`insert into matches (match_id, date_time, duration, duration_sec, radiant_kills, dire_kills, winning_team)
			 values (?, ?, ?, ?, ?, ?, ?)`,
			m.ID, m.StartTime.Format(timeLayout), m.Duration, m.DurationSec,
			m.RadiantKills, m.DireKills, string(m.Winner),
		); err != nil {
			return fmt.Errorf("insert match %d: %w", m.ID, err)
		}
	}
	for _, pf := range perfs {
		if _, err := tx.ExecContext(ctx,
			`insert into player_results (match_id, player_name, team, position, net_worth, kills, deaths, assists)
			 values (?, ?, ?, ?, ?, ?, ?, ?)`,
			pf.MatchID, pf.PlayerName, string(pf.Team), pf.Position,
			pf.NetWorth, pf.Kills, pf.Deaths, pf.Assists,
		); err != nil {
			return fmt.Errorf("insert player result: %w", err)
		}
	}
	return tx.Commit()
}

// SaveImpacts stores the computed impact scores.
func (d *DB) SaveImpacts(ctx context.Context, rows []impact.Row) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "delete from impact_results"); err != nil {
		return fmt.Errorf("clear impact_results: %w", err)
	}
	for _, r := range rows {
		if _, err := tx.ExecContext(ctx,
			`insert into impact_results (match_id, player_name, impact) values (?, ?, ?)`,
			r.MatchID, r.PlayerName, r.Impact,
		); err != nil {
			return fmt.Errorf("insert impact: %w", err)
		}
	}
	return tx.Commit()
}

// SaveRatingEvents stores the engine output. Events are stored in the
// order given, which the engine guarantees is (match_id, player_name).
func (d *DB) SaveRatingEvents(ctx context.Context, events []model.RatingEvent) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "delete from rating_results"); err != nil {
		return fmt.Errorf("clear rating_results: %w", err)
	}
	for _, ev := range events {
		if _, err := tx.ExecContext(ctx,
			`insert into rating_results (match_id, player_name, pool, th_skew, pr_skew, team_share, rating_before, rating_after, rating_diff)
			 values (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			ev.MatchID, ev.PlayerName, ev.Pool, ev.ThSkew, ev.PrSkew,
			ev.TeamShare, ev.RatingBefore, ev.RatingAfter, ev.RatingDiff,
		); err != nil {
			return fmt.Errorf("insert rating event: %w", err)
		}
	}
	return tx.Commit()
}
