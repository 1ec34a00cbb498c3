package storage

import (
	"context"
	"fmt"
)

// LeaderboardRow is one player's aggregated standing.
type LeaderboardRow struct {
	PlayerName  string  `db:"player_name"`
	Rating      int64   `db:"rating"`
	Position    int     `db:"position"`
	Games       int     `db:"games"`
	Wins        int     `db:"wins"`
	WinRate     float64 `db:"win_rate"`
	AvgKills    float64 `db:"avg_kills"`
	AvgDeaths   float64 `db:"avg_deaths"`
	AvgAssists  float64 `db:"avg_assists"`
	AvgNetWorth int64   `db:"avg_net_worth"`
}

// leaderboardQuery aggregates each player's latest rating, modal position
// and per-match averages. Latest rating is the rating_after of the
// chronologically last match the player appeared in.
const leaderboardQuery = `
with latest as (
    select rr.player_name,
           rr.rating_after,
           row_number() over (
               partition by rr.player_name
               order by m.date_time desc, m.match_id desc
           ) as rn
    from rating_results rr
    join matches m on m.match_id = rr.match_id
),
pos_mode as (
    select player_name, position,
           row_number() over (
               partition by player_name
               order by count(*) desc, position asc
           ) as rn
    from player_results
    group by player_name, position
),
stats as (
    select pr.player_name,
           count(*)                                                      as games,
           sum(case when pr.team = m.winning_team then 1 else 0 end)     as wins,
           round(avg(pr.kills), 1)                                       as avg_kills,
           round(avg(pr.deaths), 1)                                      as avg_deaths,
           round(avg(pr.assists), 1)                                     as avg_assists,
           cast(round(avg(pr.net_worth)) as integer)                     as avg_net_worth
    from player_results pr
    join matches m on m.match_id = pr.match_id
    group by pr.player_name
)
select l.player_name                                  as player_name,
       l.rating_after                                 as rating,
       p.position                                     as position,
       s.games                                        as games,
       s.wins                                         as wins,
       round(s.wins * 1.0 / s.games, 3)               as win_rate,
       s.avg_kills, s.avg_deaths, s.avg_assists, s.avg_net_worth
from latest l
join pos_mode p on p.player_name = l.player_name and p.rn = 1
join stats s on s.player_name = l.player_name
where l.rn = 1
order by rating desc, l.player_name asc
`

// Leaderboard returns the current standings, best rating first.
func (d *DB) Leaderboard(ctx context.Context) ([]LeaderboardRow, error) {
	var rows []LeaderboardRow
	if err := d.db.SelectContext(ctx, &rows, leaderboardQuery); err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	return rows, nil
}

// BreakdownRow is one player's line in the per-match rating report.
type BreakdownRow struct {
	DateTime     string  `db:"date_time"`
	MatchID      int64   `db:"match_id"`
	Team         string  `db:"team"`
	Won          bool    `db:"won"`
	Position     int     `db:"position"`
	PlayerName   string  `db:"player_name"`
	Kills        int     `db:"kills"`
	Deaths       int     `db:"deaths"`
	Assists      int     `db:"assists"`
	NetWorth     int     `db:"net_worth"`
	Impact       float64 `db:"impact"`
	ThSkew       float64 `db:"th_skew"`
	PrSkew       float64 `db:"pr_skew"`
	Pool         int64   `db:"pool"`
	TeamShare    float64 `db:"team_share"`
	RatingBefore int64   `db:"rating_before"`
	RatingAfter  int64   `db:"rating_after"`
	RatingDiff   int64   `db:"rating_diff"`
}

const breakdownQuery = `
select m.date_time                                   as date_time,
       pr.match_id                                   as match_id,
       pr.team                                       as team,
       pr.team = m.winning_team                      as won,
       pr.position                                   as position,
       pr.player_name                                as player_name,
       pr.kills, pr.deaths, pr.assists,
       pr.net_worth                                  as net_worth,
       coalesce(ir.impact, 0.0)                      as impact,
       coalesce(rr.th_skew, 1.0)                     as th_skew,
       coalesce(rr.pr_skew, 1.0)                     as pr_skew,
       coalesce(rr.pool, 0)                          as pool,
       coalesce(rr.team_share, 0.0)                  as team_share,
       coalesce(rr.rating_before, 0)                 as rating_before,
       coalesce(rr.rating_after, 0)                  as rating_after,
       coalesce(rr.rating_diff, 0)                   as rating_diff
from player_results pr
join matches m on m.match_id = pr.match_id
left join impact_results ir
    on ir.match_id = pr.match_id and ir.player_name = pr.player_name
left join rating_results rr
    on rr.match_id = pr.match_id and rr.player_name = pr.player_name
order by m.date_time, pr.match_id, pr.team, pr.position, pr.player_name
`

// MatchBreakdown returns every player line joined with its impact and
// rating movement, in match order.
func (d *DB) MatchBreakdown(ctx context.Context) ([]BreakdownRow, error) {
	var rows []BreakdownRow
	if err := d.db.SelectContext(ctx, &rows, breakdownQuery); err != nil {
		return nil, fmt.Errorf("query match breakdown: %w", err)
	}
	return rows, nil
}
