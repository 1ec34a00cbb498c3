// Package parser reads the plain-text ladder match log.
//
// The log is a sequence of blank-line-separated blocks; `//` comments are
// stripped. Each block is:
//
//	2024-03-08 21:15
//	46:30 34-19 radiant
//	radiant
//	miracle 1 21450 9/2/11
//	...
//	dire
//	zai 5 9800 1/7/14
//	...
//
// i.e. a start datetime, a `[H:]MM:SS RK-DK winner` header, then player
// rows `name pos net_worth K/D/A` under bare `radiant`/`dire` side
// markers. Blocks that fail to parse are skipped and reported; the rest
// of the file still loads.
package parser

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/playrank/ranked/internal/domain/model"
)

var (
	reComment   = regexp.MustCompile(`//.*`)
	reDateTime  = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\s+(\d{1,2}):(\d{2})$`)
	reMatchInfo = regexp.MustCompile(`^(?P<duration>(?:\d{1,2}:)?\d{1,2}:\d{2})\s+(?P<rk>\d+)-(?P<dk>\d+)\s+(?P<winner>radiant|dire)$`)
	rePlayer    = regexp.MustCompile(`^(?P<name>\S+)\s+(?P<pos>\d+)\s+(?P<net>\d+)\s+(?P<k>\d+)/(?P<d>\d+)/(?P<a>\d+)$`)
)

// Result is the parsed content of one log file. Match ids are assigned
// sequentially from 1 in file order.
type Result struct {
	Matches      []model.Match
	Performances []model.PlayerPerformance

	// Failures lists blocks that did not parse, in file order.
	Failures []error
}

// ParseFile reads and parses the log at path.
func ParseFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open match log: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse parses a match log from r.
func Parse(r io.Reader) (*Result, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read match log: %w", err)
	}

	res := &Result{}
	for i, block := range splitBlocks(string(content)) {
		m, perfs, err := parseBlock(block)
		if err != nil {
			res.Failures = append(res.Failures, fmt.Errorf("block %d: %w", i+1, err))
			continue
		}
		m.ID = int64(len(res.Matches) + 1)
		for j := range perfs {
			perfs[j].MatchID = m.ID
		}
		res.Matches = append(res.Matches, m)
		res.Performances = append(res.Performances, perfs...)
	}
	return res, nil
}

// splitBlocks strips comments and cuts the file at blank lines.
func splitBlocks(text string) []string {
	var blocks []string
	var current []string
	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(reComment.ReplaceAllString(line, ""))
		if stripped == "" {
			if len(current) > 0 {
				blocks = append(blocks, strings.Join(current, "\n"))
				current = nil
			}
			continue
		}
		current = append(current, stripped)
	}
	if len(current) > 0 {
		blocks = append(blocks, strings.Join(current, "\n"))
	}
	return blocks
}

func parseBlock(block string) (model.Match, []model.PlayerPerformance, error) {
	rows := strings.Split(block, "\n")
	if len(rows) < 3 {
		return model.Match{}, nil, fmt.Errorf("block too short (%d rows)", len(rows))
	}

	start, err := parseDateTime(rows[0])
	if err != nil {
		return model.Match{}, nil, err
	}

	info := reMatchInfo.FindStringSubmatch(rows[1])
	if info == nil {
		return model.Match{}, nil, fmt.Errorf("bad match info %q (expected '[H:]MM:SS RK-DK winner')", rows[1])
	}
	duration := info[reMatchInfo.SubexpIndex("duration")]
	durationSec, err := parseDurationSeconds(duration)
	if err != nil {
		return model.Match{}, nil, err
	}
	radiantKills, _ := strconv.Atoi(info[reMatchInfo.SubexpIndex("rk")])
	direKills, _ := strconv.Atoi(info[reMatchInfo.SubexpIndex("dk")])

	match := model.Match{
		StartTime:    start,
		Duration:     duration,
		DurationSec:  durationSec,
		RadiantKills: radiantKills,
		DireKills:    direKills,
		Winner:       model.TeamSide(info[reMatchInfo.SubexpIndex("winner")]),
	}

	var perfs []model.PlayerPerformance
	var side model.TeamSide
	for _, raw := range rows[2:] {
		if s := model.TeamSide(raw); s.Valid() {
			side = s
			continue
		}
		if side == "" {
			return model.Match{}, nil, fmt.Errorf("player row before side marker: %q", raw)
		}
		pm := rePlayer.FindStringSubmatch(raw)
		if pm == nil {
			return model.Match{}, nil, fmt.Errorf("bad player row %q (expected 'name pos net k/d/a')", raw)
		}
		pos, _ := strconv.Atoi(pm[rePlayer.SubexpIndex("pos")])
		net, _ := strconv.Atoi(pm[rePlayer.SubexpIndex("net")])
		kills, _ := strconv.Atoi(pm[rePlayer.SubexpIndex("k")])
		deaths, _ := strconv.Atoi(pm[rePlayer.SubexpIndex("d")])
		assists, _ := strconv.Atoi(pm[rePlayer.SubexpIndex("a")])
		perfs = append(perfs, model.PlayerPerformance{
			PlayerName: pm[rePlayer.SubexpIndex("name")],
			Team:       side,
			Position:   pos,
			NetWorth:   net,
			Kills:      kills,
			Deaths:     deaths,
			Assists:    assists,
		})
	}
	if len(perfs) == 0 {
		return model.Match{}, nil, fmt.Errorf("no player rows")
	}
	return match, perfs, nil
}

// parseDateTime accepts `YYYY-MM-DD H:MM` with a one- or two-digit hour.
func parseDateTime(s string) (time.Time, error) {
	m := reDateTime.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return time.Time{}, fmt.Errorf("bad datetime %q", s)
	}
	hour, _ := strconv.Atoi(m[2])
	normalized := fmt.Sprintf("%s %02d:%s", m[1], hour, m[3])
	t, err := time.Parse("2006-01-02 15:04", normalized)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad datetime %q: %w", s, err)
	}
	return t, nil
}

// parseDurationSeconds accepts `MM:SS` or `H:MM:SS`.
func parseDurationSeconds(s string) (int, error) {
	parts := strings.Split(s, ":")
	switch len(parts) {
	case 2:
		m, _ := strconv.Atoi(parts[0])
		sec, _ := strconv.Atoi(parts[1])
		return m*60 + sec, nil
	case 3:
		h, _ := strconv.Atoi(parts[0])
		m, _ := strconv.Atoi(parts[1])
		sec, _ := strconv.Atoi(parts[2])
		return h*3600 + m*60 + sec, nil
	default:
		return 0, fmt.Errorf("bad duration %q", s)
	}
}
