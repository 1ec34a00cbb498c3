package parser_test

import (
	"strings"
	"testing"
	"time"

	"github.com/playrank/ranked/internal/adapters/parser"
	"github.com/playrank/ranked/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLog = `
// weekly ladder night
2024-03-08 21:15
46:30 34-19 radiant
radiant
miracle 1 21450 9/2/11
topson 2 18200 7/4/9 // mid had a rough laning phase
dire
zai 5 9800 1/7/14
collapse 3 14100 4/6/8

2024-03-08 22:40
1:12:05 41-44 dire
radiant
miracle 1 30500 12/5/7
dire
zai 4 21000 6/3/20

this block is broken
and should be skipped

2024-03-09 9:05
18:59 5-22 dire
radiant
topson 2 6100 1/6/2
dire
collapse 1 11900 10/1/5
`

func TestParse(t *testing.T) {
	res, err := parser.Parse(strings.NewReader(sampleLog))
	require.NoError(t, err)

	require.Len(t, res.Matches, 3)
	require.Len(t, res.Failures, 1)
	assert.Contains(t, res.Failures[0].Error(), "block 3")

	t.Run("match header fields", func(t *testing.T) {
		m := res.Matches[0]
		assert.Equal(t, int64(1), m.ID)
		assert.Equal(t, time.Date(2024, 3, 8, 21, 15, 0, 0, time.UTC), m.StartTime)
		assert.Equal(t, "46:30", m.Duration)
		assert.Equal(t, 46*60+30, m.DurationSec)
		assert.Equal(t, 34, m.RadiantKills)
		assert.Equal(t, 19, m.DireKills)
		assert.Equal(t, model.SideRadiant, m.Winner)
	})

	t.Run("hour-long durations", func(t *testing.T) {
		assert.Equal(t, 1*3600+12*60+5, res.Matches[1].DurationSec)
	})

	t.Run("single-digit hours", func(t *testing.T) {
		assert.Equal(t, time.Date(2024, 3, 9, 9, 5, 0, 0, time.UTC), res.Matches[2].StartTime)
	})

	t.Run("sequential ids survive skipped blocks", func(t *testing.T) {
		assert.Equal(t, int64(2), res.Matches[1].ID)
		assert.Equal(t, int64(3), res.Matches[2].ID)
	})

	t.Run("player rows", func(t *testing.T) {
		var first []model.PlayerPerformance
		for _, pf := range res.Performances {
			if pf.MatchID == 1 {
				first = append(first, pf)
			}
		}
		require.Len(t, first, 4)

		assert.Equal(t, model.PlayerPerformance{
			MatchID: 1, PlayerName: "miracle", Team: model.SideRadiant,
			Position: 1, NetWorth: 21450, Kills: 9, Deaths: 2, Assists: 11,
		}, first[0])

		// The inline comment on topson's row is stripped.
		assert.Equal(t, "topson", first[1].PlayerName)
		assert.Equal(t, 9, first[1].Assists)

		assert.Equal(t, model.SideDire, first[2].Team)
	})
}

func TestParseRejections(t *testing.T) {
	cases := map[string]string{
		"player before side marker": "2024-03-08 21:15\n46:30 34-19 radiant\nmiracle 1 21450 9/2/11",
		"bad datetime":              "march 8th\n46:30 34-19 radiant\nradiant\nmiracle 1 21450 9/2/11",
		"bad match info":            "2024-03-08 21:15\n46:30 radiant wins\nradiant\nmiracle 1 21450 9/2/11",
		"bad player row":            "2024-03-08 21:15\n46:30 34-19 radiant\nradiant\nmiracle 21450",
		"no players":                "2024-03-08 21:15\n46:30 34-19 radiant\nradiant",
	}
	for name, block := range cases {
		t.Run(name, func(t *testing.T) {
			res, err := parser.Parse(strings.NewReader(block))
			require.NoError(t, err)
			assert.Empty(t, res.Matches)
			assert.Len(t, res.Failures, 1)
		})
	}
}
