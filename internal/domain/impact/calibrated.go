package impact

import (
	"math"

	"github.com/playrank/ranked/internal/domain/model"
)

// roleWeights is the frozen calibration for one position: linear K/D/A and
// net-worth weights plus the bias/scale snapshot that centers and bounds
// the score. The bias is the reference median of the raw value per role,
// the scale maps typical highs near +80.
type roleWeights struct {
	wk, wd, wa, wNet float64
	bias, scale      float64
}

// calibration is frozen from a reference snapshot. It is not recomputed
// when new matches arrive, so historical impacts stay unchanged.
var calibration = map[int]roleWeights{
	1: {wk: 2.0, wd: -1.5, wa: 0.5, wNet: 0.0020, bias: 66.076, scale: 46.737},
	2: {wk: 2.0, wd: -1.5, wa: 0.5, wNet: 0.0018, bias: 51.714, scale: 45.468},
	3: {wk: 1.5, wd: -1.5, wa: 0.7, wNet: 0.0015, bias: 35.939, scale: 31.285},
	4: {wk: 0.7, wd: -1.5, wa: 1.5, wNet: 0.0010, bias: 28.462, scale: 25.630},
	5: {wk: 0.5, wd: -1.5, wa: 2.0, wNet: 0.0008, bias: 32.230, scale: 25.298},
}

// Row is one computed impact score, exported for persistence.
type Row struct {
	MatchID    int64
	PlayerName string
	Impact     float64
}

type key struct {
	matchID int64
	player  string
}

// Calibrated computes impact scores from in-match stats using the frozen
// per-role calibration:
//
//	raw    = wk*kills + wd*deaths + wa*assists + wNet*netWorth
//	impact = 100 * tanh((raw - bias) / scale)
//
// which keeps every score inside [-100, 100] with roughly zero mean per
// role. Performances on positions outside the calibration table get no
// score and rate as neutral.
type Calibrated struct {
	scores map[key]float64
	rows   []Row
}

// NewCalibrated precomputes scores for the given performances.
func NewCalibrated(perfs []model.PlayerPerformance) *Calibrated {
	c := &Calibrated{
		scores: make(map[key]float64, len(perfs)),
		rows:   make([]Row, 0, len(perfs)),
	}
	for _, pf := range perfs {
		w, ok := calibration[pf.Position]
		if !ok {
			continue
		}
		raw := w.wk*float64(pf.Kills) + w.wd*float64(pf.Deaths) +
			w.wa*float64(pf.Assists) + w.wNet*float64(pf.NetWorth)
		score := 100.0 * math.Tanh((raw-w.bias)/w.scale)
		c.scores[key{pf.MatchID, pf.PlayerName}] = score
		c.rows = append(c.rows, Row{MatchID: pf.MatchID, PlayerName: pf.PlayerName, Impact: score})
	}
	return c
}

// Impact returns the precomputed score for the pair, if any.
func (c *Calibrated) Impact(matchID int64, player string) (float64, bool) {
	v, ok := c.scores[key{matchID, player}]
	return v, ok
}

// Rows lists every computed score in input order, for persistence.
func (c *Calibrated) Rows() []Row {
	return c.rows
}
