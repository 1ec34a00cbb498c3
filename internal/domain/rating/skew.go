package rating

import (
	"math"

	"github.com/playrank/ranked/internal/domain/model"
)

// strengthFloor keeps the strength ratio defined. When both teams sit at
// the floor the ratio is exactly 1 and the theoretical log-skew is 0.
const strengthFloor = 1e-9

// skews carries the per-match evidence: the rating-based and kill-based
// log-skews, their exponentials, and the combined magnitude that drives
// pool sizing.
type skews struct {
	thLog     float64
	thSkew    float64
	kLog      float64
	prSkew    float64
	magnitude float64
}

// teamStrength sums position-weighted ratings over a roster, floored at a
// small epsilon.
func (e *Engine) teamStrength(roster []model.PlayerPerformance) float64 {
	var s float64
	for _, pf := range roster {
		s += float64(e.ledger.Rating(pf.PlayerName)) * e.params.positionMultiplier(pf.Position)
	}
	return math.Max(s, strengthFloor)
}

// matchSkews derives the two "who should win" signals for one match. The
// theoretical skew compares pre-match rating strength, the performance
// skew compares smoothed kill counts shrunk by match duration so short
// matches carry less evidence. Both exponentials are strictly positive.
func (e *Engine) matchSkews(m model.Match, radiant, dire []model.PlayerPerformance) skews {
	p := e.params

	rs := e.teamStrength(radiant)
	ds := e.teamStrength(dire)
	thLog := clip(math.Log(rs/ds), -p.ThClip, p.ThClip)

	rks := float64(m.RadiantKills) + p.KAlpha
	dks := float64(m.DireKills) + p.KAlpha
	kLogRaw := math.Log(rks / dks)
	dur := math.Min(float64(m.DurationSec), float64(p.RefSeconds))
	shrink := math.Pow(dur/float64(p.RefSeconds), p.DurPower)
	kLog := shrink * kLogRaw

	z := p.WTh*thLog + p.WK*kLog
	return skews{
		thLog:     thLog,
		thSkew:    math.Exp(thLog),
		kLog:      kLog,
		prSkew:    math.Exp(kLog),
		magnitude: math.Abs(z),
	}
}

// poolSize maps the combined skew magnitude to the bounded integer amount
// of rating points in play for the match.
func (e *Engine) poolSize(magnitude float64) int64 {
	p := e.params
	f := clip(p.BasePool+p.PoolGamma*magnitude, p.PoolMin, p.PoolMax)
	return int64(math.Round(f))
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
