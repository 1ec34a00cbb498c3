package rating

import "fmt"

// Params holds every tunable of the full rating formula. Values are fixed
// for the lifetime of a run; there is no mid-run reconfiguration.
type Params struct {
	// BasePool, PoolGamma, PoolMin and PoolMax size the integer pool of
	// rating points in play per match.
	BasePool  float64
	PoolGamma float64
	PoolMin   float64
	PoolMax   float64

	// RefSeconds is the duration of a full-evidence match; shorter
	// matches contribute proportionally less kill evidence.
	RefSeconds int
	// ThClip bounds the theoretical log-skew.
	ThClip float64
	// KAlpha is the kill-count smoothing constant; it keeps the kill
	// ratio defined when one side has zero kills.
	KAlpha float64
	// DurPower shapes the duration shrink curve.
	DurPower float64
	// WTh and WK weight the two log-skews in the combined evidence.
	WTh float64
	WK  float64

	// MeritWeight blends merit shares with an equal split; MapGamma
	// curves the [0,1]-mapped impact.
	MeritWeight float64
	MapGamma    float64

	// PosMultiplierA and PosMultiplierB define the linear position
	// multiplier a + b*(pos-1) used in team strength.
	PosMultiplierA float64
	PosMultiplierB float64
}

// DefaultParams returns the calibrated production defaults.
func DefaultParams() Params {
	return Params{
		BasePool:       50.0,
		PoolGamma:      25.0,
		PoolMin:        25.0,
		PoolMax:        400.0,
		RefSeconds:     5400,
		ThClip:         2.0,
		KAlpha:         2.0,
		DurPower:       0.5,
		WTh:            0.6,
		WK:             0.4,
		MeritWeight:    0.8,
		MapGamma:       1.0,
		PosMultiplierA: 2.0,
		PosMultiplierB: -0.25,
	}
}

// Validate rejects configurations that would make every result
// meaningless. It must pass before any match is processed.
func (p Params) Validate() error {
	if p.PoolMin <= 0 || p.PoolMax <= 0 {
		return fmt.Errorf("%w: pool bounds must be positive (min=%v max=%v)", ErrInvalidParams, p.PoolMin, p.PoolMax)
	}
	if p.PoolMax < p.PoolMin {
		return fmt.Errorf("%w: pool_max %v below pool_min %v", ErrInvalidParams, p.PoolMax, p.PoolMin)
	}
	if p.MeritWeight < 0 || p.MeritWeight > 1 {
		return fmt.Errorf("%w: merit_weight %v outside [0,1]", ErrInvalidParams, p.MeritWeight)
	}
	if p.RefSeconds <= 0 {
		return fmt.Errorf("%w: ref_seconds must be positive", ErrInvalidParams)
	}
	if p.KAlpha <= 0 {
		return fmt.Errorf("%w: k_alpha must be positive", ErrInvalidParams)
	}
	return nil
}

// positionMultiplier is the linear role weight m(pos) = a + b*(pos-1).
func (p Params) positionMultiplier(pos int) float64 {
	return p.PosMultiplierA + p.PosMultiplierB*float64(pos-1)
}
