// Package config defines pipeline configuration and loading.
//
// Conventions follow the rest of the repo: defaults come from New(),
// Load() layers an optional YAML file and environment variables on top,
// and validation fails fast before any match is processed.
package config

import "github.com/playrank/ranked/internal/domain/rating"

// Formula names for Config.Formula.
const (
	FormulaRanked = "ranked"
	FormulaSimple = "simple"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// InputPath is the plain-text match log to ingest.
	InputPath string `koanf:"input_path"`

	// DBPath is the SQLite database path; ":memory:" for ephemeral runs.
	DBPath string `koanf:"db_path"`

	// OutputDir receives the rendered reports.
	OutputDir string `koanf:"output_dir"`

	// MetricsAddr exposes Prometheus /metrics when ServeMetrics is set.
	MetricsAddr  string `koanf:"metrics_addr"`
	ServeMetrics bool   `koanf:"serve_metrics"`

	// Formula selects the rating formula: "ranked" (full skew/merit
	// engine) or "simple" (fixed delta).
	Formula string `koanf:"formula"`

	// ImpactEnabled switches the calibrated impact source on. When off
	// every player rates as neutral.
	ImpactEnabled bool `koanf:"impact_enabled"`

	// InitialRating is the starting value for unseen players.
	InitialRating int64 `koanf:"initial_rating"`

	// WinDelta is the fixed movement of the simple formula.
	WinDelta int64 `koanf:"win_delta"`

	// Pool sizing.
	BasePool  float64 `koanf:"base_pool"`
	PoolGamma float64 `koanf:"pool_gamma"`
	PoolMin   float64 `koanf:"pool_min"`
	PoolMax   float64 `koanf:"pool_max"`

	// Skew math.
	RefSeconds int     `koanf:"ref_seconds"`
	ThClip     float64 `koanf:"th_clip"`
	KAlpha     float64 `koanf:"k_alpha"`
	DurPower   float64 `koanf:"dur_power"`
	WTh        float64 `koanf:"w_th"`
	WK         float64 `koanf:"w_k"`

	// Share blending.
	MeritWeight float64 `koanf:"merit_weight"`
	MapGamma    float64 `koanf:"map_gamma"`

	// Role weighting.
	PosMultiplierA float64 `koanf:"position_multiplier_a"`
	PosMultiplierB float64 `koanf:"position_multiplier_b"`
}

// New creates a Config with production defaults.
func New() *Config {
	p := rating.DefaultParams()
	return &Config{
		LogLevel:       "info",
		InputPath:      "data.txt",
		DBPath:         ":memory:",
		OutputDir:      "reports",
		MetricsAddr:    ":9091",
		ServeMetrics:   false,
		Formula:        FormulaRanked,
		ImpactEnabled:  true,
		InitialRating:  500,
		WinDelta:       25,
		BasePool:       p.BasePool,
		PoolGamma:      p.PoolGamma,
		PoolMin:        p.PoolMin,
		PoolMax:        p.PoolMax,
		RefSeconds:     p.RefSeconds,
		ThClip:         p.ThClip,
		KAlpha:         p.KAlpha,
		DurPower:       p.DurPower,
		WTh:            p.WTh,
		WK:             p.WK,
		MeritWeight:    p.MeritWeight,
		MapGamma:       p.MapGamma,
		PosMultiplierA: p.PosMultiplierA,
		PosMultiplierB: p.PosMultiplierB,
	}
}

// Params assembles the engine parameters from the configuration.
func (c *Config) Params() rating.Params {
	return rating.Params{
		BasePool:       c.BasePool,
		PoolGamma:      c.PoolGamma,
		PoolMin:        c.PoolMin,
		PoolMax:        c.PoolMax,
		RefSeconds:     c.RefSeconds,
		ThClip:         c.ThClip,
		KAlpha:         c.KAlpha,
		DurPower:       c.DurPower,
		WTh:            c.WTh,
		WK:             c.WK,
		MeritWeight:    c.MeritWeight,
		MapGamma:       c.MapGamma,
		PosMultiplierA: c.PosMultiplierA,
		PosMultiplierB: c.PosMultiplierB,
	}
}
