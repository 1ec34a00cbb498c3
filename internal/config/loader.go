package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if RANKED_CONFIG is set
//  3. env (prefix RANKED_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("RANKED_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: RANKED_INPUT_PATH, RANKED_POOL_MAX, ...
	// Underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("RANKED_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "ranked_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations that cannot produce a meaningful run.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("%w: input_path must not be empty", ErrInvalidConfig)
	}
	if c.Formula != FormulaRanked && c.Formula != FormulaSimple {
		return fmt.Errorf("%w: unknown formula %q", ErrInvalidConfig, c.Formula)
	}
	if c.WinDelta <= 0 {
		return fmt.Errorf("%w: win_delta must be positive", ErrInvalidConfig)
	}
	if c.ServeMetrics && c.MetricsAddr == "" {
		return fmt.Errorf("%w: metrics_addr must not be empty when serve_metrics is set", ErrInvalidConfig)
	}
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
