package rating

import (
	"github.com/playrank/ranked/internal/domain/impact"
	"github.com/playrank/ranked/pkg/logger"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithParams replaces the default formula parameters.
func WithParams(p Params) Option {
	return func(e *Engine) {
		e.params = p
	}
}

// WithImpactSource sets the per-player impact score source. Players the
// source has no value for default to a neutral 0.0.
func WithImpactSource(src impact.Source) Option {
	return func(e *Engine) {
		if src != nil {
			e.impacts = src
		}
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}
