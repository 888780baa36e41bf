package qed

import (
	"log/slog"
)

// Option configures a Scorer.
type Option func(*config)

type config struct {
	strict       bool
	minOverlapF1 float64
	logger       *slog.Logger
}

func defaultConfig() config {
	return config{
		strict:       false,
		minOverlapF1: DefaultMinOverlapF1,
		logger:       slog.Default(),
	}
}

// WithStrict selects identity matching instead of normalized text plus span
// overlap (default: false).
func WithStrict(strict bool) Option {
	return func(c *config) {
		c.strict = strict
	}
}

// WithMinOverlapF1 sets the non-strict overlap threshold (default: 0.9).
func WithMinOverlapF1(f float64) Option {
	return func(c *config) {
		if f > 0 {
			c.minOverlapF1 = f
		}
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
