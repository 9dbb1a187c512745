package core

import (
	"fmt"
	"math"
	"strings"
)

// Rule selects the quadrature used for spread integrals.
type Rule int

const (
	// RuleRectangle sums f[i]*step over every grid sample.
	RuleRectangle Rule = iota
	// RuleTrapezoid applies the composite trapezoid rule on the same grid.
	RuleTrapezoid
)

// String returns the configuration name of the rule.
func (r Rule) String() string {
	switch r {
	case RuleRectangle:
		return "rectangle"
	case RuleTrapezoid:
		return "trapezoid"
	default:
		return fmt.Sprintf("Rule(%d)", int(r))
	}
}

// ParseRule converts a configuration name into a Rule.
func ParseRule(name string) (Rule, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "rectangle", "rect":
		return RuleRectangle, nil
	case "trapezoid", "trapz":
		return RuleTrapezoid, nil
	default:
		return RuleRectangle, fmt.Errorf("%w: unknown integration rule %q", ErrInvalidConfig, name)
	}
}

// Config defines the resolution and window settings shared by every stage
// of a transformation.
type Config struct {
	// NumSteps is the number of grid intervals; both axes hold NumSteps+1 samples.
	NumSteps int
	// StdDevSpanK is the momentum grid span in units of the envelope width.
	StdDevSpanK float64
	// StdDevSpanX is the position grid span in units of the x view limit.
	StdDevSpanX float64
	// Truncation3D is the component window half-width in standard deviations.
	Truncation3D float64
	// Rule selects the integration rule used by the spread estimator.
	Rule Rule
}

// MaxComponents is the number of momentum samples inside the truncation
// window. Larger component counts only repeat envelope samples.
func (c Config) MaxComponents() int {
	if c.NumSteps <= 0 || !(c.StdDevSpanK > 0) || !(c.Truncation3D > 0) {
		return 0
	}
	return int(math.Floor(float64(c.NumSteps)*2*c.Truncation3D/c.StdDevSpanK+1e-9)) + 1
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the resolution used for interactive exploration.
func DefaultConfig() Config {
	return Config{
		NumSteps:     20000,
		StdDevSpanK:  80,
		StdDevSpanX:  4,
		Truncation3D: 4,
		Rule:         RuleRectangle,
	}
}

// WithNumSteps sets the number of grid intervals.
func WithNumSteps(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.NumSteps = n
		}
	}
}

// WithStdDevSpanK sets the momentum grid span in envelope widths.
func WithStdDevSpanK(span float64) Option {
	return func(cfg *Config) {
		if span > 0 {
			cfg.StdDevSpanK = span
		}
	}
}

// WithStdDevSpanX sets the position grid span in multiples of the x view limit.
func WithStdDevSpanX(span float64) Option {
	return func(cfg *Config) {
		if span > 0 {
			cfg.StdDevSpanX = span
		}
	}
}

// WithTruncation3D sets the component window half-width in standard deviations.
func WithTruncation3D(nstd float64) Option {
	return func(cfg *Config) {
		if nstd > 0 {
			cfg.Truncation3D = nstd
		}
	}
}

// WithRule selects the integration rule.
func WithRule(r Rule) Option {
	return func(cfg *Config) {
		cfg.Rule = r
	}
}

// WithConfig replaces the whole configuration. Later options still apply.
func WithConfig(c Config) Option {
	return func(cfg *Config) {
		*cfg = c
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
