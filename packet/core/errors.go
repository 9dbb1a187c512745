package core

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrDegenerateConfiguration reports inputs for which the discretization
	// is undefined (zero width, fewer than two components, empty grids).
	ErrDegenerateConfiguration = errors.New("degenerate configuration")
	// ErrInvalidConfig reports engine settings that are out of range.
	ErrInvalidConfig = errors.New("invalid engine configuration")
)

// Validate checks the engine settings.
func (c Config) Validate() error {
	if c.NumSteps <= 0 {
		return fmt.Errorf("%w: num steps must be > 0: %d", ErrDegenerateConfiguration, c.NumSteps)
	}
	if !(c.StdDevSpanK > 0) || math.IsInf(c.StdDevSpanK, 0) {
		return fmt.Errorf("%w: k span must be > 0: %f", ErrInvalidConfig, c.StdDevSpanK)
	}
	if !(c.StdDevSpanX > 0) || math.IsInf(c.StdDevSpanX, 0) {
		return fmt.Errorf("%w: x span must be > 0: %f", ErrInvalidConfig, c.StdDevSpanX)
	}
	if !(c.Truncation3D > 0) || math.IsInf(c.Truncation3D, 0) {
		return fmt.Errorf("%w: truncation must be > 0: %f", ErrInvalidConfig, c.Truncation3D)
	}
	if c.StdDevSpanK < 2*c.Truncation3D {
		return fmt.Errorf("%w: k span %.3g narrower than component window %.3g",
			ErrInvalidConfig, c.StdDevSpanK, 2*c.Truncation3D)
	}
	if c.Rule != RuleRectangle && c.Rule != RuleTrapezoid {
		return fmt.Errorf("%w: unknown integration rule %d", ErrInvalidConfig, int(c.Rule))
	}
	return nil
}

// ValidateWidth rejects envelope widths that make the Gaussian undefined.
func ValidateWidth(width float64) error {
	if width == 0 {
		return fmt.Errorf("%w: width must be non-zero", ErrDegenerateConfiguration)
	}
	if !(width > 0) || math.IsInf(width, 0) {
		return fmt.Errorf("%w: width must be a positive finite number: %f", ErrDegenerateConfiguration, width)
	}
	return nil
}

// ValidateCount rejects component counts for which the frequency spacing
// (window / (count-1)) is undefined.
func ValidateCount(count int) error {
	if count < 2 {
		return fmt.Errorf("%w: component count must be >= 2: %d", ErrDegenerateConfiguration, count)
	}
	return nil
}

// ValidateFinite rejects NaN and infinite parameters.
func ValidateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be finite: %f", ErrDegenerateConfiguration, name, v)
	}
	return nil
}
