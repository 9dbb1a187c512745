// Package grid builds the uniformly sampled momentum and position axes that
// every later stage of a transformation indexes into.
package grid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-packet/packet/core"
)

// Grid holds the sampled axes of one transformation. The slices are
// allocated per call and must be treated as read-only by consumers.
type Grid struct {
	// Momentum holds NumSteps+1 strictly increasing k values centred on the
	// envelope center.
	Momentum []float64
	// PositionPos holds NumSteps+1 non-negative x values starting at 0.
	PositionPos []float64
	// PositionNeg is the elementwise negation of PositionPos.
	PositionNeg []float64

	StepK float64
	StepX float64
}

// Build samples the momentum axis over center ± StdDevSpanK/2 widths and the
// position axis over [0, StdDevSpanX*xMax].
func Build(center, width, xMax float64, cfg core.Config) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := core.ValidateFinite("center", center); err != nil {
		return nil, err
	}
	if err := core.ValidateWidth(width); err != nil {
		return nil, err
	}
	if !(xMax > 0) || math.IsInf(xMax, 0) {
		return nil, fmt.Errorf("%w: x view limit must be a positive finite number: %f",
			core.ErrDegenerateConfiguration, xMax)
	}

	n := cfg.NumSteps + 1
	halfK := cfg.StdDevSpanK / 2 * width
	spanX := cfg.StdDevSpanX * xMax

	g := &Grid{
		Momentum:    floats.Span(make([]float64, n), center-halfK, center+halfK),
		PositionPos: floats.Span(make([]float64, n), 0, spanX),
		StepK:       cfg.StdDevSpanK * width / float64(cfg.NumSteps),
		StepX:       spanX / float64(cfg.NumSteps),
	}
	g.PositionNeg = floats.ScaleTo(make([]float64, n), -1, g.PositionPos)

	if err := checkIncreasing("momentum", g.Momentum, g.StepK); err != nil {
		return nil, err
	}
	if err := checkIncreasing("position", g.PositionPos, g.StepX); err != nil {
		return nil, err
	}
	return g, nil
}

// checkIncreasing rejects axes whose step is below the float64 spacing at
// their values, where neighbouring samples collapse onto each other.
func checkIncreasing(name string, axis []float64, step float64) error {
	if !(step > 0) || math.IsInf(step, 0) {
		return fmt.Errorf("%w: %s step must be a positive finite number: %g",
			core.ErrDegenerateConfiguration, name, step)
	}
	for i := 1; i < len(axis); i++ {
		if !(axis[i] > axis[i-1]) {
			return fmt.Errorf("%w: %s grid is not strictly increasing at sample %d (step %g)",
				core.ErrDegenerateConfiguration, name, i, step)
		}
	}
	return nil
}

// Len returns the number of samples on each axis.
func (g *Grid) Len() int {
	return len(g.Momentum)
}

// NearestMomentumIndex returns the momentum sample index closest to k,
// clamped to the grid.
func (g *Grid) NearestMomentumIndex(k float64) int {
	if len(g.Momentum) == 0 || g.StepK == 0 {
		return 0
	}
	i := int(math.Round((k - g.Momentum[0]) / g.StepK))
	return core.ClampIndex(i, len(g.Momentum))
}
