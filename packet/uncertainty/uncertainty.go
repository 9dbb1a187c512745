// Package uncertainty estimates the spread of a wave packet in position and
// momentum space and their product.
//
// The squared total waveform and the squared envelope are treated as
// unnormalized densities. Each is normalized by its own numerical integral
// and its second moment about the origin (x) or the envelope center (k) is
// taken as the variance:
//
//	normX   = 2*stepX*sum(total^2)
//	normK   = stepK*sum(phi^2)
//	sigmaX2 = sum(2*x^2*total^2*stepX) / normX
//	sigmaK2 = sum((center-k)^2*phi^2*stepK) / normK
//
// The factor 2 on the position side accounts for the mirrored negative-x
// branch, which is never materialized. The estimator does not enforce the
// uncertainty bound; product only approaches 1/2 from above when the grids
// are fine and wide enough.
package uncertainty

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"

	"github.com/cwbudde/algo-packet/packet/core"
)

var errMismatchedLength = errors.New("uncertainty: input slices must have matching lengths")

// Input groups the sampled curves the estimator integrates over.
type Input struct {
	// Position is the non-negative position grid.
	Position []float64
	// Total is the superposition sampled on Position.
	Total []float64
	// Momentum is the momentum grid.
	Momentum []float64
	// Envelope is the envelope sampled on Momentum.
	Envelope []float64

	Center float64
	StepX  float64
	StepK  float64
}

// Result holds the spread estimates.
type Result struct {
	SigmaX  float64
	SigmaK  float64
	Product float64

	VarX  float64
	VarK  float64
	NormX float64
	NormK float64
}

// Estimate integrates both densities with the selected rule.
func Estimate(in Input, rule core.Rule) (Result, error) {
	if len(in.Position) != len(in.Total) || len(in.Momentum) != len(in.Envelope) {
		return Result{}, errMismatchedLength
	}
	if len(in.Position) < 2 || len(in.Momentum) < 2 {
		return Result{}, fmt.Errorf("%w: spread integrals need at least 2 samples", core.ErrDegenerateConfiguration)
	}

	psi2 := square(in.Total)
	phi2 := square(in.Envelope)
	x2 := square(in.Position)
	dk2 := make([]float64, len(in.Momentum))
	for i, k := range in.Momentum {
		d := in.Center - k
		dk2[i] = d * d
	}

	var r Result
	switch rule {
	case core.RuleRectangle:
		r.NormX = 2 * in.StepX * floats.Sum(psi2)
		r.NormK = in.StepK * floats.Sum(phi2)
		r.VarX = 2 * in.StepX * floats.Dot(x2, psi2) / r.NormX
		r.VarK = in.StepK * floats.Dot(dk2, phi2) / r.NormK
	case core.RuleTrapezoid:
		r.NormX = 2 * integrate.Trapezoidal(in.Position, psi2)
		r.NormK = integrate.Trapezoidal(in.Momentum, phi2)
		vecmath.MulBlockInPlace(x2, psi2)
		vecmath.MulBlockInPlace(dk2, phi2)
		r.VarX = 2 * integrate.Trapezoidal(in.Position, x2) / r.NormX
		r.VarK = integrate.Trapezoidal(in.Momentum, dk2) / r.NormK
	default:
		return Result{}, fmt.Errorf("%w: unknown integration rule %d", core.ErrInvalidConfig, int(rule))
	}

	if !(r.NormX > 0) || !(r.NormK > 0) {
		return Result{}, fmt.Errorf("%w: density integrals vanish (normX=%g, normK=%g)",
			core.ErrDegenerateConfiguration, r.NormX, r.NormK)
	}

	r.SigmaX = math.Sqrt(r.VarX)
	r.SigmaK = math.Sqrt(r.VarK)
	r.Product = math.Sqrt(r.VarX * r.VarK)
	return r, nil
}

// NormK returns the rectangle-rule integral of phi^2 over a grid with the
// given step.
func NormK(envelope []float64, stepK float64) float64 {
	return stepK * floats.Sum(square(envelope))
}

// Rounded returns a copy with the three spreads rounded to digits decimals,
// for display.
func (r Result) Rounded(digits int) Result {
	out := r
	out.SigmaX = core.Round(r.SigmaX, digits)
	out.SigmaK = core.Round(r.SigmaK, digits)
	out.Product = core.Round(r.Product, digits)
	return out
}

// AtLeast reports whether the product is no smaller than bound, allowing a
// relative slack of tol.
func (r Result) AtLeast(bound, tol float64) bool {
	return r.Product >= bound || core.NearlyEqual(r.Product, bound, tol)
}

func square(v []float64) []float64 {
	out := make([]float64, len(v))
	vecmath.MulBlock(out, v, v)
	return out
}
