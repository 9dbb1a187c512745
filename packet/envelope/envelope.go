// Package envelope evaluates the momentum-space amplitude distribution of a
// wave packet: a normalized Gaussian density centred on the packet's mean
// wavenumber.
package envelope

import (
	"math"

	"github.com/cwbudde/algo-packet/packet/core"
)

// Gaussian is the normalized Gaussian density
//
//	phi(k) = 1/(width*sqrt(2*pi)) * exp(-(k-center)^2 / (2*width^2))
type Gaussian struct {
	Center float64
	Width  float64

	norm float64
}

// New returns a Gaussian envelope. Width must be positive and finite.
func New(center, width float64) (Gaussian, error) {
	if err := core.ValidateFinite("center", center); err != nil {
		return Gaussian{}, err
	}
	if err := core.ValidateWidth(width); err != nil {
		return Gaussian{}, err
	}
	return Gaussian{
		Center: center,
		Width:  width,
		norm:   1 / (width * math.Sqrt(2*math.Pi)),
	}, nil
}

// At returns phi(k).
func (g Gaussian) At(k float64) float64 {
	d := k - g.Center
	return g.norm * math.Exp(-d*d/(2*g.Width*g.Width))
}

// Peak returns phi(center), the maximum of the density.
func (g Gaussian) Peak() float64 {
	return g.norm
}

// Fill evaluates phi at every momentum sample into dst, reusing its capacity
// when possible, and returns the filled slice.
func (g Gaussian) Fill(dst, momentum []float64) []float64 {
	dst = core.EnsureLen(dst, len(momentum))
	for i, k := range momentum {
		dst[i] = g.At(k)
	}
	return dst
}

// Evaluate returns phi sampled on momentum.
func Evaluate(momentum []float64, center, width float64) ([]float64, error) {
	g, err := New(center, width)
	if err != nil {
		return nil, err
	}
	return g.Fill(nil, momentum), nil
}
