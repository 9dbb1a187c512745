// Package sampler picks the discrete plane-wave components of a wave packet:
// count evenly spaced wavenumbers across a truncated window of the envelope,
// each weighted by the envelope sample nearest to it.
package sampler

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-packet/packet/core"
	"github.com/cwbudde/algo-packet/packet/grid"
)

// indexSlack absorbs rounding in fractional grid positions so that window
// bounds landing exactly on a sample include it.
const indexSlack = 1e-9

// Component is one sampled plane wave.
type Component struct {
	Frequency float64
	Amplitude float64
	// GridIndex is the momentum sample the amplitude was read from.
	GridIndex int
}

// Window is the truncated momentum range center ± nstd*width.
type Window struct {
	Low  float64
	High float64
	// LowIndex and HighIndex are the inclusive momentum sample indices
	// falling inside [Low, High].
	LowIndex  int
	HighIndex int

	lowPos  float64
	highPos float64
}

// NewWindow locates the truncation window on g.
func NewWindow(g *grid.Grid, center, width, nstd float64) (Window, error) {
	if err := core.ValidateWidth(width); err != nil {
		return Window{}, err
	}
	if !(nstd > 0) || math.IsInf(nstd, 0) {
		return Window{}, fmt.Errorf("%w: truncation must be > 0: %f", core.ErrInvalidConfig, nstd)
	}
	if g == nil || g.Len() < 2 {
		return Window{}, fmt.Errorf("%w: momentum grid must hold at least 2 samples", core.ErrDegenerateConfiguration)
	}

	w := Window{
		Low:  center - nstd*width,
		High: center + nstd*width,
	}
	w.lowPos = (w.Low - g.Momentum[0]) / g.StepK
	w.highPos = (w.High - g.Momentum[0]) / g.StepK

	n := g.Len()
	w.LowIndex = core.ClampIndex(int(math.Ceil(w.lowPos-indexSlack)), n)
	w.HighIndex = core.ClampIndex(int(math.Floor(w.highPos+indexSlack)), n)
	return w, nil
}

// Slice returns the sub-slice of values covered by the window. The result
// aliases values.
func (w Window) Slice(values []float64) []float64 {
	if len(values) == 0 || w.HighIndex < w.LowIndex {
		return nil
	}
	hi := w.HighIndex + 1
	if hi > len(values) {
		hi = len(values)
	}
	lo := w.LowIndex
	if lo > hi {
		lo = hi
	}
	return values[lo:hi]
}

// Sample returns count components evenly spaced over the window:
//
//	frequency[i] = center - nstd*width + i*(2*nstd*width)/(count-1)
//
// with amplitude[i] read from env at the momentum index nearest to the i-th
// evenly spaced position across the window.
func Sample(g *grid.Grid, env []float64, center, width float64, count int, nstd float64) ([]Component, error) {
	if err := core.ValidateCount(count); err != nil {
		return nil, err
	}
	w, err := NewWindow(g, center, width, nstd)
	if err != nil {
		return nil, err
	}
	if avail := w.HighIndex - w.LowIndex + 1; count > avail {
		return nil, fmt.Errorf("%w: %d components exceed the %d momentum samples in the truncation window",
			core.ErrDegenerateConfiguration, count, avail)
	}
	if len(env) != g.Len() {
		return nil, fmt.Errorf("envelope length %d does not match grid length %d", len(env), g.Len())
	}

	span := 2 * nstd * width
	denom := float64(count - 1)
	posStep := (w.highPos - w.lowPos) / denom

	out := make([]Component, count)
	for i := range out {
		idx := core.ClampIndex(int(math.Round(w.lowPos+posStep*float64(i))), len(env))
		out[i] = Component{
			Frequency: w.Low + float64(i)*span/denom,
			Amplitude: env[idx],
			GridIndex: idx,
		}
	}
	return out, nil
}

// Frequencies returns the component wavenumbers in index order.
func Frequencies(comps []Component) []float64 {
	out := make([]float64, len(comps))
	for i, c := range comps {
		out[i] = c.Frequency
	}
	return out
}

// Amplitudes returns the component amplitudes in index order.
func Amplitudes(comps []Component) []float64 {
	out := make([]float64, len(comps))
	for i, c := range comps {
		out[i] = c.Amplitude
	}
	return out
}
