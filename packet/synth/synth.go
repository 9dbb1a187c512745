// Package synth builds the position-space superposition of a wave packet
// from its sampled plane-wave components.
//
// Each component contributes amplitude*cos(frequency*x) on the position grid
// and the total waveform is the running elementwise sum of all
// contributions, accumulated in component index order. For a fixed input
// the output is bit-for-bit reproducible.
package synth

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-packet/packet/core"
	"github.com/cwbudde/algo-packet/packet/sampler"
)

// Wave is one synthesized component.
type Wave struct {
	Frequency float64
	Amplitude float64
	// Samples holds amplitude*cos(frequency*x) for every position sample.
	Samples []float64
}

// View returns the first n samples of the wave, or all of them when n
// exceeds the length. The result aliases Samples.
func (w Wave) View(n int) []float64 {
	if n < 0 {
		n = 0
	}
	if n > len(w.Samples) {
		n = len(w.Samples)
	}
	return w.Samples[:n]
}

// Synthesizer accumulates components over a fixed position grid.
type Synthesizer struct {
	position []float64
	total    []float64
	waves    []Wave
}

// New returns a Synthesizer over position with a zeroed total waveform.
func New(position []float64) *Synthesizer {
	s := &Synthesizer{position: position}
	s.Reset()
	return s
}

// Reset clears all accumulated components, keeping the total buffer.
func (s *Synthesizer) Reset() {
	s.total = core.EnsureLen(s.total, len(s.position))
	core.Zero(s.total)
	s.waves = s.waves[:0]
}

// Add synthesizes one component, adds it to the total and returns it.
func (s *Synthesizer) Add(frequency, amplitude float64) Wave {
	samples := make([]float64, len(s.position))
	for j, x := range s.position {
		samples[j] = math.Cos(frequency * x)
	}
	floats.Scale(amplitude, samples)
	floats.Add(s.total, samples)

	w := Wave{Frequency: frequency, Amplitude: amplitude, Samples: samples}
	s.waves = append(s.waves, w)
	return w
}

// Total returns the accumulated waveform. It aliases the internal buffer
// until the next Reset.
func (s *Synthesizer) Total() []float64 {
	return s.total
}

// Waves returns the components added since the last Reset.
func (s *Synthesizer) Waves() []Wave {
	return s.waves
}

// Synthesize adds every component in order and returns the component waves
// together with their sum.
func Synthesize(position []float64, comps []sampler.Component) ([]Wave, []float64) {
	s := New(position)
	s.waves = make([]Wave, 0, len(comps))
	for _, c := range comps {
		s.Add(c.Frequency, c.Amplitude)
	}
	return s.Waves(), s.Total()
}
