package spectrum

import (
	"fmt"
	"math"
)

// Goertzel evaluates single DFT terms of a real waveform at arbitrary angular
// wavenumbers with the Goertzel recurrence. The waveform is sampled at
// x_j = j*step.
type Goertzel struct {
	step  float64
	coeff float64
	s0    float64
	s1    float64
	n     int
}

// NewGoertzel returns a detector tuned to wavenumber k. k must lie in [0, pi/step].
func NewGoertzel(k, step float64) (*Goertzel, error) {
	if !(step > 0) || math.IsInf(step, 0) {
		return nil, fmt.Errorf("spectrum: sample step must be > 0: %v", step)
	}
	if !(k >= 0) || k > math.Pi/step || math.IsInf(k, 0) {
		return nil, fmt.Errorf("spectrum: wavenumber must be between 0 and %v: %v", math.Pi/step, k)
	}
	return &Goertzel{step: step, coeff: 2 * math.Cos(k*step)}, nil
}

// Reset clears the accumulated state.
func (g *Goertzel) Reset() {
	g.s0, g.s1, g.n = 0, 0, 0
}

// Process feeds a block of samples.
func (g *Goertzel) Process(samples []float64) {
	s0, s1 := g.s0, g.s1
	coeff := g.coeff
	for _, x := range samples {
		s := x + coeff*s0 - s1
		s1 = s0
		s0 = s
	}
	g.s0, g.s1 = s0, s1
	g.n += len(samples)
}

// Power returns |X(k)|^2 over the samples processed since the last Reset.
func (g *Goertzel) Power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// Amplitude scales the DFT magnitude to the amplitude of a cosine at k,
// 2|X(k)|/N.
func (g *Goertzel) Amplitude() float64 {
	pw := g.Power()
	if g.n == 0 || pw <= 0 {
		return 0
	}
	return 2 * math.Sqrt(pw) / float64(g.n)
}

// Amplitudes measures samples once per wavenumber. Cosines are even, so
// negative wavenumbers are measured at |k|. Wavenumbers beyond pi/step yield NaN.
func Amplitudes(samples []float64, step float64, wavenumbers []float64) []float64 {
	out := make([]float64, len(wavenumbers))
	for i, k := range wavenumbers {
		g, err := NewGoertzel(math.Abs(k), step)
		if err != nil {
			out[i] = math.NaN()
			continue
		}
		g.Process(samples)
		out[i] = g.Amplitude()
	}
	return out
}
