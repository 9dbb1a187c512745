package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

// Spectrum is the one-sided magnitude spectrum of a waveform sampled on a
// uniform position grid.
type Spectrum struct {
	// Wavenumbers holds the angular wavenumber of each bin.
	Wavenumbers []float64
	Magnitude   []float64
	// Resolution is the wavenumber spacing between bins.
	Resolution float64
	// Peak is the wavenumber of the strongest bin.
	Peak    float64
	PeakBin int
	// FFTSize is the zero-padded transform length.
	FFTSize int
}

// Analyze zero-pads samples to a power of two, transforms them with b and
// locates the dominant wavenumber.
func Analyze(b Backend, samples []float64, step float64) (*Spectrum, error) {
	if b == nil {
		return nil, fmt.Errorf("spectrum: nil backend")
	}
	if len(samples) < 2 {
		return nil, fmt.Errorf("spectrum: need at least 2 samples, got %d", len(samples))
	}
	if !(step > 0) {
		return nil, fmt.Errorf("spectrum: sample step must be > 0: %f", step)
	}

	n := nextPowerOf2(len(samples))
	padded := make([]float64, n)
	copy(padded, samples)

	bins, err := b.Forward(padded)
	if err != nil {
		return nil, err
	}
	if len(bins) != n {
		return nil, fmt.Errorf("spectrum: %s returned %d bins, want %d", b.Name(), len(bins), n)
	}

	half := n/2 + 1
	re := make([]float64, half)
	im := make([]float64, half)
	for i := range half {
		re[i] = real(bins[i])
		im[i] = imag(bins[i])
	}

	s := &Spectrum{
		Wavenumbers: make([]float64, half),
		Magnitude:   make([]float64, half),
		Resolution:  2 * math.Pi / (float64(n) * step),
		FFTSize:     n,
	}
	vecmath.Magnitude(s.Magnitude, re, im)
	for i := range s.Wavenumbers {
		s.Wavenumbers[i] = float64(i) * s.Resolution
	}
	s.PeakBin = floats.MaxIdx(s.Magnitude)
	s.Peak = s.Wavenumbers[s.PeakBin]
	return s, nil
}

// Power returns |X[k]|^2 for every bin of s.
func (s *Spectrum) Power() []float64 {
	out := make([]float64, len(s.Magnitude))
	vecmath.MulBlock(out, s.Magnitude, s.Magnitude)
	return out
}

// Centroid returns the power-weighted mean wavenumber.
func (s *Spectrum) Centroid() float64 {
	p := s.Power()
	total := floats.Sum(p)
	if total == 0 {
		return 0
	}
	return floats.Dot(p, s.Wavenumbers) / total
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
