package spectrum

import (
	"fmt"
	"strings"

	algofft "github.com/cwbudde/algo-fft"
	dspfft "github.com/mjibson/go-dsp/fft"
)

// Backend computes the complex spectrum of a real sequence whose length is a
// power of two.
type Backend interface {
	Name() string
	Forward(x []float64) ([]complex128, error)
}

// AlgoFFT plans a complex FFT with algo-fft.
type AlgoFFT struct{}

// Name returns the configuration name of the backend.
func (AlgoFFT) Name() string { return "algo-fft" }

// Forward returns the full complex spectrum of x.
func (AlgoFFT) Forward(x []float64) ([]complex128, error) {
	plan, err := algofft.NewPlan64(len(x))
	if err != nil {
		return nil, fmt.Errorf("algo-fft plan for %d samples: %w", len(x), err)
	}

	in := make([]complex128, len(x))
	for i, v := range x {
		in[i] = complex(v, 0)
	}
	out := make([]complex128, len(x))
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("algo-fft forward: %w", err)
	}
	return out, nil
}

// GoDSP uses the go-dsp real-input FFT.
type GoDSP struct{}

// Name returns the configuration name of the backend.
func (GoDSP) Name() string { return "go-dsp" }

// Forward returns the full complex spectrum of x.
func (GoDSP) Forward(x []float64) ([]complex128, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("go-dsp forward: empty input")
	}
	return dspfft.FFTReal(x), nil
}

// BackendByName resolves a configured backend name.
func BackendByName(name string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "algo-fft", "algofft":
		return AlgoFFT{}, nil
	case "go-dsp", "godsp":
		return GoDSP{}, nil
	default:
		return nil, fmt.Errorf("unknown FFT backend %q", name)
	}
}
