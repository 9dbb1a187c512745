package spectrum

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoertzelAlignedCosine(t *testing.T) {
	const (
		n    = 1000
		step = 0.01
		amp  = 0.3
	)
	// 4 full periods across n*step.
	k := 2 * math.Pi * 4 / (n * step)
	samples := make([]float64, n)
	for j := range samples {
		samples[j] = amp * math.Cos(k*float64(j)*step)
	}

	g, err := NewGoertzel(k, step)
	require.NoError(t, err)
	g.Process(samples[:n/2])
	g.Process(samples[n/2:])
	assert.InDelta(t, amp, g.Amplitude(), 1e-6)
	assert.InEpsilon(t, math.Pow(amp*n/2, 2), g.Power(), 1e-6)

	g.Reset()
	assert.Zero(t, g.Amplitude())
}

func TestGoertzelRejectsOutOfBand(t *testing.T) {
	_, err := NewGoertzel(-1, 0.1)
	assert.Error(t, err)
	_, err = NewGoertzel(math.Pi/0.1+1, 0.1)
	assert.Error(t, err)
	_, err = NewGoertzel(1, 0)
	assert.Error(t, err)
}

func TestAmplitudesSeparatesComponents(t *testing.T) {
	const (
		n    = 4000
		step = 0.005
	)
	period := n * step
	k1 := 2 * math.Pi * 10 / period
	k2 := 2 * math.Pi * 25 / period
	samples := make([]float64, n)
	for j := range samples {
		x := float64(j) * step
		samples[j] = 0.5*math.Cos(k1*x) + 0.2*math.Cos(k2*x)
	}

	got := Amplitudes(samples, step, []float64{k1, -k2, 1e6})
	assert.InDelta(t, 0.5, got[0], 1e-6)
	assert.InDelta(t, 0.2, got[1], 1e-6)
	assert.True(t, math.IsNaN(got[2]))
}
