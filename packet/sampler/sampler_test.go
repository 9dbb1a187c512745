package sampler

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-packet/packet/core"
	"github.com/cwbudde/algo-packet/packet/envelope"
	"github.com/cwbudde/algo-packet/packet/grid"
)

func buildFixture(t *testing.T, steps int) (*grid.Grid, []float64) {
	t.Helper()
	g, err := grid.Build(10, 1, 5, core.ApplyOptions(core.WithNumSteps(steps)))
	if err != nil {
		t.Fatalf("grid.Build() error = %v", err)
	}
	env, err := envelope.Evaluate(g.Momentum, 10, 1)
	if err != nil {
		t.Fatalf("envelope.Evaluate() error = %v", err)
	}
	return g, env
}

func TestSampleFrequencies(t *testing.T) {
	g, env := buildFixture(t, 2000)

	comps, err := Sample(g, env, 10, 1, 11, 4)
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}
	if len(comps) != 11 {
		t.Fatalf("len = %d, want 11", len(comps))
	}

	for i, c := range comps {
		want := 6 + 0.8*float64(i)
		if math.Abs(c.Frequency-want) > 1e-12 {
			t.Fatalf("frequency[%d] = %v, want %v", i, c.Frequency, want)
		}
	}
	if comps[0].Frequency != 6 || comps[10].Frequency != 14 {
		t.Fatalf("extreme frequencies = (%v, %v), want (6, 14)", comps[0].Frequency, comps[10].Frequency)
	}
}

func TestSampleAmplitudesFromNearestGridPoint(t *testing.T) {
	g, env := buildFixture(t, 2000)

	comps, err := Sample(g, env, 10, 1, 11, 4)
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}

	for i, c := range comps {
		if want := 900 + 20*i; c.GridIndex != want {
			t.Fatalf("grid index[%d] = %d, want %d", i, c.GridIndex, want)
		}
		if c.Amplitude != env[c.GridIndex] {
			t.Fatalf("amplitude[%d] = %v, want env[%d] = %v", i, c.Amplitude, c.GridIndex, env[c.GridIndex])
		}
		if d := math.Abs(g.Momentum[c.GridIndex] - c.Frequency); d > g.StepK/2 {
			t.Fatalf("component %d reads sample %v away from its frequency", i, d)
		}
	}
}

func TestSampleAmplitudesSymmetric(t *testing.T) {
	g, env := buildFixture(t, 2000)

	comps, err := Sample(g, env, 10, 1, 8, 4)
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}
	amps := Amplitudes(comps)
	for i := range amps {
		j := len(amps) - 1 - i
		if !core.NearlyEqual(amps[i], amps[j], 1e-9) {
			t.Fatalf("amp[%d]=%v amp[%d]=%v", i, amps[i], j, amps[j])
		}
	}
}

func TestSampleRejectsSingleComponent(t *testing.T) {
	g, env := buildFixture(t, 200)

	for _, n := range []int{1, 0, -5} {
		comps, err := Sample(g, env, 10, 1, n, 4)
		if !errors.Is(err, core.ErrDegenerateConfiguration) {
			t.Fatalf("Sample(count=%d) error = %v, want ErrDegenerateConfiguration", n, err)
		}
		if comps != nil {
			t.Fatalf("Sample(count=%d) returned %d components", n, len(comps))
		}
	}
}

func TestSampleCountLimitedByWindow(t *testing.T) {
	g, env := buildFixture(t, 200)

	comps, err := Sample(g, env, 10, 1, 21, 4)
	if err != nil {
		t.Fatalf("Sample(count=21) error = %v", err)
	}
	for i, c := range comps {
		if want := 90 + i; c.GridIndex != want {
			t.Fatalf("grid index[%d] = %d, want %d", i, c.GridIndex, want)
		}
	}

	for _, n := range []int{22, 5000} {
		comps, err := Sample(g, env, 10, 1, n, 4)
		if !errors.Is(err, core.ErrDegenerateConfiguration) {
			t.Fatalf("Sample(count=%d) error = %v, want ErrDegenerateConfiguration", n, err)
		}
		if comps != nil {
			t.Fatalf("Sample(count=%d) returned %d components", n, len(comps))
		}
	}
}

func TestSampleRejectsMismatchedEnvelope(t *testing.T) {
	g, env := buildFixture(t, 200)
	if _, err := Sample(g, env[:10], 10, 1, 5, 4); err == nil {
		t.Fatal("expected error for mismatched envelope length")
	}
}

func TestWindowSlice(t *testing.T) {
	g, env := buildFixture(t, 2000)

	w, err := NewWindow(g, 10, 1, 4)
	if err != nil {
		t.Fatalf("NewWindow() error = %v", err)
	}
	if w.LowIndex != 900 || w.HighIndex != 1100 {
		t.Fatalf("window indices = [%d, %d], want [900, 1100]", w.LowIndex, w.HighIndex)
	}

	ks := w.Slice(g.Momentum)
	phi := w.Slice(env)
	if len(ks) != 201 || len(phi) != 201 {
		t.Fatalf("slice lengths = (%d, %d), want 201", len(ks), len(phi))
	}
	if math.Abs(ks[0]-6) > 1e-9 || math.Abs(ks[200]-14) > 1e-9 {
		t.Fatalf("window bounds = [%v, %v], want [6, 14]", ks[0], ks[200])
	}
	if &phi[0] != &env[900] {
		t.Fatal("Slice must alias the input")
	}
}

func TestFrequenciesAndAmplitudes(t *testing.T) {
	comps := []Component{{Frequency: 1, Amplitude: 0.5}, {Frequency: 2, Amplitude: 0.25}}
	f := Frequencies(comps)
	a := Amplitudes(comps)
	if f[0] != 1 || f[1] != 2 || a[0] != 0.5 || a[1] != 0.25 {
		t.Fatalf("unexpected projections: %v %v", f, a)
	}
}
