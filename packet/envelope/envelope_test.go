package envelope

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-packet/internal/testutil"
	"github.com/cwbudde/algo-packet/packet/core"
)

func TestGaussianMatchesClosedForm(t *testing.T) {
	k := testutil.Linspace(-5, 25, 301)
	got, err := Evaluate(k, 10, 1.5)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	want := make([]float64, len(k))
	for i, v := range k {
		want[i] = testutil.Gaussian(v, 10, 1.5)
	}
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-15)
}

func TestGaussianSymmetric(t *testing.T) {
	tests := []struct {
		center float64
		width  float64
	}{
		{center: 10, width: 1},
		{center: -3.5, width: 0.2},
		{center: 0, width: 7},
	}

	for _, tt := range tests {
		g, err := New(tt.center, tt.width)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		for _, d := range []float64{0, 0.1, 0.5, 1, 2.5, 4, 9} {
			off := d * tt.width
			lo, hi := g.At(tt.center-off), g.At(tt.center+off)
			if !core.NearlyEqual(lo, hi, 1e-12) {
				t.Fatalf("center=%v width=%v d=%v: phi(c-d)=%v phi(c+d)=%v", tt.center, tt.width, off, lo, hi)
			}
		}
	}
}

func TestGaussianPeakIsMaximum(t *testing.T) {
	g, err := New(2, 0.5)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if g.At(2) != g.Peak() {
		t.Fatalf("At(center) = %v, Peak() = %v", g.At(2), g.Peak())
	}
	for _, k := range testutil.Linspace(-2, 6, 161) {
		if math.Abs(k-2) > 1e-6 && g.At(k) >= g.Peak() {
			t.Fatalf("phi(%v) = %v >= peak %v", k, g.At(k), g.Peak())
		}
	}
}

func TestGaussianStrictlyPositiveNearWindow(t *testing.T) {
	g, err := New(10, 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	// exp underflows to zero only beyond ~38 widths.
	for _, d := range []float64{4, 10, 20, 30} {
		if v := g.At(10 + d); !(v > 0) {
			t.Fatalf("phi(c+%v) = %v, want > 0", d, v)
		}
	}
}

func TestFillReusesBuffer(t *testing.T) {
	g, err := New(0, 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	buf := make([]float64, 0, 8)
	out := g.Fill(buf, []float64{-1, 0, 1})
	if len(out) != 3 || cap(out) != 8 {
		t.Fatalf("len=%d cap=%d, want 3/8", len(out), cap(out))
	}
}

func TestEvaluateRejectsZeroWidth(t *testing.T) {
	out, err := Evaluate([]float64{0, 1}, 0, 0)
	if !errors.Is(err, core.ErrDegenerateConfiguration) {
		t.Fatalf("Evaluate() error = %v, want ErrDegenerateConfiguration", err)
	}
	if out != nil {
		t.Fatalf("expected no envelope, got %v", out)
	}
}
