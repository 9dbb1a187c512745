package render

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-packet/packet/reference"
	"github.com/cwbudde/algo-packet/packet/spectrum"
	"github.com/cwbudde/algo-packet/packet/transform"
)

const (
	defaultPlotWidth  = 64
	defaultPlotHeight = 9
	displayDigits     = 3
	boundSlack        = 1e-3
)

// Text writes a terminal summary of a transformation: the spreads, the
// component table, the dominant wavenumber recovered by FFT and ASCII plots
// of both domains over their view ranges.
type Text struct {
	Out io.Writer
	// Backend enables the spectral cross-check when non-nil.
	Backend spectrum.Backend
	// Components lists every component wave when true.
	Components bool

	PlotWidth  int
	PlotHeight int
}

// NewText returns a Text renderer with default plot dimensions.
func NewText(out io.Writer, backend spectrum.Backend) *Text {
	return &Text{
		Out:        out,
		Backend:    backend,
		Components: true,
		PlotWidth:  defaultPlotWidth,
		PlotHeight: defaultPlotHeight,
	}
}

// Render implements Renderer.
func (t *Text) Render(ctx context.Context, res *transform.Result) error {
	if res == nil {
		return errNilResult
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var b strings.Builder
	req := res.Request
	u := res.Uncertainty.Rounded(displayDigits)

	fmt.Fprintf(&b, "\nGaussian k-distribution centered at %g with sigma %g, %d component waves\n",
		req.Center, req.Width, req.Count)
	fmt.Fprintf(&b, "sigma_k = %g   sigma_x = %g   sigma_x*sigma_p = %g hbar   (minimum %g)\n",
		u.SigmaK, u.SigmaX, u.Product, reference.MinProduct)
	if !res.Uncertainty.AtLeast(reference.MinProduct, boundSlack) {
		fmt.Fprintf(&b, "warning: product %.4g is below the minimum %g; refine the grid (num_steps, span_x)\n",
			res.Uncertainty.Product, reference.MinProduct)
	}

	if t.Backend != nil {
		s, err := spectrum.Analyze(t.Backend, res.TotalWaveform, res.StepX)
		if err != nil {
			return fmt.Errorf("spectral check: %w", err)
		}
		fmt.Fprintf(&b, "dominant k (%s) = %.3f ± %.3f   centroid k = %.3f\n",
			t.Backend.Name(), s.Peak, s.Resolution, s.Centroid())
	}

	if t.Components {
		freqs := make([]float64, len(res.Components))
		for i, w := range res.Components {
			freqs[i] = w.Frequency
		}
		measured := spectrum.Amplitudes(res.TotalWaveform, res.StepX, freqs)

		tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "#\tk\tamplitude\tin total\n")
		for i, w := range res.Components {
			fmt.Fprintf(tw, "%d\t%.4f\t%.6f\t%.6f\n", i, w.Frequency, w.Amplitude, measured[i])
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("format component table: %w", err)
		}
	}

	if n := len(res.TruncatedMomentum); n > 0 && res.ViewSamples > 0 {
		lastX := res.PositionGridPos[min(res.ViewSamples, len(res.PositionGridPos))-1]
		fmt.Fprintf(&b, "3D view: k in [%.3f, %.3f] (%d samples), x in [0, %.3f] (%d samples), z limit ±%.3f\n",
			res.TruncatedMomentum[0], res.TruncatedMomentum[n-1], n, lastX, res.ViewSamples, res.ZLimit)
	}

	width, height := t.PlotWidth, t.PlotHeight
	if width <= 0 {
		width = defaultPlotWidth
	}
	if height <= 0 {
		height = defaultPlotHeight
	}

	b.WriteString("\nmomentum space (k)\n")
	plot(&b, momentumColumns(res, width), req.KView, height)
	b.WriteString("\nposition space (x)\n")
	plot(&b, positionColumns(res, width), req.XView, height)

	if _, err := io.WriteString(t.Out, b.String()); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

// momentumColumns samples the envelope at width evenly spaced k values across
// the k view. Columns outside the grid are NaN.
func momentumColumns(res *transform.Result, width int) []float64 {
	view := res.Request.KView
	out := make([]float64, width)
	for c := range out {
		k := columnCoord(view, c, width)
		i := int(math.Round((k - res.MomentumGrid[0]) / res.StepK))
		if i < 0 || i >= len(res.Envelope) {
			out[c] = math.NaN()
			continue
		}
		out[c] = res.Envelope[i]
	}
	return out
}

// positionColumns samples the total waveform across the x view, reading the
// mirrored branch for negative x.
func positionColumns(res *transform.Result, width int) []float64 {
	view := res.Request.XView
	out := make([]float64, width)
	for c := range out {
		x := columnCoord(view, c, width)
		i := int(math.Round(math.Abs(x) / res.StepX))
		if i >= len(res.TotalWaveform) {
			out[c] = math.NaN()
			continue
		}
		out[c] = res.TotalWaveform[i]
	}
	return out
}

func columnCoord(view transform.Range, c, width int) float64 {
	if width == 1 {
		return view.Low
	}
	return view.Low + (view.High-view.Low)*float64(c)/float64(width-1)
}

// plot draws one '*' per column, scaled symmetrically about zero.
func plot(b *strings.Builder, cols []float64, view transform.Range, height int) {
	peak := 0.0
	for _, v := range cols {
		if !math.IsNaN(v) && math.Abs(v) > peak {
			peak = math.Abs(v)
		}
	}

	mid := height / 2
	for row := range height {
		line := make([]byte, len(cols))
		for c, v := range cols {
			line[c] = ' '
			if row == mid {
				line[c] = '-'
			}
			if math.IsNaN(v) || peak == 0 {
				continue
			}
			if int(math.Round(v/peak*float64(mid))) == mid-row {
				line[c] = '*'
			}
		}
		b.Write(line)
		b.WriteByte('\n')
	}
	fmt.Fprintf(b, "%-*g%*g\n", len(cols)/2, view.Low, len(cols)-len(cols)/2, view.High)
}
