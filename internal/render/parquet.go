package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/cwbudde/algo-packet/packet/transform"
)

// Row domains written by Parquet.
const (
	DomainEnvelope  = "envelope"
	DomainTotal     = "total"
	DomainComponent = "component"
	// DomainView holds the truncated envelope shown in the 3D view.
	DomainView = "view"
)

// SampleRow is one sampled point of a transformation curve. Envelope and
// view rows carry k in Coordinate; total and component rows carry x >= 0.
// Index is always the sample index on the full grid. InView marks the
// samples drawn by the 3D view.
type SampleRow struct {
	Domain     string  `parquet:"domain,dict"`
	Component  int32   `parquet:"component"`
	Frequency  float64 `parquet:"frequency"`
	Index      int64   `parquet:"index"`
	Coordinate float64 `parquet:"coordinate"`
	Value      float64 `parquet:"value"`
	InView     bool    `parquet:"in_view"`
}

// Parquet writes the dataset of a transformation to a snappy-compressed
// parquet file.
type Parquet struct {
	Path string
	// Components also writes every component wave when true.
	Components bool
}

// Render implements Renderer.
func (p *Parquet) Render(ctx context.Context, res *transform.Result) error {
	if res == nil {
		return errNilResult
	}
	if p.Path == "" {
		return fmt.Errorf("parquet export: empty path")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if dir := filepath.Dir(p.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("parquet export: %w", err)
		}
	}
	f, err := os.Create(p.Path)
	if err != nil {
		return fmt.Errorf("parquet export: %w", err)
	}

	w := parquet.NewGenericWriter[SampleRow](f, parquet.Compression(&parquet.Snappy))
	if _, err := w.Write(Rows(res, p.Components)); err != nil {
		_ = f.Close()
		return fmt.Errorf("parquet export: write rows: %w", err)
	}
	if err := w.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("parquet export: close writer: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("parquet export: %w", err)
	}
	return nil
}

// Rows flattens a transformation into parquet rows: the envelope, the
// truncated envelope of the 3D view, the total waveform and, optionally,
// every component wave. Component is -1 for non-component rows.
func Rows(res *transform.Result, components bool) []SampleRow {
	n := len(res.Envelope) + len(res.TruncatedEnvelope) + len(res.TotalWaveform)
	if components {
		n += len(res.Components) * len(res.PositionGridPos)
	}
	rows := make([]SampleRow, 0, n)

	for i, v := range res.Envelope {
		rows = append(rows, SampleRow{
			Domain:     DomainEnvelope,
			Component:  -1,
			Index:      int64(i),
			Coordinate: res.MomentumGrid[i],
			Value:      v,
		})
	}
	for i, v := range res.TruncatedEnvelope {
		rows = append(rows, SampleRow{
			Domain:     DomainView,
			Component:  -1,
			Index:      int64(res.TruncatedIndex + i),
			Coordinate: res.TruncatedMomentum[i],
			Value:      v,
			InView:     true,
		})
	}
	for i, v := range res.TotalWaveform {
		rows = append(rows, SampleRow{
			Domain:     DomainTotal,
			Component:  -1,
			Index:      int64(i),
			Coordinate: res.PositionGridPos[i],
			Value:      v,
		})
	}
	if !components {
		return rows
	}
	for c, wave := range res.Components {
		inView := len(wave.View(res.ViewSamples))
		for i, v := range wave.Samples {
			rows = append(rows, SampleRow{
				Domain:     DomainComponent,
				Component:  int32(c),
				Frequency:  wave.Frequency,
				Index:      int64(i),
				Coordinate: res.PositionGridPos[i],
				Value:      v,
				InView:     i < inView,
			})
		}
	}
	return rows
}
