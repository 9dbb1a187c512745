// Package render holds the collaborators that consume a computed
// transformation: a terminal summary with ASCII plots and a columnar dataset
// exporter. Renderers only read the dataset.
package render

import (
	"context"
	"errors"

	"github.com/cwbudde/algo-packet/packet/transform"
)

// Renderer presents or persists a computed transformation.
type Renderer interface {
	Render(ctx context.Context, res *transform.Result) error
}

// Func adapts a function to Renderer.
type Func func(ctx context.Context, res *transform.Result) error

// Render calls f.
func (f Func) Render(ctx context.Context, res *transform.Result) error {
	return f(ctx, res)
}

// Multi renders with every renderer in order and joins their errors.
type Multi []Renderer

// Render implements Renderer.
func (m Multi) Render(ctx context.Context, res *transform.Result) error {
	var errs []error
	for _, r := range m {
		if r == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.Render(ctx, res); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var errNilResult = errors.New("render: nil transformation result")
