package repl

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-packet/packet/core"
	"github.com/cwbudde/algo-packet/packet/transform"
)

// Params is the interactive state. It is a value: Apply returns a new Params
// and leaves the receiver untouched.
type Params struct {
	Center float64
	Width  float64
	Count  int
	KView  transform.Range
	XView  transform.Range
	// MaxCount caps SetCount. Zero disables the cap.
	MaxCount int
}

// DefaultParams is the state a session starts from without configuration.
func DefaultParams() Params {
	return Params{
		Center: 10,
		Width:  1,
		Count:  11,
		KView:  transform.Range{Low: 5, High: 15},
		XView:  transform.Range{Low: -5, High: 5},

		MaxCount: core.DefaultConfig().MaxComponents(),
	}
}

// Apply returns the state produced by a setter command. Commands that do
// not change parameters return p unchanged.
func (p Params) Apply(cmd Command) (Params, error) {
	next := p
	switch c := cmd.(type) {
	case SetCenter:
		next.Center = c.Value
	case SetWidth:
		if !(c.Value > 0) {
			return p, fmt.Errorf("%w: width must be > 0, got %g", ErrInvalidParameter, c.Value)
		}
		next.Width = c.Value
	case SetCount:
		if c.Value < 2 {
			return p, fmt.Errorf("%w: need at least 2 component waves, got %d", ErrInvalidParameter, c.Value)
		}
		if p.MaxCount > 0 && c.Value > p.MaxCount {
			return p, fmt.Errorf("%w: at most %d component waves fit the truncation window, got %d",
				ErrInvalidParameter, p.MaxCount, c.Value)
		}
		next.Count = c.Value
	case SetKRange:
		next.KView = applyRange(p.KView, c.Low, c.High)
	case SetXRange:
		next.XView = applyRange(p.XView, c.Low, c.High)
		if !(next.XView.High > 0) {
			return p, fmt.Errorf("%w: x view upper bound must be > 0, got %g", ErrInvalidParameter, next.XView.High)
		}
	}
	return next, nil
}

func applyRange(r transform.Range, lo, hi Bound) transform.Range {
	if lo.Set {
		r.Low = lo.Value
	}
	if hi.Set {
		r.High = hi.Value
	}
	return r
}

// Request converts the state into an engine request.
func (p Params) Request() transform.Request {
	return transform.Request{
		Center: p.Center,
		Width:  p.Width,
		Count:  p.Count,
		KView:  p.KView,
		XView:  p.XView,
	}
}

// String lists the current parameters the way the banner shows them.
func (p Params) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "  sigma (width)  %g\n", p.Width)
	fmt.Fprintf(&b, "  center         %g\n", p.Center)
	fmt.Fprintf(&b, "  components     %d\n", p.Count)
	fmt.Fprintf(&b, "  k view         [%g, %g]\n", p.KView.Low, p.KView.High)
	fmt.Fprintf(&b, "  x view         [%g, %g]\n", p.XView.Low, p.XView.High)
	return b.String()
}

const helpText = `Commands (comma separated, e.g. "sig=2, num=21, go"):
  cen=<real>      envelope center in k
  sig=<real>      envelope standard deviation (> 0)
  num=<int>       number of component waves (>= 2)
  klo=<real>      lower k view bound      khi=<real>  upper k view bound
  xlo=<real>      lower x view bound      xhi=<real>  upper x view bound
  k=<lo>:<hi>     both k view bounds      x=<lo>:<hi> both x view bounds
  go              compute and show the transformation
  export=<path>   compute and write samples to a parquet file
  help            show this text
  bye             quit
`
