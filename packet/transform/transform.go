// Package transform computes one complete momentum-to-position transformation
// of a Gaussian wave packet: grids, envelope, sampled components, their
// superposition and the resulting spreads.
//
// Every call allocates a fresh, immutable dataset. Consumers such as
// renderers must treat all returned slices as read-only.
package transform

import (
	"fmt"

	"github.com/cwbudde/algo-packet/packet/core"
	"github.com/cwbudde/algo-packet/packet/envelope"
	"github.com/cwbudde/algo-packet/packet/grid"
	"github.com/cwbudde/algo-packet/packet/sampler"
	"github.com/cwbudde/algo-packet/packet/synth"
	"github.com/cwbudde/algo-packet/packet/uncertainty"
)

// Range is a closed viewing interval.
type Range struct {
	Low  float64
	High float64
}

// Request holds the user-facing parameters of a transformation.
type Request struct {
	Center float64
	Width  float64
	Count  int
	// KView is the displayed momentum range. It does not affect the numbers.
	KView Range
	// XView is the displayed position range. XView.High also sets the
	// position grid extent (StdDevSpanX * XView.High).
	XView Range
}

// Result is the dataset handed to renderers.
type Result struct {
	Request Request
	Config  core.Config

	MomentumGrid []float64
	Envelope     []float64
	// TruncatedMomentum and TruncatedEnvelope cover center ± Truncation3D
	// widths. They alias MomentumGrid and Envelope.
	TruncatedMomentum []float64
	TruncatedEnvelope []float64
	// TruncatedIndex is the MomentumGrid index of TruncatedMomentum[0].
	TruncatedIndex int

	Components    []synth.Wave
	TotalWaveform []float64

	PositionGridPos []float64
	PositionGridNeg []float64

	StepK float64
	StepX float64
	// ViewSamples is the number of leading position samples shown per
	// component in the 3D view.
	ViewSamples int
	// ZLimit is the amplitude half-range of the 3D view.
	ZLimit float64

	Uncertainty uncertainty.Result
}

// Engine runs transformations with a fixed configuration.
type Engine struct {
	cfg core.Config
}

// NewEngine validates the configuration and returns an engine.
func NewEngine(opts ...core.Option) (*Engine, error) {
	cfg := core.ApplyOptions(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() core.Config {
	return e.cfg
}

// Compute runs the full pipeline for req.
func (e *Engine) Compute(req Request) (*Result, error) {
	cfg := e.cfg
	if err := core.ValidateCount(req.Count); err != nil {
		return nil, err
	}
	if maxCount := cfg.MaxComponents(); req.Count > maxCount {
		return nil, fmt.Errorf("%w: %d components exceed the %d momentum samples in the truncation window",
			core.ErrDegenerateConfiguration, req.Count, maxCount)
	}

	g, err := grid.Build(req.Center, req.Width, req.XView.High, cfg)
	if err != nil {
		return nil, fmt.Errorf("build grid: %w", err)
	}

	env, err := envelope.Evaluate(g.Momentum, req.Center, req.Width)
	if err != nil {
		return nil, fmt.Errorf("evaluate envelope: %w", err)
	}

	win, err := sampler.NewWindow(g, req.Center, req.Width, cfg.Truncation3D)
	if err != nil {
		return nil, fmt.Errorf("truncation window: %w", err)
	}
	comps, err := sampler.Sample(g, env, req.Center, req.Width, req.Count, cfg.Truncation3D)
	if err != nil {
		return nil, fmt.Errorf("sample components: %w", err)
	}

	waves, total := synth.Synthesize(g.PositionPos, comps)

	unc, err := uncertainty.Estimate(uncertainty.Input{
		Position: g.PositionPos,
		Total:    total,
		Momentum: g.Momentum,
		Envelope: env,
		Center:   req.Center,
		StepX:    g.StepX,
		StepK:    g.StepK,
	}, cfg.Rule)
	if err != nil {
		return nil, fmt.Errorf("estimate spreads: %w", err)
	}

	return &Result{
		Request:           req,
		Config:            cfg,
		MomentumGrid:      g.Momentum,
		Envelope:          env,
		TruncatedMomentum: win.Slice(g.Momentum),
		TruncatedEnvelope: win.Slice(env),
		TruncatedIndex:    win.LowIndex,
		Components:        waves,
		TotalWaveform:     total,
		PositionGridPos:   g.PositionPos,
		PositionGridNeg:   g.PositionNeg,
		StepK:             g.StepK,
		StepX:             g.StepX,
		ViewSamples:       viewSamples(cfg, g.Len()),
		ZLimit:            1 / (2.1 * req.Width),
		Uncertainty:       unc,
	}, nil
}

// Compute runs a single transformation with a one-off engine.
func Compute(req Request, opts ...core.Option) (*Result, error) {
	e, err := NewEngine(opts...)
	if err != nil {
		return nil, err
	}
	return e.Compute(req)
}

// viewSamples keeps position indices j <= NumSteps/StdDevSpanX + 1, i.e. the
// first x-view length of the grid plus one sample.
func viewSamples(cfg core.Config, n int) int {
	v := int(float64(cfg.NumSteps)/cfg.StdDevSpanX) + 2
	if v > n {
		return n
	}
	return v
}
