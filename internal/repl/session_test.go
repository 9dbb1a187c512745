package repl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cwbudde/algo-packet/internal/render"
	"github.com/cwbudde/algo-packet/packet/core"
	"github.com/cwbudde/algo-packet/packet/transform"
)

type recordingEngine struct {
	requests []transform.Request
	err      error
}

func (e *recordingEngine) Compute(req transform.Request) (*transform.Result, error) {
	e.requests = append(e.requests, req)
	if e.err != nil {
		return nil, e.err
	}
	return &transform.Result{Request: req}, nil
}

type recordingRenderer struct {
	results []*transform.Result
	err     error
}

func (r *recordingRenderer) Render(_ context.Context, res *transform.Result) error {
	r.results = append(r.results, res)
	return r.err
}

func newTestSession(t *testing.T, input string, engine Computer, r render.Renderer) (*Session, *bytes.Buffer, *observer.ObservedLogs) {
	t.Helper()
	obs, logs := observer.New(zapcore.DebugLevel)
	var out bytes.Buffer
	s := NewSession(engine, r,
		WithInput(strings.NewReader(input)),
		WithOutput(&out),
		WithLogger(zap.New(obs)),
	)
	return s, &out, logs
}

func TestSessionRendersUpdatedParams(t *testing.T) {
	engine := &recordingEngine{}
	r := &recordingRenderer{}
	s, out, logs := newTestSession(t, "sig=2, num=21\ngo\nbye\n", engine, r)

	require.NoError(t, s.Run(context.Background()))

	require.Len(t, engine.requests, 1)
	assert.Equal(t, 2.0, engine.requests[0].Width)
	assert.Equal(t, 21, engine.requests[0].Count)
	require.Len(t, r.results, 1)
	assert.Contains(t, out.String(), prompt)
	assert.Contains(t, out.String(), "bye")
	assert.Equal(t, 1, logs.FilterMessage("transformation computed").Len())
}

func TestSessionQuitStopsProcessing(t *testing.T) {
	engine := &recordingEngine{}
	s, _, _ := newTestSession(t, "bye, go\ngo\n", engine, &recordingRenderer{})

	require.NoError(t, s.Run(context.Background()))
	assert.Empty(t, engine.requests)
}

func TestSessionEndOfInput(t *testing.T) {
	s, _, _ := newTestSession(t, "cen=4", &recordingEngine{}, &recordingRenderer{})
	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, 4.0, s.Params().Center)
}

func TestSessionInvalidInputKeepsState(t *testing.T) {
	engine := &recordingEngine{}
	s, out, logs := newTestSession(t, "num=abc\nsig=0\ngo\n", engine, &recordingRenderer{})

	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, DefaultParams(), s.Params())
	require.Len(t, engine.requests, 1)
	assert.Equal(t, DefaultParams().Request(), engine.requests[0])
	assert.Contains(t, out.String(), "ignored")
	assert.Contains(t, out.String(), "rejected")
	assert.Equal(t, 1, logs.FilterMessage("invalid command").Len())
	assert.Equal(t, 1, logs.FilterMessage("rejected parameter").Len())
}

func TestSessionEngineErrorDoesNotEndSession(t *testing.T) {
	engine := &recordingEngine{err: fmt.Errorf("%w: width must be non-zero", core.ErrDegenerateConfiguration)}
	r := &recordingRenderer{}
	s, out, logs := newTestSession(t, "go\ngo\n", engine, r)

	require.NoError(t, s.Run(context.Background()))

	assert.Len(t, engine.requests, 2)
	assert.Empty(t, r.results)
	assert.Contains(t, out.String(), "degenerate configuration")
	errs := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(t, errs, 2)
	assert.Equal(t, "compute failed", errs[0].Message)
}

func TestSessionRenderError(t *testing.T) {
	r := &recordingRenderer{err: errors.New("disk full")}
	s, out, _ := newTestSession(t, "go\n", &recordingEngine{}, r)
	require.NoError(t, s.Run(context.Background()))
	assert.Contains(t, out.String(), "cannot render: disk full")
}

func TestSessionExport(t *testing.T) {
	exported := &recordingRenderer{}
	var gotPath string
	engine := &recordingEngine{}
	obs, _ := observer.New(zapcore.InfoLevel)
	var out bytes.Buffer
	s := NewSession(engine, &recordingRenderer{},
		WithInput(strings.NewReader("export=run.parquet\n")),
		WithOutput(&out),
		WithLogger(zap.New(obs)),
		WithExporter(func(path string) render.Renderer {
			gotPath = path
			return exported
		}),
	)

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, "run.parquet", gotPath)
	assert.Len(t, exported.results, 1)
	assert.Contains(t, out.String(), "wrote run.parquet")
}

func TestSessionCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, _, _ := newTestSession(t, "go\n", &recordingEngine{}, &recordingRenderer{})
	assert.ErrorIs(t, s.Run(ctx), context.Canceled)
}

func TestSessionWithRealEngine(t *testing.T) {
	engine, err := transform.NewEngine(core.WithNumSteps(4000))
	require.NoError(t, err)
	var out bytes.Buffer
	s := NewSession(engine, render.NewText(&out, nil),
		WithInput(strings.NewReader("num=41, go, bye\n")),
		WithOutput(&out),
	)
	require.NoError(t, s.Run(context.Background()))
	assert.Contains(t, out.String(), "41 component waves")
	assert.Equal(t, 41, s.Params().Count)
}

func TestSessionSkipsOverlongLine(t *testing.T) {
	input := "cen=" + strings.Repeat("1", 2*maxLineBytes) + "\ncen=4\n"
	s, out, logs := newTestSession(t, input, &recordingEngine{}, &recordingRenderer{})

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, 4.0, s.Params().Center)
	assert.Contains(t, out.String(), "ignored line longer than")
	assert.Equal(t, 1, logs.FilterMessage("input line too long").Len())
}

func TestSessionCountCapFromEngine(t *testing.T) {
	engine, err := transform.NewEngine(core.WithNumSteps(4000))
	require.NoError(t, err)
	var out bytes.Buffer
	s := NewSession(engine, &recordingRenderer{},
		WithInput(strings.NewReader("num=401\nnum=402\n")),
		WithOutput(&out),
	)
	assert.Equal(t, 401, s.Params().MaxCount)

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, 401, s.Params().Count)
	assert.Contains(t, out.String(), "rejected")
}
