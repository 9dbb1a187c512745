package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-packet/internal/render"
	"github.com/cwbudde/algo-packet/packet/core"
	"github.com/cwbudde/algo-packet/packet/transform"
)

const prompt = ">>> "

// Computer runs one transformation.
type Computer interface {
	Compute(req transform.Request) (*transform.Result, error)
}

type configured interface {
	Config() core.Config
}

// ExporterFunc builds the renderer used for export=<path> commands.
type ExporterFunc func(path string) render.Renderer

// Session reads commands line by line and drives the engine.
type Session struct {
	in       io.Reader
	out      io.Writer
	engine   Computer
	renderer render.Renderer
	exporter ExporterFunc
	logger   *zap.Logger
	params   Params
	maxLine  int
}

// Option configures a Session.
type Option func(*Session)

// WithInput sets the command source. Defaults to os.Stdin.
func WithInput(r io.Reader) Option {
	return func(s *Session) { s.in = r }
}

// WithOutput sets where prompts and messages go. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(s *Session) { s.out = w }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithParams sets the starting state.
func WithParams(p Params) Option {
	return func(s *Session) { s.params = p }
}

// WithExporter overrides the export renderer factory.
func WithExporter(f ExporterFunc) Option {
	return func(s *Session) {
		if f != nil {
			s.exporter = f
		}
	}
}

// NewSession creates a session around an engine and a renderer.
func NewSession(engine Computer, renderer render.Renderer, opts ...Option) *Session {
	s := &Session{
		in:       os.Stdin,
		out:      os.Stdout,
		engine:   engine,
		renderer: renderer,
		logger:   zap.NewNop(),
		params:   DefaultParams(),
		maxLine:  maxLineBytes,
		exporter: func(path string) render.Renderer {
			return &render.Parquet{Path: path, Components: true}
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if c, ok := engine.(configured); ok {
		s.params.MaxCount = c.Config().MaxComponents()
	}
	return s
}

// Params returns the current state.
func (s *Session) Params() Params {
	return s.params
}

// Run prints the banner and processes lines until quit, end of input or
// context cancellation. End of input is not an error.
func (s *Session) Run(ctx context.Context) error {
	reader := bufio.NewReader(s.in)
	s.banner()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(s.out, prompt)
		line, err := readLine(reader, s.maxLine)
		switch {
		case errors.Is(err, errLineTooLong):
			fmt.Fprintf(s.out, "ignored line longer than %d bytes\n", s.maxLine)
			s.logger.Warn("input line too long", zap.Int("limit", s.maxLine))
			continue
		case errors.Is(err, io.EOF):
			fmt.Fprintln(s.out)
			s.logger.Debug("input closed")
			return nil
		case err != nil:
			return fmt.Errorf("read input: %w", err)
		}
		if s.Step(ctx, line) {
			return nil
		}
	}
}

// Step executes every command on one line in order and reports whether the
// session should end. Errors are reported to the user and logged; they never
// end the session.
func (s *Session) Step(ctx context.Context, line string) bool {
	cmds := Parse(line)
	if len(cmds) == 0 {
		s.banner()
		return false
	}
	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case Quit:
			fmt.Fprintln(s.out, "bye")
			s.logger.Debug("session ended")
			return true
		case Help:
			s.banner()
		case Render:
			s.compute(ctx, s.renderer)
		case Export:
			if s.compute(ctx, s.exporter(c.Path)) {
				fmt.Fprintf(s.out, "wrote %s\n", c.Path)
			}
		case Invalid:
			fmt.Fprintf(s.out, "ignored %v\n", c)
			s.logger.Warn("invalid command", zap.String("token", c.Token), zap.Error(c.Err))
		default:
			next, err := s.params.Apply(cmd)
			if err != nil {
				fmt.Fprintf(s.out, "rejected: %v\n", err)
				s.logger.Warn("rejected parameter", zap.Error(err))
				continue
			}
			s.params = next
			s.logger.Debug("parameters updated",
				zap.Float64("center", next.Center),
				zap.Float64("width", next.Width),
				zap.Int("count", next.Count),
			)
		}
	}
	return false
}

func (s *Session) compute(ctx context.Context, r render.Renderer) bool {
	req := s.params.Request()
	res, err := s.engine.Compute(req)
	if err != nil {
		fmt.Fprintf(s.out, "cannot compute: %v\n", err)
		s.logger.Error("compute failed", zap.Error(err))
		return false
	}
	s.logger.Info("transformation computed",
		zap.Int("count", req.Count),
		zap.Float64("sigma_x", res.Uncertainty.SigmaX),
		zap.Float64("sigma_k", res.Uncertainty.SigmaK),
		zap.Float64("product", res.Uncertainty.Product),
	)
	if r == nil {
		return true
	}
	if err := r.Render(ctx, res); err != nil {
		if errors.Is(err, context.Canceled) {
			return false
		}
		fmt.Fprintf(s.out, "cannot render: %v\n", err)
		s.logger.Error("render failed", zap.Error(err))
		return false
	}
	return true
}

func (s *Session) banner() {
	fmt.Fprintln(s.out, "Current wave packet:")
	fmt.Fprint(s.out, s.params.String())
	fmt.Fprint(s.out, helpText)
}
