// Command fourier is an interactive explorer for Gaussian wave packets built
// from a finite number of cosine components.
//
// Usage:
//
//	fourier [flags]
//
// Each input line holds comma separated commands, for example
//
//	>>> sig=2, num=41, go
//
// Examples:
//
//	fourier --count 21 --width 0.5
//	fourier --config packet.yaml --log-level debug
//	fourier --print-config
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-packet/internal/config"
	"github.com/cwbudde/algo-packet/internal/logging"
	"github.com/cwbudde/algo-packet/internal/render"
	"github.com/cwbudde/algo-packet/internal/repl"
	"github.com/cwbudde/algo-packet/packet/core"
	"github.com/cwbudde/algo-packet/packet/spectrum"
	"github.com/cwbudde/algo-packet/packet/transform"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if config.IsValidation(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("fourier", flag.ContinueOnError)
	config.RegisterFlags(fs)
	printConfig := fs.Bool("print-config", false, "print the effective configuration as YAML and exit")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fourier [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Interactive Fourier synthesis of a Gaussian wave packet.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(fs)
	if err != nil {
		return err
	}
	if *printConfig {
		out, err := cfg.YAML()
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	coreCfg, err := cfg.CoreConfig()
	if err != nil {
		return err
	}
	engine, err := transform.NewEngine(core.WithConfig(coreCfg))
	if err != nil {
		return err
	}
	backend, err := spectrum.BackendByName(cfg.Spectrum.Backend)
	if err != nil {
		return err
	}

	logger.Info("engine ready",
		zap.Int("num_steps", coreCfg.NumSteps),
		zap.Float64("span_k", coreCfg.StdDevSpanK),
		zap.Float64("span_x", coreCfg.StdDevSpanX),
		zap.Stringer("rule", coreCfg.Rule),
		zap.String("fft_backend", backend.Name()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	session := repl.NewSession(engine, render.NewText(os.Stdout, backend),
		repl.WithLogger(logger),
		repl.WithParams(sessionParams(cfg.Session)),
	)
	if err := session.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func sessionParams(s config.SessionConfig) repl.Params {
	return repl.Params{
		Center: s.Center,
		Width:  s.Width,
		Count:  s.Count,
		KView:  transform.Range{Low: s.KLow, High: s.KHigh},
		XView:  transform.Range{Low: s.XLow, High: s.XHigh},
	}
}
