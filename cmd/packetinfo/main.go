// Command packetinfo tabulates the uncertainty product of a Gaussian wave
// packet for a series of component counts.
//
// Usage:
//
//	packetinfo [flags] [count ...]
//
// Without arguments it prints the default count series.
//
// Examples:
//
//	packetinfo
//	packetinfo 11 41 81
//	packetinfo --width 2 --rule trapezoid 5 21
//	packetinfo --export-dir out 81
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	flag "github.com/spf13/pflag"

	"github.com/cwbudde/algo-packet/internal/config"
	"github.com/cwbudde/algo-packet/internal/render"
	"github.com/cwbudde/algo-packet/packet/core"
	"github.com/cwbudde/algo-packet/packet/reference"
	"github.com/cwbudde/algo-packet/packet/spectrum"
	"github.com/cwbudde/algo-packet/packet/transform"
)

var defaultCounts = []int{2, 3, 5, 11, 21, 41, 81}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("packetinfo", flag.ContinueOnError)
	config.RegisterFlags(fs)
	exportDir := fs.String("export-dir", "", "write one parquet file per count into this directory")
	spectral := fs.Bool("spectrum", true, "add the FFT dominant wavenumber column")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: packetinfo [flags] [count ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints sigma_x, sigma_k and their product per component count.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	counts, err := parseCounts(fs.Args())
	if err != nil {
		return err
	}

	cfg, err := config.Load(fs)
	if err != nil {
		return err
	}
	coreCfg, err := cfg.CoreConfig()
	if err != nil {
		return err
	}
	engine, err := transform.NewEngine(core.WithConfig(coreCfg))
	if err != nil {
		return err
	}

	var backend spectrum.Backend
	if *spectral {
		if backend, err = spectrum.BackendByName(cfg.Spectrum.Backend); err != nil {
			return err
		}
	}

	s := cfg.Session
	base := transform.Request{
		Center: s.Center,
		Width:  s.Width,
		KView:  transform.Range{Low: s.KLow, High: s.KHigh},
		XView:  transform.Range{Low: s.XLow, High: s.XHigh},
	}
	return printTable(context.Background(), out, engine, backend, base, counts, *exportDir)
}

func parseCounts(args []string) ([]int, error) {
	if len(args) == 0 {
		return defaultCounts, nil
	}
	counts := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(strings.TrimSpace(a))
		if err != nil {
			return nil, fmt.Errorf("component count %q is not a whole number", a)
		}
		if err := core.ValidateCount(n); err != nil {
			return nil, err
		}
		counts = append(counts, n)
	}
	return counts, nil
}

func printTable(ctx context.Context, out io.Writer, engine *transform.Engine, backend spectrum.Backend,
	base transform.Request, counts []int, exportDir string,
) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	header := "Count\tdk\tRevival x\tsigma_x\tsigma_k\tProduct\tExcess"
	rule := "-----\t--\t---------\t-------\t-------\t-------\t------"
	if backend != nil {
		header += "\tPeak k (" + backend.Name() + ")"
		rule += "\t------"
	}
	if _, err := fmt.Fprintln(tw, header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := fmt.Fprintln(tw, rule); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	cfg := engine.Config()
	for _, n := range counts {
		req := base
		req.Count = n
		res, err := engine.Compute(req)
		if err != nil {
			return fmt.Errorf("count %d: %w", n, err)
		}
		u := res.Uncertainty
		dk := reference.ComponentSpacing(n, req.Width, cfg.Truncation3D)
		row := fmt.Sprintf("%d\t%.4f\t%.4f\t%.6f\t%.6f\t%.6f\t%+.6f",
			n,
			dk,
			reference.RevivalPeriod(dk),
			u.SigmaX,
			u.SigmaK,
			u.Product,
			u.Product-reference.MinProduct,
		)
		if backend != nil {
			sp, err := spectrum.Analyze(backend, res.TotalWaveform, res.StepX)
			if err != nil {
				return fmt.Errorf("count %d: spectral check: %w", n, err)
			}
			row += fmt.Sprintf("\t%.3f", sp.Peak)
		}
		if _, err := fmt.Fprintln(tw, row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}

		if exportDir != "" {
			p := &render.Parquet{
				Path:       filepath.Join(exportDir, fmt.Sprintf("packet-n%03d.parquet", n)),
				Components: true,
			}
			if err := p.Render(ctx, res); err != nil {
				return fmt.Errorf("count %d: %w", n, err)
			}
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}
