// Command bpdesign designs a biquad bandpass and prints its Q14 coefficients
// as Verilog parameters for biquad_bandpass_fixed.
//
// Usage:
//
//	bpdesign                          # 1 MHz, 30 kHz, Q=3
//	bpdesign -fs 48000 -f0 1000 -q 0.707
//	bpdesign -diag -sweep 50          # quantization report and response table
//	bpdesign -raw-sign                # 16'sd-496 literals, as older scripts expect
//
// Negative parameters are written as -16'sd496 by default. This departs from
// the 16'sd-496 form printed by the Python design script this tool replaces;
// -raw-sign restores that form byte for byte.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	designer "github.com/tphakala/go-biquad-designer"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

type options struct {
	cfg         designer.Config
	diagnostics bool
	rawSign     bool
	sweepPoints int
	verbose     bool
}

func parseFlags(args []string) (*options, error) {
	fs := flag.NewFlagSet("bpdesign", flag.ContinueOnError)
	opts := &options{cfg: designer.DefaultConfig()}

	fs.Float64Var(&opts.cfg.SampleRate, "fs", defaultSampleRate, "Sample rate in Hz")
	fs.Float64Var(&opts.cfg.CenterFreq, "f0", defaultCenterFreq, "Center frequency in Hz (below fs/2)")
	fs.Float64Var(&opts.cfg.Q, "q", defaultQ, "Quality factor (> 0)")
	fs.BoolVar(&opts.cfg.ForceUnityGainAtCenter, "unity", true, "Rescale the numerator for 0 dB gain at f0")
	fs.BoolVar(&opts.diagnostics, "diag", false, "Print quantization errors, poles and center gain")
	fs.BoolVar(&opts.rawSign, "raw-sign", false, "Write negative literals as 16'sd-N instead of -16'sdN")
	fs.IntVar(&opts.sweepPoints, "sweep", defaultSweepPoints, "Print the magnitude response at N frequencies")
	fs.BoolVar(&opts.verbose, "v", false, "Verbose output")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if opts.sweepPoints < 0 {
		return nil, fmt.Errorf("sweep points must be non-negative, got %d", opts.sweepPoints)
	}
	return opts, nil
}

func run(args []string, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if opts.verbose {
		log.Printf("Sample rate: %g Hz", opts.cfg.SampleRate)
		log.Printf("Center frequency: %g Hz", opts.cfg.CenterFreq)
		log.Printf("Q: %g", opts.cfg.Q)
		log.Printf("Unity gain at center: %v", opts.cfg.ForceUnityGainAtCenter)
	}

	res, err := designer.DesignFromConfig(opts.cfg)
	if err != nil {
		return fmt.Errorf("design failed: %w", err)
	}

	for _, w := range res.Warnings {
		log.Print(w)
	}
	if opts.verbose {
		log.Printf("Pole radius: %.6f", res.PoleRadius)
		if !res.QuantizedStable() {
			log.Printf("Q14 coefficients are not stable")
		}
	}

	style := designer.LiteralNegated
	if opts.rawSign {
		style = designer.LiteralInlineSign
	}
	if err := res.Report(stdout, designer.ReportOptions{Style: style, Diagnostics: opts.diagnostics}); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if opts.sweepPoints > 0 {
		if err := writeSweep(stdout, res, opts.sweepPoints); err != nil {
			return fmt.Errorf("failed to write sweep: %w", err)
		}
	}
	return nil
}
