// Command analyze-spectrum compares the spectra of a filter's captured input
// and output and reports the gain at each stimulus tone.
//
// The capture is either the simulator's CSV log (header row, input and output
// in columns 1 and 2 as Q13 integers) or a two-channel WAV.
//
// Usage:
//
//	analyze-spectrum sim_io.csv
//	analyze-spectrum -norm relative_input -spectrum spectrum.csv sim_io.csv
//	analyze-spectrum -predict -f0 30000 -q 3 sim_io.csv   # compare with the design
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	designer "github.com/tphakala/go-biquad-designer"
	"github.com/tphakala/go-biquad-designer/internal/analysis"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("analyze-spectrum", flag.ContinueOnError)
	cfg := analysis.DefaultConfig()
	fs.Float64Var(&cfg.SampleRate, "fs", analysis.DefaultSampleRate, "Capture sample rate in Hz (CSV only; WAV carries its own)")
	fs.IntVar(&cfg.MaxLength, "n", analysis.DefaultMaxLength, "Maximum FFT length")
	fs.Float64Var(&cfg.KaiserAttenuation, "atten", analysis.DefaultKaiserAttenuation, "Kaiser sidelobe attenuation in dB")
	windowName := fs.String("window", analysis.WindowHann.String(), "Window: hann or kaiser")
	normName := fs.String("norm", analysis.NormRelativeEach.String(), "Normalization: relative_each, relative_input or absolute")
	passTone := fs.Float64("pass", defaultPassTone, "Pass tone in Hz for the report and relative_input")
	toneList := fs.String("tones", defaultTones, "Stimulus tones in Hz, comma separated")
	spectrumPath := fs.String("spectrum", "", "Write the normalized spectrum to this CSV")
	maxFreq := fs.Float64("max-freq", defaultMaxFreq, "Upper frequency of the spectrum CSV in Hz (0 for all bins)")
	predict := fs.Bool("predict", false, "Print the designed filter's gain next to each tone")
	f0 := fs.Float64("f0", defaultPassTone, "Design center frequency for -predict")
	q := fs.Float64("q", defaultQ, "Design Q for -predict")
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() < minRequiredArgs {
		fs.Usage()
		return fmt.Errorf("missing capture file")
	}

	var err error
	if cfg.Window, err = analysis.ParseWindow(*windowName); err != nil {
		return err
	}
	opts := analysis.ReportOptions{PassTone: *passTone}
	if opts.Norm, err = analysis.ParseNormMode(*normName); err != nil {
		return err
	}
	if opts.Tones, err = parseFrequencies(*toneList); err != nil {
		return err
	}

	path := fs.Arg(0)
	capture, err := loadCapture(path)
	if err != nil {
		return err
	}
	if *verbose {
		log.Printf("Capture: %s, %d samples", path, capture.Len())
	}

	spectrum, err := analysis.Compute(cfg, capture)
	if err != nil {
		return err
	}

	if *predict {
		designCfg := designer.DefaultConfig()
		designCfg.SampleRate = spectrum.SampleRate
		designCfg.CenterFreq = *f0
		designCfg.Q = *q
		if opts.Predict, err = predictor(designCfg); err != nil {
			return err
		}
	}

	if err := analysis.WriteReport(stdout, spectrum, opts); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if *spectrumPath != "" {
		if err := writeSpectrumFile(*spectrumPath, spectrum, opts, *maxFreq); err != nil {
			return err
		}
		if *verbose {
			log.Printf("Spectrum: %s", *spectrumPath)
		}
	}
	return nil
}
