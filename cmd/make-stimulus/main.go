// Command make-stimulus writes a multi-tone test signal for an arbitrary
// waveform generator. Every tone completes a whole number of cycles per
// repetition, so the captured spectrum shows clean lines at each tone.
//
// Usage:
//
//	make-stimulus                               # arb_sines.csv, five tones
//	make-stimulus -o tones.csv -tones 1000:1,3000:0.5:90
//	make-stimulus -wav stimulus.wav -rate 1000000
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/tphakala/go-biquad-designer/internal/stimulus"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("make-stimulus", flag.ContinueOnError)
	output := fs.String("o", defaultOutputCSV, "Output CSV path (one sample per row)")
	toneList := fs.String("tones", defaultTones, "Tones as freq:amp[:phase_deg], comma separated")
	dc := fs.Float64("dc", 0, "DC offset added before normalization")
	samples := fs.Int("n", defaultSamples, "Samples per repetition in the CSV")
	maxDenom := fs.Int64("maxden", defaultMaxDenom, "Largest denominator for tone ratios")
	wavPath := fs.String("wav", "", "Also write a WAV file sampled at -rate")
	wavRate := fs.Float64("rate", defaultWAVRate, "WAV sample rate in Hz")
	bitDepth := fs.Int("bits", defaultBitDepth, "WAV bit depth (16 or 24)")
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	tones, err := parseTones(*toneList)
	if err != nil {
		return err
	}

	cfg := stimulus.Config{
		Tones:          tones,
		DCOffset:       *dc,
		NumSamples:     *samples,
		MaxDenominator: *maxDenom,
	}
	if *verbose {
		log.Printf("Tones: %d", len(tones))
		log.Printf("Samples: %d", *samples)
	}

	sig, err := stimulus.Generate(cfg)
	if err != nil {
		return err
	}
	if err := writeCSVFile(*output, sig); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Saved: %s\n", *output)
	fmt.Fprintf(stdout, "Duration T = %.9f s\n", sig.Duration)
	fmt.Fprintf(stdout, "Set ARB Frequency in WebUI to %.6f Hz for exact output frequencies.\n", sig.ARBFrequency())

	if *wavPath != "" {
		cfg.SampleRate = *wavRate
		wavSig, err := stimulus.Generate(cfg)
		if err != nil {
			return fmt.Errorf("WAV stimulus: %w", err)
		}
		if err := writeWAVFile(*wavPath, wavSig, *bitDepth); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Saved: %s (%d samples at %g Hz)\n", *wavPath, len(wavSig.Samples), wavSig.SampleRate)
	}
	return nil
}
