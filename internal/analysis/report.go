package analysis

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

const (
	hzPerKHz = 1000.0

	// dB columns of the spectrum CSV
	reportDecimals = 4
)

// ReportOptions controls WriteReport.
type ReportOptions struct {
	Norm     NormMode
	PassTone float64
	Tones    []float64

	// Predict, when set, returns the designed filter's gain in dB at a
	// frequency; it is printed next to each measured tone.
	Predict func(freq float64) float64
}

// WriteReport prints the spectrum summary, the pass-tone level and the
// per-tone gain table.
func WriteReport(w io.Writer, s *Spectrum, opts ReportOptions) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Spectrum: N=%d, Fs=%s Hz, bin width %.3f Hz, window %s\n",
		s.Length, strconv.FormatFloat(s.SampleRate, 'f', -1, 64), s.BinWidth(), s.Window)
	fmt.Fprintf(bw, "Normalization: %s\n", opts.Norm)
	fmt.Fprintf(bw, "Mean: input %+.5f, output %+.5f\n", s.InputMean, s.OutputMean)

	in, out := s.Normalized(opts.Norm, opts.PassTone)
	pass := s.Bin(opts.PassTone)
	fmt.Fprintf(bw, "Pass tone %.3f kHz (bin %.3f kHz): input %+.2f dB, output %+.2f dB\n",
		opts.PassTone/hzPerKHz, s.Freqs[pass]/hzPerKHz, in[pass], out[pass])

	if len(opts.Tones) > 0 {
		fmt.Fprintf(bw, "\nPer-tone gain (output - input):\n")
		fmt.Fprintf(bw, "  %9s  %9s  %9s  %9s  %9s", "tone kHz", "bin kHz", "in dB", "out dB", "gain dB")
		if opts.Predict != nil {
			fmt.Fprintf(bw, "  %9s  %9s", "model dB", "delta dB")
		}
		fmt.Fprintln(bw)

		for _, g := range s.ToneGains(opts.Tones) {
			fmt.Fprintf(bw, "  %9.3f  %9.3f  %9.2f  %9.2f  %+9.2f",
				g.Freq/hzPerKHz, g.BinFreq/hzPerKHz, g.InputDB, g.OutputDB, g.GainDB)
			if opts.Predict != nil {
				predicted := opts.Predict(g.Freq)
				fmt.Fprintf(bw, "  %+9.2f  %+9.2f", predicted, g.GainDB-predicted)
			}
			fmt.Fprintln(bw)
		}
	}

	return bw.Flush()
}

// WriteSpectrumCSV writes freq_khz,input_db,output_db rows for bins up to
// maxFreq (all bins when maxFreq <= 0), normalized per mode.
func WriteSpectrumCSV(w io.Writer, s *Spectrum, mode NormMode, passTone, maxFreq float64) error {
	in, out := s.Normalized(mode, passTone)

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"freq_khz", "input_db", "output_db"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i, f := range s.Freqs {
		if maxFreq > 0 && f > maxFreq {
			break
		}
		row := []string{
			strconv.FormatFloat(f/hzPerKHz, 'f', -1, 64),
			strconv.FormatFloat(in[i], 'f', reportDecimals, 64),
			strconv.FormatFloat(out[i], 'f', reportDecimals, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write bin %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
