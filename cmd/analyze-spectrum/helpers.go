package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	designer "github.com/tphakala/go-biquad-designer"
	"github.com/tphakala/go-biquad-designer/internal/analysis"
)

// parseFrequencies parses a comma-separated list of frequencies in Hz.
func parseFrequencies(list string) ([]float64, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	parts := strings.Split(list, toneSeparator)
	freqs := make([]float64, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("tone %d: %w", i, err)
		}
		freqs[i] = v
	}
	return freqs, nil
}

// loadCapture reads a capture file, choosing the loader by extension.
func loadCapture(path string) (analysis.Capture, error) {
	f, err := os.Open(path)
	if err != nil {
		return analysis.Capture{}, fmt.Errorf("failed to open capture: %w", err)
	}
	defer func() { _ = f.Close() }()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case extCSV:
		return analysis.LoadCSV(f)
	case extWAV:
		return analysis.LoadWAV(f)
	default:
		return analysis.Capture{}, fmt.Errorf("unsupported capture type %q (want %s or %s)", ext, extCSV, extWAV)
	}
}

// predictor returns the Q14 design's gain in dB as a function of frequency.
func predictor(cfg designer.Config) (func(float64) float64, error) {
	res, err := designer.DesignFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("prediction design failed: %w", err)
	}
	return func(freq float64) float64 {
		_, q14DB := res.GainDB(freq)
		return q14DB
	}, nil
}

// writeSpectrumFile exports the normalized spectrum for external plotting.
func writeSpectrumFile(path string, s *analysis.Spectrum, opts analysis.ReportOptions, maxFreq float64) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create spectrum CSV: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	return analysis.WriteSpectrumCSV(f, s, opts.Norm, opts.PassTone, maxFreq)
}
