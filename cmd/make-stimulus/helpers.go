package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tphakala/go-biquad-designer/internal/stimulus"
)

// parseTones parses "freq:amp[:phase],..." into tones.
func parseTones(spec string) ([]stimulus.Tone, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, fmt.Errorf("empty tone list")
	}

	parts := strings.Split(spec, toneSeparator)
	tones := make([]stimulus.Tone, 0, len(parts))
	for i, part := range parts {
		fields := strings.Split(strings.TrimSpace(part), fieldSeparator)
		if len(fields) < minToneFields || len(fields) > maxToneFields {
			return nil, fmt.Errorf("tone %d %q: want freq:amp[:phase]", i, part)
		}

		values := make([]float64, maxToneFields)
		for j, field := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("tone %d %q: %w", i, part, err)
			}
			values[j] = v
		}
		tones = append(tones, stimulus.Tone{Freq: values[0], Amp: values[1], PhaseDeg: values[2]})
	}
	return tones, nil
}

// writeCSVFile writes the samples to path.
func writeCSVFile(path string, sig stimulus.Signal) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	return stimulus.WriteCSV(f, sig.Samples)
}

// writeWAVFile writes the signal to path as mono PCM.
func writeWAVFile(path string, sig stimulus.Signal, bitDepth int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create WAV file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	return stimulus.WriteWAV(f, sig, bitDepth)
}
