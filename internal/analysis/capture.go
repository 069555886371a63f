// Package analysis computes windowed magnitude spectra of a captured filter
// input/output pair and reports the per-tone gain of the filter under test.
package analysis

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/go-audio/wav"
	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/floats"
)

const (
	// FullScale converts the simulator's Q13 sample log to ±1.
	FullScale = 8192.0

	// CSV columns holding the filter input and output (0-based, after a
	// leading time or index column)
	inputColumn  = 1
	outputColumn = 2

	stereoChannels = 2
	minBitDepth    = 8
	maxBitDepth    = 32

	// 8-bit PCM is unsigned with its zero at 128
	unsignedBitDepth = 8
)

// Common errors returned by the analyzer.
var (
	// ErrNoSamples indicates a capture with too few usable rows.
	ErrNoSamples = errors.New("no usable samples")

	// ErrInvalidWAV indicates a WAV file that cannot serve as a capture.
	ErrInvalidWAV = errors.New("invalid capture WAV")

	// ErrInvalidConfig indicates invalid analyzer parameters.
	ErrInvalidConfig = errors.New("invalid analysis configuration")
)

// Capture is a time-aligned filter input and output.
type Capture struct {
	Input  []float64
	Output []float64

	// SampleRate is zero when the source does not record it
	SampleRate float64
}

// Len returns the number of aligned sample pairs.
func (c *Capture) Len() int {
	return min(len(c.Input), len(c.Output))
}

// LoadCSV reads a simulator log with a header row. Columns 1 and 2 hold the
// input and output samples in Q13; rows where either value is missing or not
// a number are dropped.
func LoadCSV(r io.Reader) (Capture, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return Capture{}, fmt.Errorf("%w: empty CSV", ErrNoSamples)
		}
		return Capture{}, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var capture Capture
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Capture{}, fmt.Errorf("failed to read CSV row: %w", err)
		}

		in, inOK := parseField(record, inputColumn)
		out, outOK := parseField(record, outputColumn)
		if !inOK || !outOK {
			continue
		}
		capture.Input = append(capture.Input, in)
		capture.Output = append(capture.Output, out)
	}

	if len(capture.Input) == 0 {
		return Capture{}, fmt.Errorf("%w: no numeric rows in columns %d and %d",
			ErrNoSamples, inputColumn, outputColumn)
	}

	f64.Scale(capture.Input, capture.Input, 1/FullScale)
	f64.Scale(capture.Output, capture.Output, 1/FullScale)
	return capture, nil
}

func parseField(record []string, col int) (float64, bool) {
	if col >= len(record) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(record[col]), 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// LoadWAV reads a two-channel PCM capture: channel 0 is the filter input,
// channel 1 the output. Samples are normalized to ±1 by the bit depth;
// 8-bit data is re-centered on zero first.
func LoadWAV(r io.ReadSeeker) (Capture, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return Capture{}, fmt.Errorf("%w: not a PCM WAV file", ErrInvalidWAV)
	}

	format := dec.Format()
	if format.NumChannels != stereoChannels {
		return Capture{}, fmt.Errorf("%w: need %d channels (input, output), got %d",
			ErrInvalidWAV, stereoChannels, format.NumChannels)
	}

	bitDepth := int(dec.BitDepth)
	if bitDepth < minBitDepth || bitDepth > maxBitDepth {
		return Capture{}, fmt.Errorf("%w: unsupported bit depth %d", ErrInvalidWAV, bitDepth)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Capture{}, fmt.Errorf("failed to read WAV data: %w", err)
	}

	frames := len(buf.Data) / stereoChannels
	if frames == 0 {
		return Capture{}, fmt.Errorf("%w: WAV has no sample frames", ErrNoSamples)
	}

	capture := Capture{
		Input:      make([]float64, frames),
		Output:     make([]float64, frames),
		SampleRate: float64(format.SampleRate),
	}
	for i := range frames {
		capture.Input[i] = float64(buf.Data[i*stereoChannels])
		capture.Output[i] = float64(buf.Data[i*stereoChannels+1])
	}

	if bitDepth == unsignedBitDepth {
		offset := float64(int64(1) << (bitDepth - 1))
		floats.AddConst(-offset, capture.Input)
		floats.AddConst(-offset, capture.Output)
	}

	invMaxVal := 1 / float64(int64(1)<<(bitDepth-1))
	f64.Scale(capture.Input, capture.Input, invMaxVal)
	f64.Scale(capture.Output, capture.Output, invMaxVal)
	return capture, nil
}
