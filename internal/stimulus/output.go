package stimulus

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	wavPCMFormat = 1 // WAVE_FORMAT_PCM
	monoChannels = 1

	bitsPerSample16 = 16
	bitsPerSample24 = 24

	// maxWAVSampleRate bounds the rate because the encoder preallocates one
	// minute of audio at that rate.
	maxWAVSampleRate = 1_000_000
)

// WriteCSV writes one sample per row as a signed three-decimal value
// (e.g. "+0.412"), with no header, the format the ARB web UI accepts.
func WriteCSV(w io.Writer, samples []float64) error {
	cw := csv.NewWriter(w)
	for i, v := range samples {
		if err := cw.Write([]string{fmt.Sprintf("%+.*f", outputDecimals, v)}); err != nil {
			return fmt.Errorf("failed to write sample %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteWAV writes the signal as mono PCM at its own sample rate, clipping
// to ±1 full scale.
func WriteWAV(w io.WriteSeeker, sig Signal, bitDepth int) error {
	if bitDepth != bitsPerSample16 && bitDepth != bitsPerSample24 {
		return fmt.Errorf("%w: unsupported bit depth %d", ErrInvalidConfig, bitDepth)
	}
	sampleRate := int(math.Round(sig.SampleRate))
	if sampleRate <= 0 || sampleRate > maxWAVSampleRate {
		return fmt.Errorf("%w: WAV sample rate %d Hz outside 1-%d Hz; fix Config.SampleRate",
			ErrInvalidConfig, sampleRate, maxWAVSampleRate)
	}

	maxVal := float64(int64(1)<<(bitDepth-1) - 1)
	data := make([]int, len(sig.Samples))
	for i, v := range sig.Samples {
		data[i] = int(math.Round(math.Max(-1, math.Min(1, v)) * maxVal))
	}

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: monoChannels,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, monoChannels, wavPCMFormat)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write WAV data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}
	return nil
}
