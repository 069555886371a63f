// Package stimulus generates multi-tone test signals whose tones all
// complete an integer number of cycles in the recorded window, so that an
// FFT of one window shows no spectral leakage.
package stimulus

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-biquad-designer/internal/mathutil"
	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/floats"
)

const (
	// Default stimulus: five tones spanning the bandpass
	defaultNumSamples     = 8192
	defaultMaxDenominator = 1000

	// Output resolution of the arbitrary waveform generator
	outputDecimals = 3

	// periodTolerance is the relative slack for an integer samples-per-period
	periodTolerance = 1e-9

	degreesPerHalfTurn = 180.0
	radiansPerCycle    = 2.0 * math.Pi
)

// Common errors returned by the stimulus generator.
var (
	// ErrInvalidConfig indicates invalid stimulus parameters.
	ErrInvalidConfig = errors.New("invalid stimulus configuration")
)

// Tone is one sine component of the stimulus.
type Tone struct {
	Freq     float64 // Hz
	Amp      float64 // relative amplitude
	PhaseDeg float64 // start phase in degrees
}

// Config holds the stimulus parameters.
type Config struct {
	Tones []Tone

	// DCOffset is added before peak normalization
	DCOffset float64

	// NumSamples is the window length
	NumSamples int

	// MaxDenominator limits the rational approximation of tone ratios
	MaxDenominator int64

	// SampleRate, when positive, fixes the output rate instead of spreading
	// NumSamples over one period. The period must then hold an integer
	// number of samples, and whole periods are repeated until at least
	// NumSamples are produced.
	SampleRate float64
}

// DefaultConfig returns the 10/20/30/40/50 kHz stimulus used to check the
// 30 kHz bandpass.
func DefaultConfig() Config {
	return Config{
		Tones: []Tone{
			{Freq: 10_000, Amp: 0.4},
			{Freq: 20_000, Amp: 0.3},
			{Freq: 30_000, Amp: 0.2},
			{Freq: 40_000, Amp: 0.15},
			{Freq: 50_000, Amp: 0.1},
		},
		NumSamples:     defaultNumSamples,
		MaxDenominator: defaultMaxDenominator,
	}
}

// Frequencies returns the tone frequencies in order.
func (c *Config) Frequencies() []float64 {
	freqs := make([]float64, len(c.Tones))
	for i, tone := range c.Tones {
		freqs[i] = tone.Freq
	}
	return freqs
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if len(c.Tones) == 0 {
		return fmt.Errorf("%w: at least one tone is required", ErrInvalidConfig)
	}
	for i, tone := range c.Tones {
		if math.IsNaN(tone.Freq) || math.IsInf(tone.Freq, 0) || tone.Freq <= 0 {
			return fmt.Errorf("%w: tone %d frequency %v must be positive", ErrInvalidConfig, i, tone.Freq)
		}
	}
	if c.NumSamples < 1 {
		return fmt.Errorf("%w: sample count must be at least 1", ErrInvalidConfig)
	}
	if c.MaxDenominator < 1 {
		return fmt.Errorf("%w: max denominator must be at least 1", ErrInvalidConfig)
	}
	if math.IsNaN(c.SampleRate) || math.IsInf(c.SampleRate, 0) || c.SampleRate < 0 {
		return fmt.Errorf("%w: sample rate %v must be finite and non-negative", ErrInvalidConfig, c.SampleRate)
	}
	return nil
}

// Duration returns a window length T (seconds) in which every frequency
// completes an integer number of cycles.
//
// Each frequency is expressed as a ratio to the first one, approximated by a
// fraction with denominator at most maxDenom; T is the LCM of those
// denominators divided by the first frequency.
func Duration(freqs []float64, maxDenom int64) (float64, error) {
	if len(freqs) == 0 {
		return 0, fmt.Errorf("%w: no frequencies", ErrInvalidConfig)
	}
	base := freqs[0]
	if math.IsNaN(base) || math.IsInf(base, 0) || base <= 0 {
		return 0, fmt.Errorf("%w: base frequency %v must be positive", ErrInvalidConfig, base)
	}

	cycles := int64(1)
	for i, f := range freqs {
		_, den := mathutil.LimitDenominator(f/base, maxDenom)
		var ok bool
		if cycles, ok = mathutil.CheckedLCM(cycles, den); !ok {
			return 0, fmt.Errorf("%w: cycle count overflows at tone %d (%v Hz); lower the max denominator",
				ErrInvalidConfig, i, f)
		}
	}

	return float64(cycles) / base, nil
}

// Signal is a generated stimulus window.
type Signal struct {
	// Samples are normalized to ±1 and rounded to three decimals
	Samples []float64

	// Duration is one period of the stimulus in seconds
	Duration float64

	// SampleRate is the rate the samples are spaced at
	SampleRate float64
}

// ARBFrequency is the repetition rate to program into the waveform
// generator so every tone plays at its nominal frequency.
func (s Signal) ARBFrequency() float64 {
	return 1 / s.Duration
}

// Generate builds the stimulus: the sum of all tones plus DC, divided by
// its peak magnitude and rounded to three decimals.
//
// Without a fixed SampleRate the NumSamples points cover [0, T) exactly once.
func Generate(cfg Config) (Signal, error) {
	if err := cfg.Validate(); err != nil {
		return Signal{}, err
	}

	duration, err := Duration(cfg.Frequencies(), cfg.MaxDenominator)
	if err != nil {
		return Signal{}, err
	}

	n := cfg.NumSamples
	sampleRate := float64(n) / duration
	if cfg.SampleRate > 0 {
		perPeriod := duration * cfg.SampleRate
		whole := math.Round(perPeriod)
		if whole < 1 || math.Abs(perPeriod-whole) > periodTolerance*perPeriod {
			return Signal{}, fmt.Errorf("%w: period %v s holds %.6f samples at %v Hz, not an integer",
				ErrInvalidConfig, duration, perPeriod, cfg.SampleRate)
		}
		periodLen := int(whole)
		n = (n + periodLen - 1) / periodLen * periodLen
		sampleRate = cfg.SampleRate
	}

	step := 1 / sampleRate
	if cfg.SampleRate == 0 {
		step = duration / float64(n)
	}
	y := make([]float64, n)

	for _, tone := range cfg.Tones {
		phase := tone.PhaseDeg * math.Pi / degreesPerHalfTurn
		for i := range n {
			t := float64(i) * step
			y[i] += tone.Amp * math.Sin(radiansPerCycle*tone.Freq*t+phase)
		}
	}
	if cfg.DCOffset != 0 {
		floats.AddConst(cfg.DCOffset, y)
	}

	peak := math.Max(floats.Max(y), -floats.Min(y))
	if peak != 0 {
		f64.Scale(y, y, 1/peak)
	}

	scale := math.Pow(10, outputDecimals)
	for i, v := range y {
		y[i] = math.RoundToEven(v*scale) / scale
	}

	return Signal{
		Samples:    y,
		Duration:   duration,
		SampleRate: sampleRate,
	}, nil
}
