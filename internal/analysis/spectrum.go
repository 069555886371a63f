package analysis

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"github.com/mjibson/go-dsp/window"
	"github.com/tphakala/go-biquad-designer/internal/filter"
	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

const (
	// Defaults match the 1 MHz hardware capture
	DefaultSampleRate        = 1_000_000.0
	DefaultMaxLength         = 8192
	DefaultPassTone          = 30_000.0
	DefaultKaiserAttenuation = 100.0

	// magnitudeEpsilon keeps log10 finite for empty bins (-400 dB)
	magnitudeEpsilon = 1e-20
	dbPerDecade      = 20.0

	minFFTLength = 2
)

// WindowKind selects the analysis window.
type WindowKind int

// Supported windows.
const (
	WindowHann WindowKind = iota
	WindowKaiser
)

// String returns the window name.
func (k WindowKind) String() string {
	switch k {
	case WindowHann:
		return "hann"
	case WindowKaiser:
		return "kaiser"
	default:
		return fmt.Sprintf("WindowKind(%d)", int(k))
	}
}

// ParseWindow maps a window name to its kind.
func ParseWindow(name string) (WindowKind, error) {
	switch strings.ToLower(name) {
	case "hann", "hanning":
		return WindowHann, nil
	case "kaiser":
		return WindowKaiser, nil
	default:
		return 0, fmt.Errorf("%w: unknown window %q", ErrInvalidConfig, name)
	}
}

// NormMode selects how spectra are referenced before display.
type NormMode int

// Normalization modes.
const (
	// NormRelativeEach references each trace to its own maximum.
	NormRelativeEach NormMode = iota
	// NormRelativeInput references both traces to the input level at the
	// pass tone.
	NormRelativeInput
	// NormAbsolute leaves raw FFT magnitudes.
	NormAbsolute
)

// String returns the mode name as accepted by ParseNormMode.
func (m NormMode) String() string {
	switch m {
	case NormRelativeEach:
		return "relative_each"
	case NormRelativeInput:
		return "relative_input"
	case NormAbsolute:
		return "absolute"
	default:
		return fmt.Sprintf("NormMode(%d)", int(m))
	}
}

// ParseNormMode maps a mode name to its NormMode.
func ParseNormMode(name string) (NormMode, error) {
	switch strings.ToLower(name) {
	case "relative_each":
		return NormRelativeEach, nil
	case "relative_input", "relative_input30":
		return NormRelativeInput, nil
	case "absolute":
		return NormAbsolute, nil
	default:
		return 0, fmt.Errorf("%w: unknown normalization %q", ErrInvalidConfig, name)
	}
}

// Config holds the spectrum parameters.
type Config struct {
	// SampleRate is used when the capture does not carry its own
	SampleRate float64

	// MaxLength caps the FFT length; the capture may be shorter
	MaxLength int

	Window WindowKind

	// KaiserAttenuation sets the Kaiser sidelobe level in dB
	KaiserAttenuation float64
}

// DefaultConfig returns the Hann, 8192-point, 1 MHz configuration.
func DefaultConfig() Config {
	return Config{
		SampleRate:        DefaultSampleRate,
		MaxLength:         DefaultMaxLength,
		Window:            WindowHann,
		KaiserAttenuation: DefaultKaiserAttenuation,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if math.IsNaN(c.SampleRate) || math.IsInf(c.SampleRate, 0) || c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %v must be positive", ErrInvalidConfig, c.SampleRate)
	}
	if c.MaxLength < minFFTLength {
		return fmt.Errorf("%w: max length %d below %d", ErrInvalidConfig, c.MaxLength, minFFTLength)
	}
	switch c.Window {
	case WindowHann:
	case WindowKaiser:
		if c.KaiserAttenuation <= 0 {
			return fmt.Errorf("%w: Kaiser attenuation %v must be positive", ErrInvalidConfig, c.KaiserAttenuation)
		}
	default:
		return fmt.Errorf("%w: unknown window %v", ErrInvalidConfig, c.Window)
	}
	return nil
}

func (c *Config) window(n int) []float64 {
	if c.Window == WindowKaiser {
		return filter.KaiserWindowForAttenuation(n, c.KaiserAttenuation)
	}
	return window.Hann(n)
}

// Spectrum holds the one-sided magnitude spectra of a capture in dB.
type Spectrum struct {
	Freqs    []float64 // Hz, bin centers
	InputDB  []float64
	OutputDB []float64

	// Means of the analyzed samples; a biased output shows up here
	InputMean  float64
	OutputMean float64

	Length     int // FFT length
	SampleRate float64
	Window     WindowKind
}

// Compute windows the first N = min(MaxLength, capture length) samples of
// both channels and returns their magnitude spectra.
func Compute(cfg Config, capture Capture) (*Spectrum, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	n := min(cfg.MaxLength, capture.Len())
	if n < minFFTLength {
		return nil, fmt.Errorf("%w: %d samples, need at least %d", ErrNoSamples, n, minFFTLength)
	}

	sampleRate := capture.SampleRate
	if sampleRate <= 0 {
		sampleRate = cfg.SampleRate
	}

	win := cfg.window(n)
	fft := fourier.NewFFT(n)

	s := &Spectrum{
		Freqs:      make([]float64, n/2+1),
		InputDB:    magnitudeDB(fft, capture.Input[:n], win),
		OutputDB:   magnitudeDB(fft, capture.Output[:n], win),
		InputMean:  f64.Sum(capture.Input[:n]) / float64(n),
		OutputMean: f64.Sum(capture.Output[:n]) / float64(n),
		Length:     n,
		SampleRate: sampleRate,
		Window:     cfg.Window,
	}
	for i := range s.Freqs {
		s.Freqs[i] = fft.Freq(i) * sampleRate
	}
	return s, nil
}

func magnitudeDB(fft *fourier.FFT, x, win []float64) []float64 {
	windowed := floats.MulTo(make([]float64, len(x)), x, win)
	coeffs := fft.Coefficients(nil, windowed)

	db := make([]float64, len(coeffs))
	for i, c := range coeffs {
		db[i] = dbPerDecade * math.Log10(cmplx.Abs(c)+magnitudeEpsilon)
	}
	return db
}

// BinWidth returns the frequency spacing of the spectrum in Hz.
func (s *Spectrum) BinWidth() float64 {
	return s.SampleRate / float64(s.Length)
}

// Bin returns the index of the bin nearest to freq; ties go to the lower bin.
func (s *Spectrum) Bin(freq float64) int {
	best := 0
	for i, f := range s.Freqs {
		if math.Abs(f-freq) < math.Abs(s.Freqs[best]-freq) {
			best = i
		}
	}
	return best
}

// Normalized returns copies of both traces referenced per mode. passTone is
// only used by NormRelativeInput.
func (s *Spectrum) Normalized(mode NormMode, passTone float64) (in, out []float64) {
	in = append([]float64(nil), s.InputDB...)
	out = append([]float64(nil), s.OutputDB...)

	switch mode {
	case NormRelativeEach:
		floats.AddConst(-floats.Max(in), in)
		floats.AddConst(-floats.Max(out), out)
	case NormRelativeInput:
		ref := s.InputDB[s.Bin(passTone)]
		floats.AddConst(-ref, in)
		floats.AddConst(-ref, out)
	case NormAbsolute:
	}
	return in, out
}

// ToneGain is the measured gain at one stimulus tone.
type ToneGain struct {
	Freq     float64 // requested tone, Hz
	BinFreq  float64 // nearest bin center, Hz
	InputDB  float64
	OutputDB float64
	GainDB   float64 // output - input
}

// ToneGains reads the output-minus-input level at the bin nearest each tone.
// The difference is independent of the normalization mode.
func (s *Spectrum) ToneGains(tones []float64) []ToneGain {
	diff := floats.SubTo(make([]float64, len(s.OutputDB)), s.OutputDB, s.InputDB)

	gains := make([]ToneGain, len(tones))
	for i, tone := range tones {
		bin := s.Bin(tone)
		gains[i] = ToneGain{
			Freq:     tone,
			BinFreq:  s.Freqs[bin],
			InputDB:  s.InputDB[bin],
			OutputDB: s.OutputDB[bin],
			GainDB:   diff[bin],
		}
	}
	return gains
}
