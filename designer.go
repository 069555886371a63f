package designer

import (
	"fmt"
	"math"

	"github.com/tphakala/go-biquad-designer/internal/filter"
	"github.com/tphakala/go-biquad-designer/internal/fixedpoint"
)

// AnalogCoefficients are the un-normalized prototype taps b0..b2, a0..a2.
type AnalogCoefficients = filter.AnalogCoefficients

// NormalizedCoefficients are the taps divided by a0 (a0 = 1 implicitly).
type NormalizedCoefficients = filter.Coefficients

// FrequencyResponse is a sampled magnitude and phase response.
type FrequencyResponse = filter.FilterResponse

// LiteralStyle selects how negative HDL literals are written.
type LiteralStyle = fixedpoint.LiteralStyle

// Literal styles for Result.HDLParameters.
const (
	// LiteralNegated writes -16'sd496.
	LiteralNegated = fixedpoint.LiteralNegated

	// LiteralInlineSign writes 16'sd-496, which some older tools expect.
	LiteralInlineSign = fixedpoint.LiteralInlineSign
)

// FilterSpec is a validated, immutable set of design inputs.
//
// The zero value is not valid; use NewFilterSpec.
type FilterSpec struct {
	sampleRate float64
	centerFreq float64
	q          float64
	forceUnity bool
}

// NewFilterSpec validates the design inputs.
//
// It returns a *ParameterRangeError unless sampleRate > 0,
// 0 < centerFreq < sampleRate/2 and q > 0, all finite.
func NewFilterSpec(sampleRate, centerFreq, q float64, forceUnityGainAtCenter bool) (FilterSpec, error) {
	if !isFinite(sampleRate) || sampleRate <= 0 {
		return FilterSpec{}, &ParameterRangeError{
			Param: "sample rate", Value: sampleRate, Reason: "must be positive and finite",
		}
	}
	if !isFinite(centerFreq) || centerFreq <= 0 {
		return FilterSpec{}, &ParameterRangeError{
			Param: "center frequency", Value: centerFreq, Reason: "must be positive and finite",
		}
	}
	if nyquist := sampleRate / nyquistDivisor; centerFreq >= nyquist {
		return FilterSpec{}, &ParameterRangeError{
			Param: "center frequency", Value: centerFreq,
			Reason: fmt.Sprintf("must be below Nyquist (%v Hz)", nyquist),
		}
	}
	if !isFinite(q) || q <= 0 {
		return FilterSpec{}, &ParameterRangeError{
			Param: "Q", Value: q, Reason: "must be positive and finite",
		}
	}

	return FilterSpec{
		sampleRate: sampleRate,
		centerFreq: centerFreq,
		q:          q,
		forceUnity: forceUnityGainAtCenter,
	}, nil
}

// SampleRate returns the sample rate in Hz.
func (s FilterSpec) SampleRate() float64 { return s.sampleRate }

// CenterFreq returns the center frequency in Hz.
func (s FilterSpec) CenterFreq() float64 { return s.centerFreq }

// Q returns the quality factor.
func (s FilterSpec) Q() float64 { return s.q }

// ForceUnityGainAtCenter reports whether the numerator is rescaled for
// |H(e^jw0)| = 1.
func (s FilterSpec) ForceUnityGainAtCenter() bool { return s.forceUnity }

// Omega returns the center frequency in radians per sample.
func (s FilterSpec) Omega() float64 {
	return filter.CenterOmega(s.sampleRate, s.centerFreq)
}

// Config holds plain design settings, typically filled from command-line
// flags, before validation into a FilterSpec.
type Config struct {
	SampleRate             float64
	CenterFreq             float64
	Q                      float64
	ForceUnityGainAtCenter bool
}

// DefaultConfig returns the 1 MHz / 30 kHz / Q=3 unity-gain design.
func DefaultConfig() Config {
	return Config{
		SampleRate:             DefaultSampleRate,
		CenterFreq:             DefaultCenterFreq,
		Q:                      DefaultQ,
		ForceUnityGainAtCenter: true,
	}
}

// Validate checks the configuration without building a FilterSpec.
func (c *Config) Validate() error {
	_, err := c.Spec()
	return err
}

// Spec converts the configuration into a validated FilterSpec.
func (c *Config) Spec() (FilterSpec, error) {
	return NewFilterSpec(c.SampleRate, c.CenterFreq, c.Q, c.ForceUnityGainAtCenter)
}

// QuantizedCoefficients are the Q14 integers loaded into hardware.
type QuantizedCoefficients struct {
	B0, B1, B2 int16
	A1, A2     int16
}

// Values returns the integers in B0, B1, B2, A1, A2 order.
func (q QuantizedCoefficients) Values() [numCoefficients]int16 {
	return [numCoefficients]int16{q.B0, q.B1, q.B2, q.A1, q.A2}
}

// CoefficientDiagnostic describes how one coefficient survived quantization.
type CoefficientDiagnostic struct {
	Name      string
	Ideal     float64 // normalized floating-point value
	Value     int16   // quantized value
	Error     float64 // Ideal minus the value Value represents
	Saturated bool
}

// Result holds every stage of one design run.
type Result struct {
	Spec FilterSpec

	Analog     AnalogCoefficients
	Normalized NormalizedCoefficients
	Quantized  QuantizedCoefficients

	// CenterGain is |H(e^jw0)| of the a0-normalized taps, measured before
	// any unity-gain rescale.
	CenterGain float64

	// UnityApplied reports whether the numerator was rescaled.
	UnityApplied bool

	Diagnostics [numCoefficients]CoefficientDiagnostic
	Warnings    []Warning

	// PoleRadius is the largest pole magnitude of the normalized design.
	PoleRadius float64
}

// Design runs the prototype, normalization and quantization stages. A spec
// whose float design loses stability to rounding (extreme Q, or f0 within
// rounding of DC or Nyquist) is rejected with a *ParameterRangeError.
func Design(spec FilterSpec) (*Result, error) {
	analog, err := filter.Derive(spec.sampleRate, spec.centerFreq, spec.q)
	if err != nil {
		return nil, err
	}

	normalized, err := filter.Normalize(analog)
	if err != nil {
		return nil, err
	}
	if !filter.IsStable(normalized) {
		return nil, spec.instabilityError()
	}

	res := &Result{
		Spec:   spec,
		Analog: analog,
	}

	res.setNormalized(normalized)
	res.quantize()
	return res, nil
}

// instabilityError blames the center frequency when cos(w0) has rounded to
// ±1 (f0 too close to DC or Nyquist), and Q otherwise (alpha lost next to 1).
func (s FilterSpec) instabilityError() error {
	const reason = "design is numerically unstable (pole on or outside the unit circle)"
	if math.Abs(math.Cos(s.Omega())) == 1 {
		return &ParameterRangeError{Param: "center frequency", Value: s.centerFreq, Reason: reason}
	}
	return &ParameterRangeError{Param: "Q", Value: s.q, Reason: reason}
}

// DesignFromConfig validates cfg and runs Design.
func DesignFromConfig(cfg Config) (*Result, error) {
	spec, err := cfg.Spec()
	if err != nil {
		return nil, err
	}
	return Design(spec)
}

// setNormalized stores the a0-normalized taps, applying the unity-gain
// rescale when ForceUnityGainAtCenter is set.
func (r *Result) setNormalized(c NormalizedCoefficients) {
	omega := r.Spec.Omega()

	r.CenterGain = filter.Magnitude(c, omega)
	if r.Spec.forceUnity {
		c, _, r.UnityApplied = filter.UnityGainAt(c, omega)
		if !r.UnityApplied {
			r.Warnings = append(r.Warnings, Warning{
				Kind:    WarningDegenerateGain,
				Message: "center gain is zero; unity-gain rescale skipped",
			})
		}
	}
	r.Normalized = c
	r.PoleRadius = filter.PoleRadius(c)
}

func (r *Result) quantize() {
	samples := fixedpoint.Q14.QuantizeAll(r.Normalized.Taps())

	var values [numCoefficients]int16
	for i, s := range samples {
		values[i] = int16(s.Value)
		r.Diagnostics[i] = CoefficientDiagnostic{
			Name:      coefficientNames[i],
			Ideal:     s.Ideal,
			Value:     values[i],
			Error:     s.Error,
			Saturated: s.Saturated,
		}
		if s.Saturated {
			r.Warnings = append(r.Warnings, Warning{
				Kind:        WarningSaturation,
				Coefficient: coefficientNames[i],
				Message: fmt.Sprintf("%.6f rounds to %.0f, clamped to %d",
					s.Ideal, s.Rounded, s.Value),
			})
		}
	}

	r.Quantized = QuantizedCoefficients{
		B0: values[coeffB0],
		B1: values[coeffB1],
		B2: values[coeffB2],
		A1: values[coeffA1],
		A2: values[coeffA2],
	}
}

// Saturated reports whether any coefficient was clamped.
func (r *Result) Saturated() bool {
	for _, d := range r.Diagnostics {
		if d.Saturated {
			return true
		}
	}
	return false
}

// Stable reports whether the normalized design's poles lie strictly inside
// the unit circle.
func (r *Result) Stable() bool {
	return filter.IsStable(r.Normalized)
}

// Dequantized returns the coefficients the Q14 integers actually represent.
func (r *Result) Dequantized() NormalizedCoefficients {
	q := fixedpoint.Q14
	return NormalizedCoefficients{
		B0: q.Dequantize(int64(r.Quantized.B0)),
		B1: q.Dequantize(int64(r.Quantized.B1)),
		B2: q.Dequantize(int64(r.Quantized.B2)),
		A1: q.Dequantize(int64(r.Quantized.A1)),
		A2: q.Dequantize(int64(r.Quantized.A2)),
	}
}

// QuantizedStable reports whether the Q14 coefficients are still stable.
func (r *Result) QuantizedStable() bool {
	return filter.IsStable(r.Dequantized())
}

// GainDB returns the magnitude response at freq (Hz) in dB, for both the
// floating-point design and the Q14 coefficients.
func (r *Result) GainDB(freq float64) (floatDB, quantizedDB float64) {
	omega := filter.CenterOmega(r.Spec.sampleRate, freq)
	floatDB = filter.MagnitudeDB(filter.Magnitude(r.Normalized, omega))
	quantizedDB = filter.MagnitudeDB(filter.Magnitude(r.Dequantized(), omega))
	return floatDB, quantizedDB
}

// FrequencyResponse samples the response of the float design, or of the Q14
// coefficients when quantized is set, at numPoints frequencies from DC up to
// Nyquist. numPoints <= 0 selects the default of 512.
func (r *Result) FrequencyResponse(numPoints int, quantized bool) FrequencyResponse {
	c := r.Normalized
	if quantized {
		c = r.Dequantized()
	}
	return filter.ComputeFrequencyResponse(c, r.Spec.sampleRate, numPoints)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
