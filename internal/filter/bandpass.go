// Package filter provides the bandpass biquad design stages: the RBJ
// prototype deriver, the a0 normalizer and the unity-gain rescale.
package filter

import (
	"errors"
	"fmt"
	"math"
)

const (
	// RBJ cookbook factors
	radiansPerCycle = 2.0 * math.Pi
	alphaDivisor    = 2.0
	cosineFactor    = -2.0

	// nyquistDivisor gives the Nyquist frequency as fs / nyquistDivisor
	nyquistDivisor = 2.0
)

// ErrParameterRange indicates a design parameter outside its valid range.
var ErrParameterRange = errors.New("parameter out of range")

// AnalogCoefficients holds the un-normalized biquad taps.
type AnalogCoefficients struct {
	B0, B1, B2 float64
	A0, A1, A2 float64
}

// Coefficients holds biquad taps normalized so that a0 = 1.
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// Taps returns the coefficients in B0, B1, B2, A1, A2 order.
func (c Coefficients) Taps() []float64 {
	return []float64{c.B0, c.B1, c.B2, c.A1, c.A2}
}

// CenterOmega returns the center frequency in radians per sample.
func CenterOmega(sampleRate, centerFreq float64) float64 {
	return radiansPerCycle * centerFreq / sampleRate
}

// CheckRange validates the bandpass design inputs.
//
// It returns nil when fs > 0, 0 < f0 < fs/2 and q > 0, all finite.
func CheckRange(sampleRate, centerFreq, q float64) error {
	switch {
	case math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) || sampleRate <= 0:
		return fmt.Errorf("%w: sample rate %v must be positive and finite", ErrParameterRange, sampleRate)
	case math.IsNaN(centerFreq) || math.IsInf(centerFreq, 0) || centerFreq <= 0:
		return fmt.Errorf("%w: center frequency %v must be positive and finite", ErrParameterRange, centerFreq)
	case centerFreq >= sampleRate/nyquistDivisor:
		return fmt.Errorf("%w: center frequency %v must be below Nyquist (%v)",
			ErrParameterRange, centerFreq, sampleRate/nyquistDivisor)
	case math.IsNaN(q) || math.IsInf(q, 0) || q <= 0:
		return fmt.Errorf("%w: Q %v must be positive and finite", ErrParameterRange, q)
	}
	return nil
}

// Derive computes the constant-skirt-gain bandpass prototype from the
// Audio EQ Cookbook (b0 = alpha form):
//
//	w0    = 2π·f0/fs
//	alpha = sin(w0) / (2·Q)
//	b0 =  alpha      a0 = 1 + alpha
//	b1 =  0          a1 = -2·cos(w0)
//	b2 = -alpha      a2 = 1 - alpha
//
// b1 is exactly zero, placing the zeros at DC and Nyquist.
func Derive(sampleRate, centerFreq, q float64) (AnalogCoefficients, error) {
	if err := CheckRange(sampleRate, centerFreq, q); err != nil {
		return AnalogCoefficients{}, err
	}

	w0 := CenterOmega(sampleRate, centerFreq)
	alpha := math.Sin(w0) / (alphaDivisor * q)

	return AnalogCoefficients{
		B0: alpha,
		B1: 0,
		B2: -alpha,
		A0: 1 + alpha,
		A1: cosineFactor * math.Cos(w0),
		A2: 1 - alpha,
	}, nil
}

// Normalize divides every tap by a0.
func Normalize(ac AnalogCoefficients) (Coefficients, error) {
	if ac.A0 == 0 {
		return Coefficients{}, fmt.Errorf("%w: a0 is zero", ErrParameterRange)
	}
	return Coefficients{
		B0: ac.B0 / ac.A0,
		B1: ac.B1 / ac.A0,
		B2: ac.B2 / ac.A0,
		A1: ac.A1 / ac.A0,
		A2: ac.A2 / ac.A0,
	}, nil
}

// UnityGainAt rescales the numerator so that |H(e^jw)| = 1 at omega.
//
// The poles are left untouched. It returns the gain measured before the
// rescale and whether the rescale was applied; a zero gain skips it.
func UnityGainAt(c Coefficients, omega float64) (Coefficients, float64, bool) {
	g := Magnitude(c, omega)
	if g == 0 {
		return c, g, false
	}
	c.B0 /= g
	c.B1 /= g
	c.B2 /= g
	return c, g, true
}
