// Package fixedpoint converts filter coefficients to signed fixed-point
// integers for hardware parameter lists.
package fixedpoint

import (
	"fmt"
	"math"
)

const (
	// Q14 in a signed 16-bit word: 1 sign bit, 1 integer bit, 14 fraction bits.
	DefaultFracBits = 14
	DefaultWidth    = 16

	maxWidth = 32
)

// Q14 is the coefficient format of the hardware biquad.
var Q14 = Format{FracBits: DefaultFracBits, Width: DefaultWidth}

// Format describes a signed fixed-point encoding.
type Format struct {
	// FracBits is the number of fractional bits; value = integer / 2^FracBits
	FracBits int

	// Width is the total word width in bits, sign included
	Width int
}

// Validate checks that the format fits an int64 word.
func (f Format) Validate() error {
	if f.Width < 2 || f.Width > maxWidth {
		return fmt.Errorf("invalid fixed-point width %d (must be 2-%d)", f.Width, maxWidth)
	}
	if f.FracBits < 0 || f.FracBits >= f.Width {
		return fmt.Errorf("invalid fractional bits %d for width %d", f.FracBits, f.Width)
	}
	return nil
}

// Scale returns 2^FracBits.
func (f Format) Scale() float64 {
	return math.Ldexp(1, f.FracBits)
}

// Min returns the most negative representable integer.
func (f Format) Min() int64 {
	return -(int64(1) << (f.Width - 1))
}

// Max returns the most positive representable integer.
func (f Format) Max() int64 {
	return int64(1)<<(f.Width-1) - 1
}

// LSB returns the real value of one least-significant bit.
func (f Format) LSB() float64 {
	return 1 / f.Scale()
}

// Sample is one quantized coefficient together with its diagnostics.
type Sample struct {
	// Ideal is the unquantized coefficient
	Ideal float64

	// Rounded is round(Ideal * 2^FracBits) before clamping
	Rounded float64

	// Value is the clamped integer that goes into hardware
	Value int64

	// Saturated reports that clamping changed the rounded value
	Saturated bool

	// Error is Ideal minus the value Value represents
	Error float64
}

// Quantize maps x to the format's integer range.
//
// Rounding is half-to-even. Values beyond the word range are clamped and
// flagged as saturated; the lower bound is inclusive, so -2.0 in Q14 is
// exactly -32768. NaN cannot be represented and yields 0, flagged saturated.
func (f Format) Quantize(x float64) Sample {
	s := Sample{Ideal: x}

	if math.IsNaN(x) {
		s.Rounded = math.NaN()
		s.Saturated = true
		s.Error = math.NaN()
		return s
	}

	s.Rounded = math.RoundToEven(x * f.Scale())

	lo, hi := float64(f.Min()), float64(f.Max())
	switch {
	case s.Rounded > hi:
		s.Value = f.Max()
		s.Saturated = true
	case s.Rounded < lo:
		s.Value = f.Min()
		s.Saturated = true
	default:
		s.Value = int64(s.Rounded)
	}

	s.Error = x - f.Dequantize(s.Value)
	return s
}

// Dequantize returns the real value of a fixed-point integer.
func (f Format) Dequantize(v int64) float64 {
	return float64(v) / f.Scale()
}

// QuantizeAll quantizes every value of xs.
func (f Format) QuantizeAll(xs []float64) []Sample {
	out := make([]Sample, len(xs))
	for i, x := range xs {
		out[i] = f.Quantize(x)
	}
	return out
}
