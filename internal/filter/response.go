package filter

import (
	"math"
	"math/cmplx"
)

const (
	// minMagnitude avoids log(0) in MagnitudeDB
	minMagnitude = 1e-10
	dbMultiplier = 20.0

	defaultResponsePoints = 512

	// quadratic root constants
	quadraticTwo  = 2.0
	quadraticFour = 4.0
)

// Response evaluates H(e^jw) for normalized coefficients:
//
//	H = (b0 + b1·z⁻¹ + b2·z⁻²) / (1 + a1·z⁻¹ + a2·z⁻²),  z⁻¹ = e^(-jw)
func Response(c Coefficients, omega float64) complex128 {
	z1 := cmplx.Exp(complex(0, -omega))
	z2 := cmplx.Exp(complex(0, -quadraticTwo*omega))

	num := complex(c.B0, 0) + complex(c.B1, 0)*z1 + complex(c.B2, 0)*z2
	den := complex(1, 0) + complex(c.A1, 0)*z1 + complex(c.A2, 0)*z2
	return num / den
}

// Magnitude returns |H(e^jw)|.
func Magnitude(c Coefficients, omega float64) float64 {
	return cmplx.Abs(Response(c, omega))
}

// MagnitudeDB converts linear magnitude to decibels.
func MagnitudeDB(magnitude float64) float64 {
	if magnitude < minMagnitude {
		magnitude = minMagnitude
	}
	return dbMultiplier * math.Log10(magnitude)
}

// Poles returns the roots of z² + a1·z + a2.
func Poles(c Coefficients) [2]complex128 {
	disc := cmplx.Sqrt(complex(c.A1*c.A1-quadraticFour*c.A2, 0))
	b := complex(c.A1, 0)
	return [2]complex128{
		(-b + disc) / quadraticTwo,
		(-b - disc) / quadraticTwo,
	}
}

// PoleRadius returns the largest pole magnitude.
func PoleRadius(c Coefficients) float64 {
	p := Poles(c)
	return math.Max(cmplx.Abs(p[0]), cmplx.Abs(p[1]))
}

// IsStable reports whether both poles lie strictly inside the unit circle.
// The |a2| < 1 and |a1| < 1 + a2 triangle conditions must agree with the
// pole radius; either failing marks the section unstable.
func IsStable(c Coefficients) bool {
	if math.Abs(c.A2) >= 1 || math.Abs(c.A1) >= 1+c.A2 {
		return false
	}
	return PoleRadius(c) < 1
}

// FilterResponse is H sampled on a uniform grid below Nyquist.
type FilterResponse struct {
	Frequencies []float64 // Hz
	Magnitude   []float64 // |H|, linear
	Phase       []float64 // arg H, radians
}

// ComputeFrequencyResponse samples H at numPoints frequencies from DC up to
// (but excluding) Nyquist.
func ComputeFrequencyResponse(c Coefficients, sampleRate float64, numPoints int) FilterResponse {
	if numPoints <= 0 {
		numPoints = defaultResponsePoints
	}

	response := FilterResponse{
		Frequencies: make([]float64, numPoints),
		Magnitude:   make([]float64, numPoints),
		Phase:       make([]float64, numPoints),
	}

	for k := range numPoints {
		freq := float64(k) * sampleRate / (nyquistDivisor * float64(numPoints))
		h := Response(c, CenterOmega(sampleRate, freq))

		response.Frequencies[k] = freq
		response.Magnitude[k] = cmplx.Abs(h)
		response.Phase[k] = cmplx.Phase(h)
	}

	return response
}
