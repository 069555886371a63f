// Package mathutil provides numeric helpers for window design and stimulus timing.
package mathutil

import "math"

var (
	// I0 fit for |x| < 3.75 in powers of (x/3.75)²
	i0Small = [...]float64{
		1, besselI0Coeff1, besselI0Coeff2, besselI0Coeff3,
		besselI0Coeff4, besselI0Coeff5, besselI0Coeff6,
	}
	// I0 fit for |x| >= 3.75 in powers of 3.75/|x|, scaled by e^|x|/sqrt(|x|)
	i0Large = [...]float64{
		besselI0AsympCoeff0, besselI0AsympCoeff1, besselI0AsympCoeff2,
		besselI0AsympCoeff3, besselI0AsympCoeff4, besselI0AsympCoeff5,
		besselI0AsympCoeff6, besselI0AsympCoeff7, besselI0AsympCoeff8,
	}
)

// horner evaluates c[0] + c[1]·t + c[2]·t² + ...
func horner(c []float64, t float64) float64 {
	sum := 0.0
	for i := len(c) - 1; i >= 0; i-- {
		sum = sum*t + c[i]
	}
	return sum
}

// BesselI0 returns the zeroth-order modified Bessel function of the first
// kind, accurate to about 2e-7 relative. I0 is even, so only |x| matters.
func BesselI0(x float64) float64 {
	ax := math.Abs(x)
	if ax < besselSmallArgThreshold {
		r := ax / besselSmallArgThreshold
		return horner(i0Small[:], r*r)
	}
	return math.Exp(ax) / math.Sqrt(ax) * horner(i0Large[:], besselSmallArgThreshold/ax)
}

// KaiserBeta maps a sidelobe attenuation in dB to the Kaiser β:
//
//	att > 50:        0.1102·(att - 8.7)
//	21 <= att <= 50: 0.5842·(att - 21)^0.4 + 0.07886·(att - 21)
//	att < 21:        0
func KaiserBeta(attenuation float64) float64 {
	switch {
	case attenuation > kaiserAttHigh:
		return kaiserBetaHighCoeff1 * (attenuation - kaiserBetaHighOffset)
	case attenuation >= kaiserAttMedium:
		d := attenuation - kaiserAttMedium
		return kaiserBetaMediumCoeff1*math.Pow(d, kaiserBetaMediumPower) + kaiserBetaMediumCoeff2*d
	default:
		return 0
	}
}
