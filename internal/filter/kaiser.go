package filter

import (
	"math"

	"github.com/tphakala/go-biquad-designer/internal/mathutil"
)

// KaiserWindow returns the symmetric length-point Kaiser window
//
//	w[n] = I0(β·sqrt(1 - ((n-m)/m)²)) / I0(β),  m = (length-1)/2
//
// whose center sample is 1 and whose ends are 1/I0(β). β = 0 gives a
// rectangular window. A non-positive length yields an empty window.
func KaiserWindow(length int, beta float64) []float64 {
	if length < 1 {
		return []float64{}
	}
	w := make([]float64, length)
	if length == 1 {
		w[0] = 1
		return w
	}

	mid := float64(length-1) / 2
	norm := 1 / mathutil.BesselI0(beta)
	for n := range w {
		r := (float64(n) - mid) / mid
		w[n] = mathutil.BesselI0(beta*math.Sqrt(math.Max(0, 1-r*r))) * norm
	}
	return w
}

// KaiserWindowForAttenuation builds the Kaiser window whose sidelobes sit
// near -attenuation dB. The analyzer uses it when Hann sidelobes would mask
// the stopband tones of a narrow design.
func KaiserWindowForAttenuation(length int, attenuation float64) []float64 {
	return KaiserWindow(length, mathutil.KaiserBeta(attenuation))
}
