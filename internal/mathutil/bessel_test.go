package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tphakala/go-biquad-designer/internal/testutil"
)

// Reference values from the power series sum((x/2)^2k / (k!)^2).
func TestBesselI0_Series(t *testing.T) {
	tests := []struct {
		x    float64
		want float64
	}{
		{0, 1},
		{0.5, 1.0634833707413236},
		{2, 2.279585302336067},
		{3.75, 9.118945860844565}, // polynomial switch point
		{6, 67.23440697647796},
		{12, 18948.925349296307},
	}

	for _, tt := range tests {
		got := BesselI0(tt.x)
		testutil.AssertRelativeError(t, tt.want, got, 1e-6, "I0(%v)", tt.x)
		assert.InDelta(t, got, BesselI0(-tt.x), 1e-12*got, "I0 must be even at %v", tt.x)
	}
}

func TestBesselI0_GrowsWithArgument(t *testing.T) {
	xs := []float64{0, 1, 3, 3.7499, 3.75, 5, 8, 15, 30}
	vals := make([]float64, len(xs))
	for i, x := range xs {
		vals[i] = BesselI0(x)
	}
	testutil.AssertMonotonic(t, vals)
	testutil.AssertNoNaNOrInf(t, vals)
}

func TestKaiserBeta(t *testing.T) {
	tests := []struct {
		name  string
		attDB float64
		want  float64
	}{
		{"analyzer default", 100, 10.06126},
		{"above 50 dB", 60, 5.65326},
		{"transition band", 40, 0.5842*math.Pow(19, 0.4) + 0.07886*19},
		{"lower edge", 21, 0},
		{"below 21 dB", 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, KaiserBeta(tt.attDB), 1e-9)
		})
	}
}

func TestKaiserBeta_IncreasesWithAttenuation(t *testing.T) {
	prev := KaiserBeta(21)
	for att := 25.0; att <= 140; att += 5 {
		beta := KaiserBeta(att)
		assert.Greater(t, beta, prev, "beta at %v dB", att)
		prev = beta
	}
}
