package filter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-biquad-designer/internal/testutil"
)

const (
	// Reference design: 1 MHz sample rate, 30 kHz center, Q = 3
	refSampleRate = 1_000_000.0
	refCenterFreq = 30_000.0
	refQ          = 3.0

	unityTolerance = 1e-9
	coeffTolerance = 1e-12
)

func TestDerive_ReferenceDesign(t *testing.T) {
	ac, err := Derive(refSampleRate, refCenterFreq, refQ)
	require.NoError(t, err)

	w0 := 2 * math.Pi * refCenterFreq / refSampleRate
	alpha := math.Sin(w0) / (2 * refQ)

	assert.InDelta(t, alpha, ac.B0, coeffTolerance)
	assert.Zero(t, ac.B1, "b1 must be exactly zero")
	assert.InDelta(t, -alpha, ac.B2, coeffTolerance)
	assert.InDelta(t, 1+alpha, ac.A0, coeffTolerance)
	assert.InDelta(t, -2*math.Cos(w0), ac.A1, coeffTolerance)
	assert.InDelta(t, 1-alpha, ac.A2, coeffTolerance)
	assert.NotZero(t, ac.A0)
}

func TestCheckRange(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate float64
		centerFreq float64
		q          float64
		wantErr    bool
	}{
		{"valid reference", refSampleRate, refCenterFreq, refQ, false},
		{"valid just below nyquist", 48000, 23999, 0.707, false},
		{"valid tiny q", 48000, 1000, 1e-3, false},
		{"center at nyquist", refSampleRate, refSampleRate / 2, refQ, true},
		{"center above nyquist", refSampleRate, 600_000, refQ, true},
		{"zero center", refSampleRate, 0, refQ, true},
		{"negative center", refSampleRate, -1000, refQ, true},
		{"zero q", refSampleRate, refCenterFreq, 0, true},
		{"negative q", refSampleRate, refCenterFreq, -3, true},
		{"zero sample rate", 0, refCenterFreq, refQ, true},
		{"negative sample rate", -48000, refCenterFreq, refQ, true},
		{"nan q", refSampleRate, refCenterFreq, math.NaN(), true},
		{"inf q", refSampleRate, refCenterFreq, math.Inf(1), true},
		{"inf sample rate", math.Inf(1), refCenterFreq, refQ, true},
		{"nan center", refSampleRate, math.NaN(), refQ, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckRange(tt.sampleRate, tt.centerFreq, tt.q)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrParameterRange)

				_, derr := Derive(tt.sampleRate, tt.centerFreq, tt.q)
				assert.ErrorIs(t, derr, ErrParameterRange)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	ac, err := Derive(refSampleRate, refCenterFreq, refQ)
	require.NoError(t, err)

	c, err := Normalize(ac)
	require.NoError(t, err)

	assert.InDelta(t, ac.B0/ac.A0, c.B0, coeffTolerance)
	assert.Zero(t, c.B1)
	assert.InDelta(t, ac.B2/ac.A0, c.B2, coeffTolerance)
	assert.InDelta(t, ac.A1/ac.A0, c.A1, coeffTolerance)
	assert.InDelta(t, ac.A2/ac.A0, c.A2, coeffTolerance)

	// Reference design values
	assert.InDelta(t, -1.9050784830340606, c.A1, coeffTolerance)
	assert.InDelta(t, 0.939431140555697, c.A2, coeffTolerance)
}

func TestNormalize_ZeroA0(t *testing.T) {
	_, err := Normalize(AnalogCoefficients{B0: 1, A0: 0})
	assert.ErrorIs(t, err, ErrParameterRange)
}

func TestUnityGainAt_ReferenceDesign(t *testing.T) {
	ac, err := Derive(refSampleRate, refCenterFreq, refQ)
	require.NoError(t, err)
	c, err := Normalize(ac)
	require.NoError(t, err)

	w0 := CenterOmega(refSampleRate, refCenterFreq)
	scaled, g, applied := UnityGainAt(c, w0)

	assert.True(t, applied)
	assert.InDelta(t, 1.0, g, 1e-6, "b0=alpha bandpass already peaks near unity")
	assert.InDelta(t, 1.0, Magnitude(scaled, w0), unityTolerance)

	// Poles untouched
	assert.Equal(t, c.A1, scaled.A1)
	assert.Equal(t, c.A2, scaled.A2)
	assert.Zero(t, scaled.B1)

	// a1 is -2cos(w0) divided by a0
	assert.InDelta(t, -2*math.Cos(w0)/(1+math.Sin(w0)/(2*refQ)), scaled.A1, coeffTolerance)
}

func TestUnityGainAt_RescalesArbitraryGain(t *testing.T) {
	c := Coefficients{B0: 0.5, B1: 0.1, B2: -0.3, A1: -1.2, A2: 0.5}
	omega := 0.7

	scaled, g, applied := UnityGainAt(c, omega)
	require.True(t, applied)
	assert.InDelta(t, Magnitude(c, omega), g, 0)
	assert.InDelta(t, 1.0, Magnitude(scaled, omega), unityTolerance)
	assert.InDelta(t, c.B1/g, scaled.B1, coeffTolerance)
}

func TestUnityGainAt_ZeroGainSkipped(t *testing.T) {
	c := Coefficients{A1: -1.2, A2: 0.5}

	scaled, g, applied := UnityGainAt(c, 0.3)
	assert.False(t, applied)
	assert.Zero(t, g)
	assert.Equal(t, c, scaled)
	testutil.AssertNoNaNOrInf(t, scaled.Taps())
}

func TestDerive_StableAcrossParameterSpace(t *testing.T) {
	sampleRates := []float64{8000, 48000, 192000, refSampleRate}
	fractions := []float64{1e-4, 0.01, 0.1, 0.25, 0.4, 0.49, 0.4999}
	qs := []float64{0.01, 0.1, 0.5, 0.707, 1, 3, 10, 100, 1000}

	for _, fs := range sampleRates {
		for _, frac := range fractions {
			for _, q := range qs {
				ac, err := Derive(fs, frac*fs, q)
				require.NoError(t, err)
				c, err := Normalize(ac)
				require.NoError(t, err)
				c, _, _ = UnityGainAt(c, CenterOmega(fs, frac*fs))

				assert.Less(t, math.Abs(c.A2), 1.0, "fs=%v f0=%v q=%v", fs, frac*fs, q)
				assert.True(t, IsStable(c), "fs=%v f0=%v q=%v radius=%v", fs, frac*fs, q, PoleRadius(c))
				testutil.AssertNoNaNOrInf(t, c.Taps())
			}
		}
	}
}

func BenchmarkDerive(b *testing.B) {
	for b.Loop() {
		ac, _ := Derive(refSampleRate, refCenterFreq, refQ)
		_, _ = Normalize(ac)
	}
}
