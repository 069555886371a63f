package designer

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-biquad-designer/internal/filter"
	"github.com/tphakala/go-biquad-designer/internal/fixedpoint"
	"github.com/tphakala/go-biquad-designer/internal/testutil"
)

const (
	refSampleRate = 1_000_000.0
	refCenterFreq = 30_000.0
	refQ          = 3.0

	unityTolerance = 1e-9
	coeffTolerance = 1e-12
	q14LSB         = 1.0 / 16384.0
)

func referenceResult(t *testing.T) *Result {
	t.Helper()
	spec, err := NewFilterSpec(refSampleRate, refCenterFreq, refQ, true)
	require.NoError(t, err)
	res, err := Design(spec)
	require.NoError(t, err)
	return res
}

func TestNewFilterSpec_Valid(t *testing.T) {
	spec, err := NewFilterSpec(refSampleRate, refCenterFreq, refQ, true)
	require.NoError(t, err)

	assert.InDelta(t, refSampleRate, spec.SampleRate(), 0)
	assert.InDelta(t, refCenterFreq, spec.CenterFreq(), 0)
	assert.InDelta(t, refQ, spec.Q(), 0)
	assert.True(t, spec.ForceUnityGainAtCenter())
	assert.InDelta(t, 2*math.Pi*0.03, spec.Omega(), coeffTolerance)
}

func TestNewFilterSpec_ParameterRange(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate float64
		centerFreq float64
		q          float64
		param      string
	}{
		{"center at nyquist", refSampleRate, refSampleRate / 2, refQ, "center frequency"},
		{"center above nyquist", refSampleRate, 750_000, refQ, "center frequency"},
		{"zero center", refSampleRate, 0, refQ, "center frequency"},
		{"zero q", refSampleRate, refCenterFreq, 0, "Q"},
		{"negative q", refSampleRate, refCenterFreq, -1, "Q"},
		{"nan q", refSampleRate, refCenterFreq, math.NaN(), "Q"},
		{"zero sample rate", 0, refCenterFreq, refQ, "sample rate"},
		{"negative sample rate", -1, refCenterFreq, refQ, "sample rate"},
		{"infinite sample rate", math.Inf(1), refCenterFreq, refQ, "sample rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFilterSpec(tt.sampleRate, tt.centerFreq, tt.q, true)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrParameterRange)

			var rangeErr *ParameterRangeError
			require.True(t, errors.As(err, &rangeErr))
			assert.Equal(t, tt.param, rangeErr.Param)
			assert.Contains(t, err.Error(), tt.param)
		})
	}
}

func TestConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	res, err := DesignFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, referenceResult(t).Quantized, res.Quantized)

	cfg.CenterFreq = cfg.SampleRate
	assert.ErrorIs(t, cfg.Validate(), ErrParameterRange)
	_, err = DesignFromConfig(cfg)
	assert.ErrorIs(t, err, ErrParameterRange)
}

func TestDesign_ZeroSpecRejected(t *testing.T) {
	_, err := Design(FilterSpec{})
	assert.ErrorIs(t, err, ErrParameterRange)
}

func TestDesign_ReferenceUnityGain(t *testing.T) {
	res := referenceResult(t)
	w0 := 2 * math.Pi * refCenterFreq / refSampleRate

	assert.True(t, res.UnityApplied)
	assert.InDelta(t, 1.0, filter.Magnitude(res.Normalized, w0), unityTolerance)

	// prototype a1 is exactly -2cos(w0); the normalized value carries 1/a0
	assert.InDelta(t, -2*math.Cos(w0), res.Analog.A1, coeffTolerance)
	assert.InDelta(t, res.Analog.A1/res.Analog.A0, res.Normalized.A1, coeffTolerance)

	assert.Zero(t, res.Analog.B1)
	assert.Zero(t, res.Normalized.B1)
	assert.Empty(t, res.Warnings)
	assert.False(t, res.Saturated())
}

func TestDesign_ReferenceQuantized(t *testing.T) {
	res := referenceResult(t)

	assert.Equal(t, QuantizedCoefficients{B0: 496, B1: 0, B2: -496, A1: -31213, A2: 15392}, res.Quantized)
}

func TestDesign_KnownDesigns(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate float64
		centerFreq float64
		q          float64
		want       QuantizedCoefficients
	}{
		{"audio 1k", 48000, 1000, 0.707, QuantizedCoefficients{B0: 1385, B1: 0, B2: -1385, A1: -29742, A2: 13615}},
		{"narrow 30k", refSampleRate, refCenterFreq, 30, QuantizedCoefficients{B0: 51, B1: 0, B2: -51, A1: -32087, A2: 16282}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := NewFilterSpec(tt.sampleRate, tt.centerFreq, tt.q, true)
			require.NoError(t, err)
			res, err := Design(spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Quantized)
		})
	}
}

func TestDesign_WithoutUnityGain(t *testing.T) {
	spec, err := NewFilterSpec(refSampleRate, refCenterFreq, refQ, false)
	require.NoError(t, err)
	res, err := Design(spec)
	require.NoError(t, err)

	assert.False(t, res.UnityApplied)
	assert.InDelta(t, res.Analog.B0/res.Analog.A0, res.Normalized.B0, 0)
	assert.InDelta(t, res.CenterGain, filter.Magnitude(res.Normalized, spec.Omega()), 0)
}

func TestDesign_Idempotent(t *testing.T) {
	first := referenceResult(t)
	second := referenceResult(t)

	assert.Equal(t, first.Quantized, second.Quantized)
	assert.Equal(t, first.Normalized, second.Normalized)
	assert.Equal(t, first.Diagnostics, second.Diagnostics)
}

func TestDesign_StableAndWithinOneLSB(t *testing.T) {
	for _, fs := range []float64{48000, 192000, refSampleRate} {
		for _, frac := range []float64{0.001, 0.03, 0.1, 0.3, 0.45} {
			for _, q := range []float64{0.3, 0.707, 3, 20} {
				spec, err := NewFilterSpec(fs, frac*fs, q, true)
				require.NoError(t, err)
				res, err := Design(spec)
				require.NoError(t, err)

				assert.True(t, res.Stable(), "fs=%v f0=%v q=%v", fs, frac*fs, q)
				assert.Less(t, res.PoleRadius, 1.0)
				assert.False(t, res.Saturated(), "fs=%v f0=%v q=%v", fs, frac*fs, q)

				errs := make([]float64, 0, numCoefficients)
				for _, d := range res.Diagnostics {
					assert.LessOrEqual(t, math.Abs(d.Error), q14LSB, "%s", d.Name)
					errs = append(errs, d.Error)
				}
				testutil.AssertNoNaNOrInf(t, errs)
			}
		}
	}
}

func TestDesign_RejectsRoundingInstability(t *testing.T) {
	tests := []struct {
		name       string
		centerFreq float64
		q          float64
		param      string
	}{
		// alpha vanishes next to 1, so a2 rounds to exactly 1
		{"extreme q", refCenterFreq, 1e17, "Q"},
		// cos(w0) rounds to 1: double pole at z = 1
		{"center near dc", 1e-12, refQ, "center frequency"},
		// cos(w0) rounds to 1 with a2 < 1: one pole at z = 1
		{"center at 1 mHz", 1e-3, refQ, "center frequency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := NewFilterSpec(refSampleRate, tt.centerFreq, tt.q, true)
			require.NoError(t, err)

			res, err := Design(spec)
			require.ErrorIs(t, err, ErrParameterRange)
			assert.Nil(t, res)

			var rangeErr *ParameterRangeError
			require.True(t, errors.As(err, &rangeErr))
			assert.Equal(t, tt.param, rangeErr.Param)
			assert.Contains(t, err.Error(), "numerically unstable")
		})
	}
}

func TestDesign_HighQStaysStable(t *testing.T) {
	spec, err := NewFilterSpec(refSampleRate, refCenterFreq, 1e6, true)
	require.NoError(t, err)

	res, err := Design(spec)
	require.NoError(t, err)
	assert.True(t, res.Stable())
	assert.Less(t, res.PoleRadius, 1.0)
}

func TestResult_SaturationWarning(t *testing.T) {
	res := &Result{Normalized: NormalizedCoefficients{B0: 2.0, B1: 0, B2: -2.0, A1: -2.5, A2: 0.9}}
	res.quantize()

	assert.Equal(t, int16(32767), res.Quantized.B0)
	assert.Equal(t, int16(-32768), res.Quantized.B2)
	assert.Equal(t, int16(-32768), res.Quantized.A1)
	assert.True(t, res.Saturated())

	require.Len(t, res.Warnings, 2, "B0 and A1 saturate; -2.0 is representable")
	assert.Equal(t, WarningSaturation, res.Warnings[0].Kind)
	assert.Equal(t, "B0_Q14", res.Warnings[0].Coefficient)
	assert.Equal(t, "A1_Q14", res.Warnings[1].Coefficient)
	assert.Contains(t, res.Warnings[0].String(), "clamped to 32767")

	assert.True(t, res.Diagnostics[coeffB0].Saturated)
	assert.False(t, res.Diagnostics[coeffB2].Saturated)
	assert.True(t, res.Diagnostics[coeffA1].Saturated)
}

func TestResult_DegenerateGainWarning(t *testing.T) {
	spec, err := NewFilterSpec(refSampleRate, refCenterFreq, refQ, true)
	require.NoError(t, err)

	res := &Result{Spec: spec}
	zeroNumerator := NormalizedCoefficients{A1: -1.9, A2: 0.94}
	res.setNormalized(zeroNumerator)

	assert.False(t, res.UnityApplied)
	assert.Zero(t, res.CenterGain)
	assert.Equal(t, zeroNumerator, res.Normalized)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, WarningDegenerateGain, res.Warnings[0].Kind)
	assert.Empty(t, res.Warnings[0].Coefficient)
}

func TestResult_Dequantized(t *testing.T) {
	res := referenceResult(t)
	dq := res.Dequantized()

	assert.InDelta(t, 496*q14LSB, dq.B0, 0)
	assert.InDelta(t, -31213*q14LSB, dq.A1, 0)
	for i, tap := range dq.Taps() {
		assert.InDelta(t, res.Normalized.Taps()[i], tap, q14LSB/2)
	}
	assert.True(t, res.QuantizedStable())
}

func TestResult_GainDB(t *testing.T) {
	res := referenceResult(t)

	floatDB, qDB := res.GainDB(refCenterFreq)
	assert.InDelta(t, 0.0, floatDB, 1e-8)
	assert.InDelta(t, 0.0, qDB, 0.1, "Q14 rounding moves the center gain only slightly")

	// a Q=3 bandpass rejects a tone an octave away
	offDB, _ := res.GainDB(2 * refCenterFreq)
	assert.Less(t, offDB, -6.0)
}

func TestResult_FrequencyResponse(t *testing.T) {
	res := referenceResult(t)

	const points = 100
	resp := res.FrequencyResponse(points, false)
	require.Len(t, resp.Frequencies, points)
	testutil.AssertMonotonic(t, resp.Frequencies)
	testutil.AssertNoNaNOrInf(t, resp.Magnitude)

	// bins are fs/200 = 5 kHz apart, so bin 6 is the center
	assert.InDelta(t, refCenterFreq, resp.Frequencies[6], 1e-9)
	assert.InDelta(t, 1.0, resp.Magnitude[6], unityTolerance)
	assert.Zero(t, resp.Magnitude[0], "bandpass rejects DC")
	testutil.AssertAllInRange(t, resp.Magnitude, 0, 1+unityTolerance)

	q := res.FrequencyResponse(points, true)
	assert.InDelta(t, 1.0, q.Magnitude[6], 1e-3)
	assert.Len(t, res.FrequencyResponse(0, true).Frequencies, 512)
}

func TestWarningKind_String(t *testing.T) {
	assert.Equal(t, "saturation", WarningSaturation.String())
	assert.Equal(t, "degenerate gain", WarningDegenerateGain.String())
	assert.Equal(t, "WarningKind(7)", WarningKind(7).String())
}

func TestFormat_Q14Consistency(t *testing.T) {
	assert.Equal(t, int64(-32768), fixedpoint.Q14.Min())
	assert.Equal(t, int64(32767), fixedpoint.Q14.Max())
}

func BenchmarkDesign(b *testing.B) {
	spec, err := NewFilterSpec(refSampleRate, refCenterFreq, refQ, true)
	if err != nil {
		b.Fatal(err)
	}
	for b.Loop() {
		_, _ = Design(spec)
	}
}
