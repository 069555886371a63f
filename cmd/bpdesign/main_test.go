package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	designer "github.com/tphakala/go-biquad-designer"
)

func TestParseFlags_Defaults(t *testing.T) {
	opts, err := parseFlags(nil)
	require.NoError(t, err)

	assert.Equal(t, designer.DefaultConfig(), opts.cfg)
	assert.False(t, opts.diagnostics)
	assert.False(t, opts.rawSign)
	assert.Zero(t, opts.sweepPoints)
}

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-fs", "48000", "-f0", "1000", "-q", "0.707", "-unity=false", "-diag", "-sweep", "8"})
	require.NoError(t, err)

	assert.InDelta(t, 48000.0, opts.cfg.SampleRate, 0)
	assert.InDelta(t, 1000.0, opts.cfg.CenterFreq, 0)
	assert.InDelta(t, 0.707, opts.cfg.Q, 0)
	assert.False(t, opts.cfg.ForceUnityGainAtCenter)
	assert.True(t, opts.diagnostics)
	assert.Equal(t, 8, opts.sweepPoints)
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-order", "4"}},
		{"positional", []string{"extra"}},
		{"negative sweep", []string{"-sweep", "-1"}},
		{"bad number", []string{"-q", "three"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFlags(tt.args)
			assert.Error(t, err)
		})
	}
}

func TestRun_Default(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run(nil, &buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Biquad (Fs=1000000 Hz, f0=30000 Hz, Q=3):\n"))
	assert.Contains(t, out, "A1_Q14=-31213")
	assert.Contains(t, out, "parameter signed [15:0] B2_Q14 = -16'sd496;")
}

func TestRun_RawSign(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run([]string{"-raw-sign"}, &buf))
	assert.Contains(t, buf.String(), "B2_Q14 = 16'sd-496;")
}

func TestRun_Sweep(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run([]string{"-sweep", "100"}, &buf))

	out := buf.String()
	assert.Contains(t, out, "// Magnitude response (100 points)")
	// 30 kHz is bin 6 of 100 at 1 MHz
	assert.Regexp(t, `//\s+30\.000\s+-?0\.00\s+-?0\.00\n`, out)
}

func TestRun_ParameterRange(t *testing.T) {
	var buf bytes.Buffer
	err := run([]string{"-f0", "600000"}, &buf)
	require.ErrorIs(t, err, designer.ErrParameterRange)
	assert.Empty(t, buf.String(), "nothing is printed for a rejected spec")
}

func TestRun_RejectsUnstableDesign(t *testing.T) {
	var buf bytes.Buffer
	err := run([]string{"-q", "1e17"}, &buf)
	require.ErrorIs(t, err, designer.ErrParameterRange)
	assert.Contains(t, err.Error(), "numerically unstable")
	assert.NotContains(t, buf.String(), "parameter signed", "no HDL block for an unstable design")
}
