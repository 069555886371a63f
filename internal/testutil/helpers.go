// Package testutil holds testify-based assertions shared by the coefficient,
// window and spectrum tests.
package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const dbPerDecade = 20.0

// failf reports a failure with the caller's message, if any, ahead of detail.
func failf(t *testing.T, summary, detail string, msgAndArgs ...any) bool {
	t.Helper()
	if len(msgAndArgs) > 0 {
		if format, ok := msgAndArgs[0].(string); ok {
			detail = fmt.Sprintf(format, msgAndArgs[1:]...) + ": " + detail
		}
	}
	return assert.Fail(t, summary, detail)
}

// AssertSymmetric checks s[i] == s[n-1-i] within tolerance.
func AssertSymmetric(t *testing.T, s []float64, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		if math.Abs(s[i]-s[j]) > tolerance {
			return failf(t, "not symmetric",
				fmt.Sprintf("s[%d]=%g, s[%d]=%g", i, s[i], j, s[j]), msgAndArgs...)
		}
	}
	return true
}

// AssertNoNaNOrInf checks every element is finite.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return failf(t, "non-finite value", fmt.Sprintf("s[%d]=%v", i, v), msgAndArgs...)
		}
	}
	return true
}

// AssertAllInRange checks every element lies in [lo, hi].
func AssertAllInRange(t *testing.T, s []float64, lo, hi float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v < lo || v > hi {
			return failf(t, "value out of range",
				fmt.Sprintf("s[%d]=%g not in [%g, %g]", i, v, lo, hi), msgAndArgs...)
		}
	}
	return true
}

// AssertGainDB checks that gotDB equals the linear amplitude ratio wantRatio
// expressed in dB.
func AssertGainDB(t *testing.T, wantRatio, gotDB, toleranceDB float64, msgAndArgs ...any) bool {
	t.Helper()
	return assert.InDelta(t, dbPerDecade*math.Log10(wantRatio), gotDB, toleranceDB, msgAndArgs...)
}

// AssertMonotonic checks s is non-decreasing.
func AssertMonotonic(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i := 1; i < len(s); i++ {
		if s[i] < s[i-1] {
			return failf(t, "not monotonic",
				fmt.Sprintf("s[%d]=%g < s[%d]=%g", i, s[i], i-1, s[i-1]), msgAndArgs...)
		}
	}
	return true
}

// AssertCenterIsMax checks no element exceeds s[len(s)/2].
func AssertCenterIsMax(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	if len(s) == 0 {
		return failf(t, "empty slice", "no center element", msgAndArgs...)
	}
	mid := len(s) / 2
	for i, v := range s {
		if v > s[mid] {
			return failf(t, "center is not the peak",
				fmt.Sprintf("s[%d]=%g > s[%d]=%g", i, v, mid, s[mid]), msgAndArgs...)
		}
	}
	return true
}

// AssertRelativeError checks |actual-expected|/|expected| <= tolerance,
// falling back to an absolute check when expected is zero.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	rel := math.Abs(actual-expected) / math.Abs(expected)
	if rel > tolerance {
		return failf(t, "relative error too large",
			fmt.Sprintf("expected %g, got %g (rel %.3e > %.3e)", expected, actual, rel, tolerance), msgAndArgs...)
	}
	return true
}
