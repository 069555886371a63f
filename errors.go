package designer

import (
	"fmt"

	"github.com/tphakala/go-biquad-designer/internal/filter"
)

// ErrParameterRange indicates a FilterSpec value outside its valid range,
// or a spec whose design is numerically unstable.
var ErrParameterRange = filter.ErrParameterRange

// ParameterRangeError reports the FilterSpec field that made the design
// invalid. It matches ErrParameterRange under errors.Is.
type ParameterRangeError struct {
	Param  string
	Value  float64
	Reason string
}

func (e *ParameterRangeError) Error() string {
	return fmt.Sprintf("%s: %s = %v: %s", ErrParameterRange, e.Param, e.Value, e.Reason)
}

// Is reports whether target is ErrParameterRange.
func (e *ParameterRangeError) Is(target error) bool {
	return target == ErrParameterRange
}

// WarningKind classifies a non-fatal design condition.
type WarningKind int

const (
	// WarningSaturation: a quantized coefficient was clamped to the word range.
	WarningSaturation WarningKind = iota

	// WarningDegenerateGain: the center gain was zero, so the unity-gain
	// rescale was skipped.
	WarningDegenerateGain
)

func (k WarningKind) String() string {
	switch k {
	case WarningSaturation:
		return "saturation"
	case WarningDegenerateGain:
		return "degenerate gain"
	default:
		return fmt.Sprintf("WarningKind(%d)", int(k))
	}
}

// Warning is a non-fatal diagnostic attached to a Result.
type Warning struct {
	Kind WarningKind

	// Coefficient names the affected coefficient (e.g. "A1_Q14"); empty when
	// the warning concerns the whole design.
	Coefficient string

	Message string
}

func (w Warning) String() string {
	if w.Coefficient == "" {
		return fmt.Sprintf("warning (%s): %s", w.Kind, w.Message)
	}
	return fmt.Sprintf("warning (%s) %s: %s", w.Kind, w.Coefficient, w.Message)
}
