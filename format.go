package designer

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tphakala/go-biquad-designer/internal/fixedpoint"
)

// ReportOptions controls Result.Report.
type ReportOptions struct {
	// Style selects the negative literal form of the HDL block.
	Style LiteralStyle

	// Diagnostics adds quantization error, stability and center gain lines.
	Diagnostics bool
}

// Header returns the design summary line, e.g.
//
//	Biquad (Fs=1000000 Hz, f0=30000 Hz, Q=3):
func (r *Result) Header() string {
	return fmt.Sprintf("Biquad (Fs=%s Hz, f0=%s Hz, Q=%s):",
		formatPlain(r.Spec.sampleRate), formatPlain(r.Spec.centerFreq), formatPlain(r.Spec.q))
}

// FloatLine returns the normalized coefficients with explicit sign and six
// decimals.
func (r *Result) FloatLine() string {
	c := r.Normalized
	return fmt.Sprintf("  float:  b0=%+.*f  b1=%+.*f  b2=%+.*f  a1=%+.*f  a2=%+.*f",
		floatDecimals, c.B0, floatDecimals, c.B1, floatDecimals, c.B2,
		floatDecimals, c.A1, floatDecimals, c.A2)
}

// Q14Line returns the quantized integers with explicit sign.
func (r *Result) Q14Line() string {
	var sb strings.Builder
	sb.WriteString("  Q14  :")
	for i, v := range r.Quantized.Values() {
		fmt.Fprintf(&sb, "  %s=%+d", coefficientNames[i], v)
	}
	return sb.String()
}

// ErrorLine returns the per-coefficient quantization error (ideal minus
// realized), marking saturated coefficients.
func (r *Result) ErrorLine() string {
	var sb strings.Builder
	sb.WriteString("  error:")
	for _, d := range r.Diagnostics {
		fmt.Fprintf(&sb, "  %s=%+.3e", d.Name, d.Error)
		if d.Saturated {
			sb.WriteString(" SATURATED")
		}
	}
	return sb.String()
}

// HDLParameters returns the five parameter declarations in B0, B1, B2, A1,
// A2 order.
func (r *Result) HDLParameters(style LiteralStyle) []string {
	values := r.Quantized.Values()
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fixedpoint.Q14.Parameter(coefficientNames[i], int64(v), style)
	}
	return out
}

// Report writes the human-readable summary followed by the HDL block.
func (r *Result) Report(w io.Writer, opts ReportOptions) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, r.Header())
	fmt.Fprintln(bw, r.FloatLine())
	fmt.Fprintln(bw, r.Q14Line())

	if opts.Diagnostics {
		r.writeDiagnostics(bw)
	}

	fmt.Fprintf(bw, "\n// Paste these into %s #(...)\n", hdlTarget)
	for _, line := range r.HDLParameters(opts.Style) {
		fmt.Fprintln(bw, line)
	}

	return bw.Flush()
}

func (r *Result) writeDiagnostics(w io.Writer) {
	fmt.Fprintln(w, r.ErrorLine())
	fmt.Fprintf(w, "  LSB  :  %.6e\n", fixedpoint.Q14.LSB())

	stability := "stable"
	if !r.Stable() {
		stability = "UNSTABLE"
	}
	qStability := "stable"
	if !r.QuantizedStable() {
		qStability = "UNSTABLE"
	}
	fmt.Fprintf(w, "  poles:  radius=%.6f (%s), Q14 (%s)\n", r.PoleRadius, stability, qStability)

	floatDB, qDB := r.GainDB(r.Spec.centerFreq)
	fmt.Fprintf(w, "  gain @ f0:  float=%+.4f dB  Q14=%+.4f dB  (pre-scale %.6f)\n",
		floatDB, qDB, r.CenterGain)

	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "  %s\n", warn)
	}
}

// formatPlain prints a float without exponent or trailing zeros.
func formatPlain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
