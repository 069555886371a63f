package fixedpoint

import (
	"fmt"
	"strconv"
)

// LiteralStyle selects how negative sized decimal literals are written.
type LiteralStyle int

const (
	// LiteralNegated writes -16'sd496, the form Verilog-2001 parsers accept.
	LiteralNegated LiteralStyle = iota

	// LiteralInlineSign writes 16'sd-496, the form older scripts printed.
	LiteralInlineSign
)

// Literal renders v as a sized signed decimal literal, e.g. 16'sd15392.
func (f Format) Literal(v int64, style LiteralStyle) string {
	width := strconv.Itoa(f.Width)
	if v < 0 && style == LiteralNegated {
		// -(-32768) still fits in int64
		return "-" + width + "'sd" + strconv.FormatInt(-v, 10)
	}
	return width + "'sd" + strconv.FormatInt(v, 10)
}

// Parameter renders one HDL parameter declaration:
//
//	parameter signed [15:0] B0_Q14 = 16'sd496;
func (f Format) Parameter(name string, v int64, style LiteralStyle) string {
	return fmt.Sprintf("parameter signed [%d:0] %s = %s;", f.Width-1, name, f.Literal(v, style))
}
