package main

import (
	"bufio"
	"fmt"
	"io"

	designer "github.com/tphakala/go-biquad-designer"
	"github.com/tphakala/go-biquad-designer/internal/filter"
)

// writeSweep prints the float and Q14 magnitude response side by side.
func writeSweep(w io.Writer, res *designer.Result, points int) error {
	ideal := res.FrequencyResponse(points, false)
	q14 := res.FrequencyResponse(points, true)

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "\n// Magnitude response (%d points)\n", points)
	fmt.Fprintf(bw, "// %10s  %10s  %10s\n", "f kHz", "float dB", "Q14 dB")
	for i, f := range ideal.Frequencies {
		fmt.Fprintf(bw, "// %10.*f  %10.*f  %10.*f\n",
			sweepDecimals+1, f/hzPerKHz,
			sweepDecimals, filter.MagnitudeDB(ideal.Magnitude[i]),
			sweepDecimals, filter.MagnitudeDB(q14.Magnitude[i]))
	}
	return bw.Flush()
}
