// Package designer computes fixed-point coefficients for a second-order
// bandpass biquad destined for a hardware (FPGA) filter.
//
// The design runs three stages in order, with no feedback between them:
//
//	FilterSpec -> [RBJ prototype] -> [a0 normalizer / unity gain] -> [Q14 quantizer]
//
// The prototype is the Audio EQ Cookbook constant-skirt-gain bandpass
// (b0 = alpha, b1 = 0, b2 = -alpha), whose zeros sit at DC and Nyquist.
// Normalization divides every tap by a0 and can additionally rescale the
// numerator so the magnitude response is exactly 1 at the center frequency.
// Quantization rounds each tap to a signed 16-bit integer with 14 fractional
// bits, clamping to [-32768, 32767].
//
// # Quick Start
//
//	spec, err := designer.NewFilterSpec(1_000_000, 30_000, 3.0, true)
//	if err != nil {
//	    log.Fatal(err) // *designer.ParameterRangeError
//	}
//
//	res, err := designer.Design(spec)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, w := range res.Warnings {
//	    log.Print(w)
//	}
//	_ = res.Report(os.Stdout, designer.ReportOptions{Diagnostics: true})
//
// The report ends with five parameter declarations ready to paste into the
// hardware module:
//
//	parameter signed [15:0] B0_Q14 = 16'sd496;
//	parameter signed [15:0] B1_Q14 = 16'sd0;
//	parameter signed [15:0] B2_Q14 = -16'sd496;
//	parameter signed [15:0] A1_Q14 = -16'sd31213;
//	parameter signed [15:0] A2_Q14 = 16'sd15392;
//
// # Errors and Warnings
//
// An invalid FilterSpec (non-positive sample rate, center frequency at or
// above Nyquist, non-positive Q) is rejected with a [*ParameterRangeError]
// before any coefficient is derived; errors.Is(err, [ErrParameterRange])
// holds for every such error.
//
// Non-fatal conditions are reported as [Warning] values on the [Result]:
// [WarningSaturation] for every coefficient whose quantized value was
// clamped, and [WarningDegenerateGain] when the unity-gain rescale had to be
// skipped because the center gain was zero.
//
// # Collaborators
//
// The stimulus generator (cmd/make-stimulus) and the spectrum analyzer
// (cmd/analyze-spectrum) surround the designer: the first writes a multi-tone
// test signal for the simulated hardware filter, the second compares the
// simulator's input and output spectra and, given the same FilterSpec, the
// gain this package predicts for the quantized coefficients.
package designer
