package designer

// Default design parameters
const (
	DefaultSampleRate = 1_000_000.0 // Hz
	DefaultCenterFreq = 30_000.0    // Hz
	DefaultQ          = 3.0
)

// Coefficient layout
const (
	numCoefficients = 5

	coeffB0 = 0
	coeffB1 = 1
	coeffB2 = 2
	coeffA1 = 3
	coeffA2 = 4
)

// Output formatting
const (
	// floatDecimals is the precision of the human-readable coefficient line
	floatDecimals = 6

	// hdlTarget names the hardware module the parameters are pasted into
	hdlTarget = "biquad_bandpass_fixed"

	// nyquistDivisor gives the Nyquist frequency as fs / nyquistDivisor
	nyquistDivisor = 2.0
)

// coefficientNames are the HDL parameter names in B0, B1, B2, A1, A2 order.
var coefficientNames = [numCoefficients]string{
	"B0_Q14",
	"B1_Q14",
	"B2_Q14",
	"A1_Q14",
	"A2_Q14",
}
