package main

// Default command-line flag values
const (
	defaultOutputCSV = "arb_sines.csv"
	defaultTones     = "10000:0.4,20000:0.3,30000:0.2,40000:0.15,50000:0.1"
	defaultSamples   = 8192
	defaultMaxDenom  = 1000
	defaultWAVRate   = 1_000_000.0 // hardware sample clock
	defaultBitDepth  = 16
)

// Tone list syntax: freq:amp[:phase], comma separated
const (
	toneSeparator  = ","
	fieldSeparator = ":"
	minToneFields  = 2
	maxToneFields  = 3
)
