package main

// Default command-line flag values
const (
	defaultSampleRate = 1_000_000.0 // 1 MHz ADC clock
	defaultCenterFreq = 30_000.0    // 30 kHz pass tone
	defaultQ          = 3.0
)

// Frequency sweep table
const (
	defaultSweepPoints = 0 // no sweep unless requested
	sweepDecimals      = 2
	hzPerKHz           = 1000.0
)
