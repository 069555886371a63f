package main

// Default command-line flag values
const (
	defaultTones    = "10000,20000,30000,40000,50000"
	defaultMaxFreq  = 60_000.0 // spectrum CSV upper edge
	defaultPassTone = 30_000.0
	defaultQ        = 3.0

	minRequiredArgs = 1
	toneSeparator   = ","
)

// Capture file extensions
const (
	extCSV = ".csv"
	extWAV = ".wav"
)
