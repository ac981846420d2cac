package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the header drops
	// its counters.
	LayoutCompactWidth = 80
)

// Form layout.
const (
	labelWidth     = 8
	savedMark      = "✓ saved"
	savedMarkWidth = 7

	// TextCharLimit caps the free-text field.
	TextCharLimit = 200
)

// Log display limits.
const (
	// LogTailLines is how many lines of the log file the overlay reads.
	LogTailLines = 500
)

// Timing constants.
const (
	// DefaultUIInterval is how often the UI polls the store and the form.
	DefaultUIInterval = 100 * time.Millisecond
)
