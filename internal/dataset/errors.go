package dataset

import "errors"

// Sentinel kinds for loader errors.
var (
	// ErrDataUnavailable covers a missing, unreadable, or structurally
	// malformed source. Individual bad rows never raise it.
	ErrDataUnavailable = errors.New("data unavailable")

	ErrNoRegionColumn = errors.New("no region column found")
	ErrNoValueColumn  = errors.New("no numeric value column found")
)
