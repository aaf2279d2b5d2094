package metrics

import (
	"errors"
)

// Sentinel kinds for metrics errors.
var (
	// ErrObserveFailed marks a recording helper that could not observe
	// a value.
	ErrObserveFailed = errors.New("metrics observe failed")
)
