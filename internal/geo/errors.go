package geo

import "errors"

// Sentinel kinds for boundary errors.
var (
	ErrBoundariesUnavailable = errors.New("boundaries unavailable")
	ErrNoFeatures            = errors.New("boundary file has no features")
	ErrNoNameProperty        = errors.New("no region name property found")
)
