package config

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrInvalidConfig marks a configuration that loaded but failed
	// validation (empty addr, non-positive limits).
	ErrInvalidConfig = errors.New("invalid config")

	// ErrLoadConfig marks a failure to read or parse the file or
	// environment layers.
	ErrLoadConfig = errors.New("load config failed")
)
