package service

import (
	"errors"
)

// Sentinel errors for service operations.
var (
	ErrNotStarted     = errors.New("service not started")
	ErrUnknownRegion  = errors.New("unknown region")
	ErrNoBoundaries   = errors.New("boundary file not configured")
	ErrEmptyUpload    = errors.New("uploaded dataset is empty")
	ErrInvalidGroupBy = errors.New("invalid group-by key")
)
