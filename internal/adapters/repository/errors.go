package repository

import "errors"

// Sentinel kinds for snapshot store errors.
var (
	ErrNotFound   = errors.New("snapshot not found")
	ErrNoDataset  = errors.New("no dataset loaded")
	ErrNilDataset = errors.New("snapshot has no dataset")
)
