// Package repository defines the dataset snapshot store and errors.
//
// A snapshot is one fully loaded dataset. Keeping snapshots in an
// explicit store, with the active one handed to each aggregation pass,
// replaces the implicit process-wide cached dataset a dashboard would
// otherwise grow.
package repository

import (
	"context"
	"time"

	"github.com/nkedia/crimeatlas/internal/domain/model"
)

// Snapshot is one immutable loaded dataset plus its provenance.
type Snapshot struct {
	ID        string
	Source    string // e.g. "file:data/crimes.csv" or "upload"
	Dataset   *model.Dataset
	CreatedAt time.Time
}

// Store provides access to loaded dataset snapshots.
type Store interface {
	// Put stores a snapshot and makes it the active one.
	Put(ctx context.Context, snap Snapshot) error

	// Active returns the current snapshot.
	// Returns ErrNoDataset when nothing has been loaded yet.
	Active(ctx context.Context) (Snapshot, error)

	// Get returns a snapshot by id. Returns ErrNotFound if unknown.
	Get(ctx context.Context, id string) (Snapshot, error)

	// List returns all snapshots, newest first.
	List(ctx context.Context) []Snapshot

	// Count returns the number of snapshots held.
	Count(ctx context.Context) int
}
