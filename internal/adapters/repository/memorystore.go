package repository

import (
	"context"
	"sort"
	"sync"
)

// defaultMaxSnapshots bounds snapshot retention. Uploads replace the
// active dataset; old snapshots are kept only for short-lived inspection.
const defaultMaxSnapshots = 16

// MemoryStore implements Store with a mutex-guarded map. Snapshots are
// immutable after Put, so readers share them freely.
type MemoryStore struct {
	mu       sync.RWMutex
	byID     map[string]Snapshot
	activeID string
	maxLen   int
}

// NewMemoryStore creates a new in-memory snapshot store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		byID:   make(map[string]Snapshot),
		maxLen: defaultMaxSnapshots,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Put stores snap and makes it the active snapshot.
func (s *MemoryStore) Put(_ context.Context, snap Snapshot) error {
	if snap.Dataset == nil {
		return ErrNilDataset
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.byID) >= s.maxLen {
		s.evictOldestLocked()
	}
	s.byID[snap.ID] = snap
	s.activeID = snap.ID
	return nil
}

// Active returns the current snapshot.
func (s *MemoryStore) Active(_ context.Context) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.activeID == "" {
		return Snapshot{}, ErrNoDataset
	}
	return s.byID[s.activeID], nil
}

// Get returns a snapshot by id.
func (s *MemoryStore) Get(_ context.Context, id string) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.byID[id]
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	return snap, nil
}

// List returns all snapshots, newest first.
func (s *MemoryStore) List(_ context.Context) []Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Snapshot, 0, len(s.byID))
	for _, snap := range s.byID {
		out = append(out, snap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// Count returns the number of snapshots held.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// evictOldestLocked drops the oldest snapshot that is not active.
// Caller holds the write lock.
func (s *MemoryStore) evictOldestLocked() {
	oldest := ""
	for id, snap := range s.byID {
		if id == s.activeID {
			continue
		}
		if oldest == "" || snap.CreatedAt.Before(s.byID[oldest].CreatedAt) {
			oldest = id
		}
	}
	if oldest != "" {
		delete(s.byID, oldest)
	}
}
