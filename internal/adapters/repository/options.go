package repository

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithMaxSnapshots bounds how many snapshots are retained. When the cap
// is reached the oldest inactive snapshot is dropped.
func WithMaxSnapshots(n int) Option {
	return func(s *MemoryStore) {
		if n > 0 {
			s.maxLen = n
		}
	}
}
