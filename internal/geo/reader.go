package geo

import (
	"sync"

	"github.com/nkedia/crimeatlas/internal/domain/normalize"
)

// defaultCacheSize bounds the number of parsed boundary sets kept in
// memory. Deployments rarely point at more than a couple of files.
const defaultCacheSize = 8

// Reader parses boundary files and caches the result per source path,
// so repeated render passes do not re-parse the same geometry.
type Reader struct {
	mu     sync.RWMutex
	norm   *normalize.Normalizer
	cache  map[string]*Boundaries
	maxLen int
}

// NewReader creates a Reader with configuration options.
func NewReader(opts ...Option) *Reader {
	r := &Reader{
		norm:   normalize.New(),
		cache:  make(map[string]*Boundaries),
		maxLen: defaultCacheSize,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// ReadFile parses the boundary file at path, serving repeats from cache.
func (r *Reader) ReadFile(path string) (*Boundaries, error) {
	r.mu.RLock()
	cached, ok := r.cache[path]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	raw, err := readFileBytes(path)
	if err != nil {
		return nil, err
	}
	b, err := parse(raw, r.norm)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	if len(r.cache) >= r.maxLen {
		// Tiny cap; evicting an arbitrary entry is good enough.
		for k := range r.cache {
			delete(r.cache, k)
			break
		}
	}
	r.cache[path] = b
	r.mu.Unlock()

	return b, nil
}

// Read parses boundaries from in-memory bytes. Uncached.
func (r *Reader) Read(data []byte) (*Boundaries, error) {
	return parse(data, r.norm)
}

// CacheLen returns the number of cached boundary sets.
func (r *Reader) CacheLen() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cache)
}
