package geo

import "github.com/nkedia/crimeatlas/internal/domain/normalize"

// Option applies a configuration option to the Reader.
type Option func(*Reader)

// WithNormalizer sets the region-name normalizer shared with the loader.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(r *Reader) {
		if n != nil {
			r.norm = n
		}
	}
}

// WithCacheSize bounds the parsed-boundary cache.
func WithCacheSize(n int) Option {
	return func(r *Reader) {
		if n > 0 {
			r.maxLen = n
		}
	}
}
