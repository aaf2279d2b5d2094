package dataset

import "github.com/nkedia/crimeatlas/internal/domain/normalize"

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithNormalizer sets the region-name normalizer. The loader and the
// boundary reader must share one so their keys line up.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(l *Loader) {
		if n != nil {
			l.norm = n
		}
	}
}

// WithRegionColumn pins the region column by header name instead of
// relying on detection.
func WithRegionColumn(name string) Option {
	return func(l *Loader) {
		l.regionCol = name
	}
}

// WithValueColumn pins the numeric value column by header name.
func WithValueColumn(name string) Option {
	return func(l *Loader) {
		l.valueCol = name
	}
}

// WithCategoryColumn pins the category column by header name.
func WithCategoryColumn(name string) Option {
	return func(l *Loader) {
		l.categoryCol = name
	}
}
