// Package aggregate turns raw crime records into per-region figures.
package aggregate

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithCategoryKey switches grouping to the compound region+category key.
func WithCategoryKey() Option {
	return func(a *Aggregator) {
		a.byCategory = true
	}
}

// WithKnownRegions supplies the complete set of valid region keys.
// Every known region then appears in the output, zero-filled when no
// record matches it. Keys are canonical, values are display names.
func WithKnownRegions(known map[string]string) Option {
	return func(a *Aggregator) {
		if len(known) == 0 {
			return
		}
		a.known = make(map[string]string, len(known))
		for k, v := range known {
			a.known[k] = v
		}
	}
}
