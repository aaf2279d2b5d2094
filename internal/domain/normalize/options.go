// Package normalize canonicalizes region names so dataset rows and
// boundary features meet in a single keyspace.
package normalize

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithAliases merges extra alias mappings over the defaults. Keys and
// values are expected in already-canonical form (lowercase, "and" for
// "&", single spaces).
func WithAliases(aliases map[string]string) Option {
	return func(n *Normalizer) {
		for k, v := range aliases {
			if k != "" && v != "" {
				n.aliases[k] = v
			}
		}
	}
}
