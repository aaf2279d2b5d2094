// Package normalize canonicalizes region names so dataset rows and
// boundary features meet in a single keyspace.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer maps raw region names to canonical grouping keys.
//
// The canonical form is: NFKD-folded to ASCII, trimmed, inner whitespace
// collapsed, "&" replaced with "and", lowercased, then passed through the
// alias map. Aliases resolve common alternate spellings of the same
// region ("odisha" and "orissa", "nct of delhi" and "delhi").
type Normalizer struct {
	aliases map[string]string
	fold    transform.Transformer
}

// New creates a Normalizer with configuration options.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		aliases: make(map[string]string),
		// Decompose, strip combining marks, recompose. This reduces
		// accented names to their ASCII skeleton before case folding.
		fold: transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
	}
	for k, v := range defaultAliases {
		n.aliases[k] = v
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

// defaultAliases covers the alternate state/UT spellings found in NCRB
// publications versus common boundary files.
var defaultAliases = map[string]string{
	"odisha":                      "orissa",
	"uttarakhand":                 "uttaranchal",
	"pondicherry":                 "puducherry",
	"nct of delhi":                "delhi",
	"delhi (nct)":                 "delhi",
	"andaman and nicobar islands": "a and n islands",
	"d and n haveli and daman and diu": "dadra and nagar haveli and daman and diu",
}

// Canon returns the canonical grouping key for a raw region name.
// An empty or whitespace-only input canonicalizes to the empty string.
func (n *Normalizer) Canon(raw string) string {
	s, _, err := transform.String(n.fold, raw)
	if err != nil {
		s = raw
	}
	s = strings.ReplaceAll(s, "&", " and ")
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ToLower(s)
	if alias, ok := n.aliases[s]; ok {
		return alias
	}
	return s
}

// Display returns the trimmed raw name, suitable for presentation.
func (n *Normalizer) Display(raw string) string {
	return strings.TrimSpace(raw)
}
