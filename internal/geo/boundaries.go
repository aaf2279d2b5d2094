// Package geo reads GeoJSON boundary files and joins aggregated figures
// onto their features for choropleth rendering.
package geo

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/paulmach/orb/geojson"

	"github.com/nkedia/crimeatlas/internal/domain/normalize"
	"github.com/nkedia/crimeatlas/internal/domain/types"
)

// Feature property keys written by Annotate.
const (
	PropRegionKey   = "region_key"
	PropRegionName  = "region_name"
	PropMetricValue = "metric_value"
)

// nameKeyCandidates are checked first, in order, when locating the
// property that holds the region name.
var nameKeyCandidates = []string{"name_1", "name", "st_nm", "st_name", "state", "state_name"}

// Boundaries is one parsed boundary file: the feature collection plus
// the normalized region keyspace derived from it. Immutable once built.
type Boundaries struct {
	fc      *geojson.FeatureCollection
	nameKey string
	regions map[string]string // canonical key -> display name
}

// NameProperty returns the feature property used as the region name.
func (b *Boundaries) NameProperty() string {
	return b.nameKey
}

// Count returns the number of boundary features.
func (b *Boundaries) Count() int {
	return len(b.fc.Features)
}

// Regions returns the known-regions set: canonical key to display name.
// The returned map is a copy.
func (b *Boundaries) Regions() map[string]string {
	out := make(map[string]string, len(b.regions))
	for k, v := range b.regions {
		out[k] = v
	}
	return out
}

// Annotate joins figures onto a fresh copy of the feature collection.
// Every feature gains its canonical region key, display name, and metric
// value; regions absent from the figures read as zero. Geometry is
// shared, properties are copied, so the cached collection stays clean.
func (b *Boundaries) Annotate(figures map[string]types.RegionFigure) *geojson.FeatureCollection {
	out := geojson.NewFeatureCollection()
	for _, feat := range b.fc.Features {
		clone := geojson.NewFeature(feat.Geometry)
		clone.ID = feat.ID
		for k, v := range feat.Properties {
			clone.Properties[k] = v
		}

		raw, _ := feat.Properties[b.nameKey].(string)
		key := canonOf(feat)
		clone.Properties[PropRegionKey] = key
		clone.Properties[PropRegionName] = strings.TrimSpace(raw)
		clone.Properties[PropMetricValue] = figures[key].Total

		out.Append(clone)
	}
	return out
}

// Unmatched returns, sorted, the figure keys that have no boundary
// feature. The rendering side reports these as a data-quality warning.
func (b *Boundaries) Unmatched(figures map[string]types.RegionFigure) []string {
	var missing []string
	for key := range figures {
		if _, ok := b.regions[key]; !ok {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}

// canonOf reads the canonical key stashed on a feature during parsing.
func canonOf(feat *geojson.Feature) string {
	key, _ := feat.Properties[PropRegionKey].(string)
	return key
}

// parse builds Boundaries from raw GeoJSON bytes.
func parse(data []byte, norm *normalize.Normalizer) (*Boundaries, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBoundariesUnavailable, err)
	}
	if len(fc.Features) == 0 {
		return nil, fmt.Errorf("%w", ErrNoFeatures)
	}

	nameKey, err := detectNameKey(fc.Features[0].Properties)
	if err != nil {
		return nil, err
	}

	b := &Boundaries{
		fc:      fc,
		nameKey: nameKey,
		regions: make(map[string]string, len(fc.Features)),
	}
	for _, feat := range fc.Features {
		raw, _ := feat.Properties[nameKey].(string)
		canon := norm.Canon(raw)
		feat.Properties[PropRegionKey] = canon
		if canon != "" {
			b.regions[canon] = norm.Display(raw)
		}
	}
	return b, nil
}

// detectNameKey picks the property holding the region name: a known
// candidate key first, then any property whose value looks like a short
// place name, then the lexically first key.
func detectNameKey(props geojson.Properties) (string, error) {
	if len(props) == 0 {
		return "", fmt.Errorf("%w", ErrNoNameProperty)
	}

	for _, cand := range nameKeyCandidates {
		for k := range props {
			if strings.EqualFold(k, cand) {
				return k, nil
			}
		}
	}

	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if s, ok := props[k].(string); ok && looksLikePlaceName(s) {
			return k, nil
		}
	}
	return keys[0], nil
}

// looksLikePlaceName reports whether a value is a short alphabetic
// string of the kind boundary files use for state names.
func looksLikePlaceName(s string) bool {
	if len(s) <= 2 || len(s) >= 40 {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) && r != '&' && r != '-' {
			return false
		}
	}
	return true
}

// readFileBytes wraps file access failures in the unavailable kind.
func readFileBytes(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBoundariesUnavailable, path, err)
	}
	return raw, nil
}
