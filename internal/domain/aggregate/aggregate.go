// Package aggregate turns raw crime records into per-region figures.
package aggregate

import (
	"strings"

	"github.com/nkedia/crimeatlas/internal/domain/model"
	"github.com/nkedia/crimeatlas/internal/domain/types"
)

// percentScale converts a 0-1 fraction to a 0-100 share.
const percentScale = 100.0

// Aggregator groups records and accumulates totals. It is a pure
// function of its inputs: no state survives an Aggregate call.
type Aggregator struct {
	byCategory bool
	known      map[string]string // canonical key -> display name, zero-filled when set
}

// New creates an Aggregator with configuration options.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Key returns the grouping key for a record under the aggregator's mode.
// In compound mode the key is "region|category".
func (a *Aggregator) Key(r model.Record) string {
	if a.byCategory && r.Category != "" {
		return r.Region + "|" + strings.ToLower(r.Category)
	}
	return r.Region
}

// Aggregate computes one figure per group key in a single pass.
//
// Duplicate keys are additive. An empty input yields an empty mapping
// unless a known-regions set was supplied, in which case every known
// region appears with a zero total. The output key set is otherwise
// exactly the distinct region keys present in the input.
func (a *Aggregator) Aggregate(records []model.Record) map[string]types.RegionFigure {
	out := make(map[string]types.RegionFigure, len(a.known))

	for canon, display := range a.known {
		out[canon] = types.RegionFigure{Region: canon, Name: display}
	}

	var grand float64
	for _, r := range records {
		key := a.Key(r)
		fig, ok := out[key]
		if !ok {
			fig = types.RegionFigure{Region: key, Name: r.RegionRaw}
		}
		if fig.Name == "" {
			fig.Name = r.RegionRaw
		}
		fig.Total += r.Value
		fig.Records++
		if r.Category != "" && !a.byCategory {
			if fig.Breakdown == nil {
				fig.Breakdown = make(map[string]float64)
			}
			fig.Breakdown[strings.ToLower(r.Category)] += r.Value
		}
		out[key] = fig
		grand += r.Value
	}

	if grand != 0 {
		for key, fig := range out {
			fig.Share = fig.Total / grand * percentScale
			out[key] = fig
		}
	}

	return out
}

// Sum returns the total value across all records. /stats uses it to
// check conservation against the aggregated output.
func Sum(records []model.Record) float64 {
	var total float64
	for _, r := range records {
		total += r.Value
	}
	return total
}
