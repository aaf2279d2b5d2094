// Package types contains common types used across the application
package types

// RegionFigure is the aggregated result for one region.
type RegionFigure struct {
	Region    string             `json:"region"`              // canonical grouping key
	Name      string             `json:"name"`                // display name from the source
	Total     float64            `json:"total"`               // sum of values across matching records
	Share     float64            `json:"share"`               // percentage of the overall total, 0-100
	Records   int                `json:"records"`             // number of contributing rows
	Breakdown map[string]float64 `json:"breakdown,omitempty"` // per-category subtotals
}
