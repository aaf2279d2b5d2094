// Package model contains domain models passed between layers.
package model

import "time"

// Record represents one crime incident or pre-aggregated statistic row
// taken from the source dataset.
type Record struct {
	Region    string    // canonical (normalized) region key used for grouping
	RegionRaw string    // region name exactly as it appeared in the source
	Category  string    // crime category, e.g., "murder", "theft"; may be empty
	Value     float64   // numeric count or rate for this row
	Date      time.Time // optional temporal marker; zero when the source has none
}

// Dataset is one fully loaded source: the included records plus load
// diagnostics. Records are never mutated after loading.
type Dataset struct {
	Records     []Record
	SkippedRows int       // rows excluded for a missing region, missing value, or unparseable value
	RegionCol   string    // source column used as the region key
	ValueCol    string    // source column used as the numeric value
	CategoryCol string    // source column used as the category, empty if none
	LoadedAt    time.Time // when the load completed
}
