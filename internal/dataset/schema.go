package dataset

import (
	"strconv"
	"strings"
)

// sampleRows bounds how many values are probed when classifying a
// column as numeric.
const sampleRows = 20

// Schema names the columns a load will read. Detection runs once per
// load and fails up front, so row handling never chases missing keys.
type Schema struct {
	Headers []string

	RegionCol string
	RegionIdx int

	ValueCol string
	ValueIdx int

	// CategoryIdx and DateIdx are -1 when the source has no such column.
	CategoryCol string
	CategoryIdx int

	DateCol string
	DateIdx int
}

// regionHeaderHints mark a column as the region identifier. NCRB sheets
// use variations of "State/UT".
var regionHeaderHints = []string{"state", "ut", "region"}

// categoryHeaderHints mark a column as the crime category.
var categoryHeaderHints = []string{"category", "crime", "type", "head"}

// dateHeaderHints mark a column as a temporal marker.
var dateHeaderHints = []string{"date", "month"}

// serialHeaderHints mark row-number columns that should never be picked
// as the metric even though they parse as numbers.
var serialHeaderHints = []string{"sl.", "sl ", "s.no", "serial", "rank"}

// detectSchema classifies columns from the header row and a sample of
// data rows. Overrides pin a column by exact (case-insensitive) header
// name; empty overrides fall back to detection.
func detectSchema(headers []string, rows [][]string, regionOverride, valueOverride, categoryOverride string) (Schema, error) {
	sch := Schema{Headers: headers, RegionIdx: -1, ValueIdx: -1, CategoryIdx: -1, DateIdx: -1}

	numeric := make([]bool, len(headers))
	for i := range headers {
		numeric[i] = columnIsNumeric(rows, i)
	}

	sch.RegionIdx = findColumn(headers, regionOverride, func(i int) bool {
		return headerMatches(headers[i], regionHeaderHints) && !numeric[i]
	})
	if sch.RegionIdx < 0 && regionOverride == "" {
		// Fall back to the first non-numeric column, the way the
		// upstream sheets are read when no explicit state column exists.
		for i := range headers {
			if !numeric[i] {
				sch.RegionIdx = i
				break
			}
		}
	}
	if sch.RegionIdx < 0 {
		return Schema{}, ErrNoRegionColumn
	}
	sch.RegionCol = headers[sch.RegionIdx]

	sch.ValueIdx = findColumn(headers, valueOverride, func(i int) bool {
		return i != sch.RegionIdx && numeric[i] && !headerMatches(headers[i], serialHeaderHints)
	})
	if sch.ValueIdx < 0 && valueOverride == "" {
		// Nothing but serial-style numeric columns; take the first one.
		sch.ValueIdx = findColumn(headers, "", func(i int) bool {
			return i != sch.RegionIdx && numeric[i]
		})
	}
	if sch.ValueIdx < 0 {
		return Schema{}, ErrNoValueColumn
	}
	sch.ValueCol = headers[sch.ValueIdx]

	sch.CategoryIdx = findColumn(headers, categoryOverride, func(i int) bool {
		return i != sch.RegionIdx && i != sch.ValueIdx && !numeric[i] && headerMatches(headers[i], categoryHeaderHints)
	})
	if sch.CategoryIdx >= 0 {
		sch.CategoryCol = headers[sch.CategoryIdx]
	}

	for i, h := range headers {
		if i == sch.RegionIdx || i == sch.ValueIdx || i == sch.CategoryIdx {
			continue
		}
		if headerMatches(h, dateHeaderHints) {
			sch.DateIdx = i
			sch.DateCol = h
			break
		}
	}

	return sch, nil
}

// findColumn resolves an override by header name, or the first index
// accepted by match.
func findColumn(headers []string, override string, match func(int) bool) int {
	if override != "" {
		for i, h := range headers {
			if strings.EqualFold(strings.TrimSpace(h), override) {
				return i
			}
		}
		return -1
	}
	for i := range headers {
		if match(i) {
			return i
		}
	}
	return -1
}

// headerMatches reports whether a header contains any of the hints.
func headerMatches(header string, hints []string) bool {
	h := strings.ToLower(header)
	for _, hint := range hints {
		if strings.Contains(h, hint) {
			return true
		}
	}
	return false
}

// columnIsNumeric samples up to sampleRows non-empty values. A column
// counts as numeric when at least half of the sampled values parse, so
// one corrupt cell does not declassify a metric column.
func columnIsNumeric(rows [][]string, col int) bool {
	seen, parsed := 0, 0
	for _, row := range rows {
		if col >= len(row) {
			continue
		}
		v := strings.TrimSpace(row[col])
		if v == "" {
			continue
		}
		if _, err := parseNumber(v); err == nil {
			parsed++
		}
		seen++
		if seen >= sampleRows {
			break
		}
	}
	return parsed > 0 && parsed*2 >= seen
}

// parseNumber parses a numeric cell, tolerating thousands separators.
func parseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	return strconv.ParseFloat(s, 64)
}
