// Package dataset reads delimited crime statistics into domain records.
//
// The loader is a pure transform from raw bytes to an ordered record
// sequence. Bad rows are excluded and counted, never fatal; only a
// missing or structurally unusable source fails the load.
package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/nkedia/crimeatlas/internal/domain/model"
	"github.com/nkedia/crimeatlas/internal/domain/normalize"
)

// dateLayouts tried in order when a date column exists.
var dateLayouts = []string{time.RFC3339, "2006-01-02", "02/01/2006", "Jan-2006", "2006"}

// Loader converts delimited tabular bytes into model.Dataset values.
type Loader struct {
	norm        *normalize.Normalizer
	regionCol   string
	valueCol    string
	categoryCol string
}

// NewLoader creates a Loader with configuration options.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		norm: normalize.New(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// LoadFile loads a dataset from a path on disk.
func (l *Loader) LoadFile(path string) (*model.Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDataUnavailable, path, err)
	}
	return l.Load(bytes.NewReader(raw))
}

// Load loads a dataset from an in-memory byte source.
func (l *Loader) Load(r io.Reader) (*model.Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are handled per cell

	headers, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrDataUnavailable, err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	var rows [][]string
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A row the CSV reader cannot tokenize is excluded like any
			// other bad row; the count is reconciled below. Reader errors
			// are persistent and end the load instead.
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				rows = append(rows, nil)
				continue
			}
			return nil, fmt.Errorf("%w: reading rows: %w", ErrDataUnavailable, err)
		}
		rows = append(rows, row)
	}

	sch, err := detectSchema(headers, rows, l.regionCol, l.valueCol, l.categoryCol)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}

	ds := &model.Dataset{
		RegionCol:   sch.RegionCol,
		ValueCol:    sch.ValueCol,
		CategoryCol: sch.CategoryCol,
		LoadedAt:    time.Now(),
	}

	for _, row := range rows {
		rec, ok := l.buildRecord(sch, row)
		if !ok {
			ds.SkippedRows++
			continue
		}
		ds.Records = append(ds.Records, rec)
	}

	return ds, nil
}

// buildRecord maps one raw row onto a Record. It reports false when the
// row lacks a region or a parseable value.
func (l *Loader) buildRecord(sch Schema, row []string) (model.Record, bool) {
	if row == nil {
		return model.Record{}, false
	}

	rawRegion := cell(row, sch.RegionIdx)
	canon := l.norm.Canon(rawRegion)
	if canon == "" {
		return model.Record{}, false
	}

	value, err := parseNumber(cell(row, sch.ValueIdx))
	if err != nil {
		return model.Record{}, false
	}

	rec := model.Record{
		Region:    canon,
		RegionRaw: l.norm.Display(rawRegion),
		Value:     value,
	}

	if sch.CategoryIdx >= 0 {
		rec.Category = strings.TrimSpace(cell(row, sch.CategoryIdx))
	}
	if sch.DateIdx >= 0 {
		rec.Date = parseDate(cell(row, sch.DateIdx))
	}

	return rec, true
}

// cell returns the trimmed value at idx, or "" when the row is short.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseDate tries the known layouts; a miss yields the zero time since
// the date is an optional marker, not a required field.
func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
