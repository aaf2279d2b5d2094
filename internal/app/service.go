// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"

	"github.com/nkedia/crimeatlas/internal/adapters/repository"
	"github.com/nkedia/crimeatlas/internal/dataset"
	"github.com/nkedia/crimeatlas/internal/domain/aggregate"
	"github.com/nkedia/crimeatlas/internal/domain/model"
	"github.com/nkedia/crimeatlas/internal/domain/normalize"
	"github.com/nkedia/crimeatlas/internal/domain/types"
	"github.com/nkedia/crimeatlas/internal/geo"
	"github.com/nkedia/crimeatlas/pkg/logger"
	"github.com/nkedia/crimeatlas/pkg/metrics"
)

// Group-by keys accepted by Figures.
const (
	GroupByRegion   = "region"
	GroupByCategory = "category"
)

// Service implements the API dependencies for the crime atlas dashboard.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     repository.Store
	loader    *dataset.Loader
	geoReader *geo.Reader
	norm      *normalize.Normalizer

	// Configuration
	datasetPath    string
	boundariesPath string
	regionColumn   string
	valueColumn    string
	categoryColumn string
	regionAliases  map[string]string
	maxSnapshots   int

	// State
	boundaries *geo.Boundaries
	started    bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDatasetPath sets the CSV file loaded on startup.
func WithDatasetPath(path string) Option {
	return func(s *Service) {
		s.datasetPath = path
	}
}

// WithBoundariesPath sets the GeoJSON boundary file used for the choropleth.
func WithBoundariesPath(path string) Option {
	return func(s *Service) {
		s.boundariesPath = path
	}
}

// WithRegionColumn pins the CSV column holding region names.
func WithRegionColumn(name string) Option {
	return func(s *Service) {
		s.regionColumn = name
	}
}

// WithValueColumn pins the CSV column holding the metric values.
func WithValueColumn(name string) Option {
	return func(s *Service) {
		s.valueColumn = name
	}
}

// WithCategoryColumn pins the CSV column holding crime categories.
func WithCategoryColumn(name string) Option {
	return func(s *Service) {
		s.categoryColumn = name
	}
}

// WithRegionAliases adds extra alias entries to the region normalizer.
func WithRegionAliases(aliases map[string]string) Option {
	return func(s *Service) {
		s.regionAliases = aliases
	}
}

// WithMaxSnapshots caps how many dataset snapshots are retained.
func WithMaxSnapshots(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxSnapshots = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		maxSnapshots: 16,
		logger:       nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components and loads the configured inputs.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting crime atlas service...")

	// Initialize components
	s.norm = normalize.New(normalize.WithAliases(s.regionAliases))
	s.loader = dataset.NewLoader(
		dataset.WithNormalizer(s.norm),
		dataset.WithRegionColumn(s.regionColumn),
		dataset.WithValueColumn(s.valueColumn),
		dataset.WithCategoryColumn(s.categoryColumn),
	)
	s.geoReader = geo.NewReader(geo.WithNormalizer(s.norm))
	s.store = repository.NewMemoryStore(repository.WithMaxSnapshots(s.maxSnapshots))

	if s.boundariesPath != "" {
		b, err := s.geoReader.ReadFile(s.boundariesPath)
		if err != nil {
			metrics.RecordErrorByComponent("geo", "boundary_load")
			return fmt.Errorf("load boundaries: %w", err)
		}
		s.boundaries = b
		metrics.RecordBoundaryParse()
		metrics.UpdateBoundaryFeatures(b.Count())
		s.logger.Info(ctx, "boundaries loaded",
			logger.String("path", s.boundariesPath),
			logger.String("nameProperty", b.NameProperty()),
			logger.Int("features", b.Count()),
		)
	}

	if s.datasetPath != "" {
		ds, err := s.loader.LoadFile(s.datasetPath)
		if err != nil {
			metrics.RecordDatasetLoadError()
			return fmt.Errorf("load dataset: %w", err)
		}
		if _, err := s.putSnapshotLocked(ctx, s.datasetPath, ds); err != nil {
			return err
		}
	}

	s.started = true
	s.logger.Info(ctx, "crime atlas service started",
		logger.String("datasetPath", s.datasetPath),
		logger.String("boundariesPath", s.boundariesPath),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping crime atlas service...")
	s.started = false
	s.logger.Info(context.Background(), "crime atlas service stopped")
}

// UploadResult describes a stored upload: its snapshot id plus the
// row diagnostics a caller needs to judge the load.
type UploadResult struct {
	ID          string   `json:"id"`
	Source      string   `json:"source"`
	Records     int      `json:"records"`
	SkippedRows int      `json:"skippedRows"`
	Unmatched   []string `json:"unmatchedRegions,omitempty"`
}

// UploadDataset parses a CSV payload, stores it as the active snapshot
// and returns the snapshot id plus load diagnostics.
func (s *Service) UploadDataset(ctx context.Context, source string, r io.Reader) (UploadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return UploadResult{}, ErrNotStarted
	}

	ds, err := s.loader.Load(r)
	if err != nil {
		metrics.RecordDatasetLoadError()
		return UploadResult{}, err
	}
	if len(ds.Records) == 0 {
		return UploadResult{}, ErrEmptyUpload
	}

	id, err := s.putSnapshotLocked(ctx, source, ds)
	if err != nil {
		return UploadResult{}, err
	}

	res := UploadResult{
		ID:          id,
		Source:      source,
		Records:     len(ds.Records),
		SkippedRows: ds.SkippedRows,
	}
	if s.boundaries != nil {
		res.Unmatched = s.boundaries.Unmatched(aggregate.New().Aggregate(ds.Records))
	}
	return res, nil
}

// putSnapshotLocked stores a dataset as the new active snapshot and
// returns its id. Caller must hold s.mu.
func (s *Service) putSnapshotLocked(ctx context.Context, source string, ds *model.Dataset) (string, error) {
	snap := repository.Snapshot{
		ID:        uuid.NewString(),
		Source:    source,
		Dataset:   ds,
		CreatedAt: time.Now(),
	}
	if err := s.store.Put(ctx, snap); err != nil {
		return "", err
	}

	metrics.RecordDatasetLoad(len(ds.Records), ds.SkippedRows)
	metrics.UpdateSnapshotCount(s.store.Count(ctx))

	s.logger.Info(ctx, "dataset snapshot stored",
		logger.String("id", snap.ID),
		logger.String("source", source),
		logger.Int("records", len(ds.Records)),
		logger.Int("skippedRows", ds.SkippedRows),
		logger.String("regionColumn", ds.RegionCol),
		logger.String("valueColumn", ds.ValueCol),
	)
	if ds.SkippedRows > 0 {
		s.logger.Warn(ctx, "malformed rows excluded from dataset",
			logger.String("source", source),
			logger.Int("skippedRows", ds.SkippedRows),
		)
	}
	return snap.ID, nil
}

// activeRecords returns the records of the active snapshot.
func (s *Service) activeRecords(ctx context.Context) ([]model.Record, error) {
	snap, err := s.store.Active(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Dataset.Records, nil
}

// aggregate runs the grouping for the given key over the active snapshot.
func (s *Service) aggregate(ctx context.Context, by string) (map[string]types.RegionFigure, error) {
	records, err := s.activeRecords(ctx)
	if err != nil {
		return nil, err
	}

	opts := make([]aggregate.Option, 0, 2)
	switch by {
	case GroupByRegion, "":
		if s.boundaries != nil {
			opts = append(opts, aggregate.WithKnownRegions(s.boundaries.Regions()))
		}
	case GroupByCategory:
		opts = append(opts, aggregate.WithCategoryKey())
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidGroupBy, by)
	}

	start := time.Now()
	figures := aggregate.New(opts...).Aggregate(records)
	elapsed := time.Since(start)
	metrics.RecordAggregation(float64(elapsed.Microseconds()) / 1000.0)
	metrics.UpdateRegionCount(len(figures))
	s.logger.Debug(ctx, "aggregation pass",
		logger.String("by", by),
		logger.Int("groups", len(figures)),
		logger.Duration("elapsed", elapsed),
	)

	return figures, nil
}

// Figures returns aggregated figures grouped by region or region+category,
// sorted by total descending. A non-positive limit returns all groups.
func (s *Service) Figures(ctx context.Context, by string, limit int) ([]types.RegionFigure, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, ErrNotStarted
	}

	figures, err := s.aggregate(ctx, by)
	if err != nil {
		return nil, err
	}

	out := make([]types.RegionFigure, 0, len(figures))
	for _, f := range figures {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Region < out[j].Region
	})

	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// RegionFigure returns the aggregated figure for a single region. The key
// is normalized before lookup, so display names and canonical keys both work.
func (s *Service) RegionFigure(ctx context.Context, key string) (types.RegionFigure, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return types.RegionFigure{}, ErrNotStarted
	}

	figures, err := s.aggregate(ctx, GroupByRegion)
	if err != nil {
		return types.RegionFigure{}, err
	}

	canon := s.norm.Canon(key)
	fig, ok := figures[canon]
	if !ok {
		return types.RegionFigure{}, fmt.Errorf("%w: %q", ErrUnknownRegion, strings.TrimSpace(key))
	}
	return fig, nil
}

// Choropleth joins the active snapshot onto the boundary features and
// returns the annotated collection plus the regions that matched no feature.
func (s *Service) Choropleth(ctx context.Context) (*geojson.FeatureCollection, []string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, nil, ErrNotStarted
	}
	if s.boundaries == nil {
		return nil, nil, ErrNoBoundaries
	}

	figures, err := s.aggregate(ctx, GroupByRegion)
	if err != nil {
		return nil, nil, err
	}

	fc := s.boundaries.Annotate(figures)
	unmatched := s.boundaries.Unmatched(figures)
	metrics.UpdateUnmatchedRegions(len(unmatched))
	if len(unmatched) > 0 {
		s.logger.Warn(ctx, "regions without matching boundary",
			logger.Any("regions", unmatched),
		)
	}
	return fc, unmatched, nil
}

// Snapshots lists the stored dataset snapshots, newest first.
func (s *Service) Snapshots(ctx context.Context) []repository.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil
	}
	return s.store.List(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":        s.started,
		"datasetPath":    s.datasetPath,
		"boundariesPath": s.boundariesPath,
		"maxSnapshots":   s.maxSnapshots,
	}

	if !s.started {
		return stats
	}

	stats["snapshots"] = s.store.Count(ctx)
	if s.boundaries != nil {
		stats["boundaryFeatures"] = s.boundaries.Count()
		stats["boundaryNameProperty"] = s.boundaries.NameProperty()
	}

	snap, err := s.store.Active(ctx)
	if err == nil {
		stats["activeSnapshot"] = snap.ID
		stats["activeSource"] = snap.Source
		stats["records"] = len(snap.Dataset.Records)
		stats["skippedRows"] = snap.Dataset.SkippedRows
		stats["regionColumn"] = snap.Dataset.RegionCol
		stats["valueColumn"] = snap.Dataset.ValueCol
		stats["totalValue"] = aggregate.Sum(snap.Dataset.Records)

		figures := aggregate.New().Aggregate(snap.Dataset.Records)
		maxValue := 0.0
		for _, f := range figures {
			if f.Total > maxValue {
				maxValue = f.Total
			}
		}
		stats["regions"] = len(figures)
		stats["maxValue"] = maxValue
		if s.boundaries != nil {
			stats["unmatchedRegions"] = s.boundaries.Unmatched(figures)
		}
	}

	// Update metrics
	metrics.UpdateSnapshotCount(s.store.Count(ctx))

	return stats
}
