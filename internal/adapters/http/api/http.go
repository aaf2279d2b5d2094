// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/paulmach/orb/geojson"

	service "github.com/nkedia/crimeatlas/internal/app"
	"github.com/nkedia/crimeatlas/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Figures returns aggregated figures grouped by region or
	// region+category, sorted by total descending.
	Figures(ctx context.Context, by string, limit int) ([]RegionFigure, error)

	// RegionFigure returns one region's aggregated figure.
	RegionFigure(ctx context.Context, key string) (RegionFigure, error)

	// Choropleth returns the annotated boundary collection plus the
	// regions that matched no boundary feature.
	Choropleth(ctx context.Context) (*geojson.FeatureCollection, []string, error)

	// UploadDataset loads a CSV payload as the new active snapshot and
	// returns its id plus load diagnostics.
	UploadDataset(ctx context.Context, source string, r io.Reader) (UploadResult, error)
}

// RegionFigure mirrors the read shape returned by aggregation queries.
type RegionFigure = types.RegionFigure

// UploadResult mirrors the diagnostics returned for a stored upload.
type UploadResult = service.UploadResult

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	regionsHandler    *RegionsHandler
	choroplethHandler *ChoroplethHandler
	datasetsHandler   *DatasetsHandler
	dashboardHandler  *dashboardHandler
}

// Option applies a configuration option to the Server.
type Option func(*serverConfig)

type serverConfig struct {
	maxLimit       int
	maxUploadBytes int64
}

// WithMaxRegionsLimit caps the limit query parameter on GET /regions.
func WithMaxRegionsLimit(n int) Option {
	return func(c *serverConfig) {
		if n > 0 {
			c.maxLimit = n
		}
	}
}

// WithMaxUploadBytes caps the request body size on POST /datasets.
func WithMaxUploadBytes(n int64) Option {
	return func(c *serverConfig) {
		if n > 0 {
			c.maxUploadBytes = n
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	cfg := &serverConfig{
		maxLimit:       100,
		maxUploadBytes: 32 << 20,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		regionsHandler:    NewRegionsHandler(deps, cfg.maxLimit),
		choroplethHandler: NewChoroplethHandler(deps),
		datasetsHandler:   NewDatasetsHandler(deps, cfg.maxUploadBytes),
		dashboardHandler:  newdashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/regions", MetricsMiddleware(s.regionsHandler.HandleListRegions, "regions"))
	mux.HandleFunc("/regions/", MetricsMiddleware(s.regionsHandler.HandleGetRegion, "region"))
	mux.HandleFunc("/choropleth", MetricsMiddleware(s.choroplethHandler.HandleGetChoropleth, "choropleth"))
	mux.HandleFunc("/datasets", MetricsMiddleware(s.datasetsHandler.HandlePostDataset, "datasets"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
