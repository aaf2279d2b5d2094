// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// RegionsDependencies defines the interface for aggregation queries.
type RegionsDependencies interface {
	Figures(ctx context.Context, by string, limit int) ([]RegionFigure, error)
	RegionFigure(ctx context.Context, key string) (RegionFigure, error)
}

// RegionsHandler handles aggregated figure requests.
type RegionsHandler struct {
	deps     RegionsDependencies
	maxLimit int
}

// NewRegionsHandler creates a new regions handler.
func NewRegionsHandler(deps RegionsDependencies, maxLimit int) *RegionsHandler {
	return &RegionsHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleListRegions handles GET /regions?by=region|category&limit=N requests.
func (h *RegionsHandler) HandleListRegions(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_regions"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	by := r.URL.Query().Get("by")
	if by == "" {
		by = "region"
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
			return
		}
		limit = n
	}

	figures, err := h.deps.Figures(r.Context(), by, limit)
	if err != nil {
		status, code := statusForError(err)
		writeError(w, status, code, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, figures)
}

// HandleGetRegion handles GET /regions/{key} requests.
func (h *RegionsHandler) HandleGetRegion(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_region"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	// Extract path parameter after /regions/
	path := strings.TrimPrefix(r.URL.Path, "/regions/")
	key, err := url.PathUnescape(path)
	if err != nil || key == "" || strings.Contains(key, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	fig, err := h.deps.RegionFigure(r.Context(), key)
	if err != nil {
		status, code := statusForError(err)
		writeError(w, status, code, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, fig)
}
