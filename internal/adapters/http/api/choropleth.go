// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/paulmach/orb/geojson"
)

// ChoroplethDependencies defines the interface for choropleth assembly.
type ChoroplethDependencies interface {
	Choropleth(ctx context.Context) (*geojson.FeatureCollection, []string, error)
}

// ChoroplethHandler handles choropleth requests.
type ChoroplethHandler struct {
	deps ChoroplethDependencies
}

// NewChoroplethHandler creates a new choropleth handler.
func NewChoroplethHandler(deps ChoroplethDependencies) *ChoroplethHandler {
	return &ChoroplethHandler{deps: deps}
}

// HandleGetChoropleth handles GET /choropleth requests. It serves the
// annotated boundary collection as GeoJSON; regions that matched no
// boundary are reported in the X-Unmatched-Regions header.
func (h *ChoroplethHandler) HandleGetChoropleth(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_choropleth"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	fc, unmatched, err := h.deps.Choropleth(r.Context())
	if err != nil {
		status, code := statusForError(err)
		writeError(w, status, code, Wrap(op, err))
		return
	}

	body, err := fc.MarshalJSON()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	if len(unmatched) > 0 {
		w.Header().Set("X-Unmatched-Regions", strings.Join(unmatched, ","))
	}
	w.Header().Set("Content-Type", "application/geo+json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
