// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	service "github.com/nkedia/crimeatlas/internal/app"
	"github.com/nkedia/crimeatlas/internal/dataset"
)

// DatasetDependencies defines the interface for dataset uploads.
type DatasetDependencies interface {
	UploadDataset(ctx context.Context, source string, r io.Reader) (UploadResult, error)
}

// DatasetsHandler handles dataset upload requests.
type DatasetsHandler struct {
	deps     DatasetDependencies
	maxBytes int64
}

// NewDatasetsHandler creates a new datasets handler.
func NewDatasetsHandler(deps DatasetDependencies, maxBytes int64) *DatasetsHandler {
	return &DatasetsHandler{
		deps:     deps,
		maxBytes: maxBytes,
	}
}

// uploadResponse mirrors the OpenAPI schema for POST /datasets.
type uploadResponse struct {
	ID          string   `json:"id"`
	Source      string   `json:"source"`
	Status      string   `json:"status"`
	Records     int      `json:"records"`
	SkippedRows int      `json:"skippedRows"`
	Unmatched   []string `json:"unmatchedRegions,omitempty"`
}

// HandlePostDataset handles POST /datasets requests. The request body is
// the raw CSV payload; an optional name query parameter labels the snapshot.
func (h *DatasetsHandler) HandlePostDataset(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_dataset"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	source := strings.TrimSpace(r.URL.Query().Get("name"))
	if source == "" {
		source = "upload.csv"
	}

	body := http.MaxBytesReader(w, r.Body, h.maxBytes)
	res, err := h.deps.UploadDataset(r.Context(), source, body)
	if err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", WrapKind(op, ErrBadRequest, err))
		case errors.Is(err, dataset.ErrDataUnavailable),
			errors.Is(err, dataset.ErrNoRegionColumn),
			errors.Is(err, dataset.ErrNoValueColumn),
			errors.Is(err, service.ErrEmptyUpload):
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		default:
			status, code := statusForError(err)
			writeError(w, status, code, Wrap(op, err))
		}
		return
	}

	writeJSON(w, http.StatusCreated, uploadResponse{
		ID:          res.ID,
		Source:      res.Source,
		Status:      "loaded",
		Records:     res.Records,
		SkippedRows: res.SkippedRows,
		Unmatched:   res.Unmatched,
	})
}
