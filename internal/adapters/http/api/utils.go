// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"

	"github.com/nkedia/crimeatlas/internal/adapters/repository"
	service "github.com/nkedia/crimeatlas/internal/app"
)

// statusForError translates upstream errors into an HTTP status and a
// stable machine-readable code.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrUnknownRegion):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrInvalidGroupBy):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, service.ErrNoBoundaries):
		return http.StatusNotFound, "boundaries_not_configured"
	case errors.Is(err, service.ErrNotStarted), errors.Is(err, repository.ErrNoDataset):
		return http.StatusServiceUnavailable, "data_unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
