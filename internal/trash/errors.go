package trash

import (
	"errors"
	"net/http"

	"promptvault/pkg/repository"
)

// Domain errors for trash operations.
var (
	ErrNotFound       = errors.New("trash entry not found")
	ErrSourceNotFound = errors.New("source record not found")
	ErrValidation     = errors.New("trash request validation failed")
	ErrRestoreClash   = errors.New("a record with the original id already exists")
)

// MapHTTPStatus maps trash domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrSourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrRestoreClash):
		return http.StatusConflict
	case errors.Is(err, repository.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
