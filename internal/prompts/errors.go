package prompts

import (
	"errors"
	"net/http"

	"promptvault/pkg/repository"
)

// Domain errors for prompt operations.
var (
	ErrNotFound        = errors.New("prompt not found")
	ErrVersionNotFound = errors.New("prompt version not found")
	ErrValidation      = errors.New("prompt validation failed")
	ErrConflict        = errors.New("prompt was modified concurrently")
)

// MapHTTPStatus maps prompt domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrVersionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, repository.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
