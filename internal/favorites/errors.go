package favorites

import (
	"errors"
	"net/http"

	"promptvault/pkg/repository"
)

// Domain errors for favorite operations.
var (
	ErrNotFound       = errors.New("favorite not found")
	ErrPromptNotFound = errors.New("prompt not found")
	ErrDuplicate      = errors.New("favorite already exists")
)

// MapHTTPStatus maps favorite domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrPromptNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, repository.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
