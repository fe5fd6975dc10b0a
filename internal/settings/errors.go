package settings

import (
	"errors"
	"net/http"

	"promptvault/pkg/repository"
)

// Domain errors for settings operations.
var (
	ErrUnknownKey = errors.New("unknown setting key")
)

// MapHTTPStatus maps settings domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnknownKey):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
