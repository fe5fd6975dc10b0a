package drafts

import (
	"errors"
	"net/http"
)

// Domain errors for draft operations.
var (
	ErrUnknownProvider  = errors.New("unknown draft provider")
	ErrValidation       = errors.New("draft request validation failed")
	ErrGenerationFailed = errors.New("draft generation failed")
)

// MapHTTPStatus maps draft domain errors to HTTP status codes. Provider
// failures are upstream faults, reported as bad gateway.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnknownProvider), errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrGenerationFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
