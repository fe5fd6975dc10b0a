package favorites

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"promptvault/pkg/handlers"
	"promptvault/pkg/middleware"
	"promptvault/pkg/pagination"
	"promptvault/pkg/routes"
)

// Handler provides HTTP endpoints for favorite operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler with the given system, logger, and
// pagination config.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "favorites"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for favorite endpoints.
// Removal is not here: deleting a favorite soft-deletes through the
// trash domain.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/favorites",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "POST", Pattern: "/{promptId}", Handler: h.Add},
		},
	}
}

// List returns the acting user's favorites, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.FromQuery(r.URL.Query(), h.pagination)

	var userID *uuid.UUID
	if id, ok := middleware.UserID(r.Context()); ok {
		userID = &id
	}

	result, err := h.sys.List(r.Context(), page, userID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single favorite by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	favorite, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, favorite)
}

// Add snapshots the referenced prompt's content into a new favorite for
// the acting user.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, fmt.Errorf("no authenticated user"))
		return
	}

	promptID, err := uuid.Parse(r.PathValue("promptId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrPromptNotFound)
		return
	}

	favorite, err := h.sys.Add(r.Context(), userID, promptID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, favorite)
}
