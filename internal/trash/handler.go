package trash

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"promptvault/pkg/handlers"
	"promptvault/pkg/middleware"
	"promptvault/pkg/pagination"
	"promptvault/pkg/routes"
)

// Handler provides HTTP endpoints for trash operations.
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
		logger:     logger.With("handler", "trash"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for trash endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/trash",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "DELETE", Pattern: "", Handler: h.PurgeBatch},
			{Method: "POST", Pattern: "/restore", Handler: h.RestoreBatch},
			{Method: "POST", Pattern: "/prompts", Handler: h.SoftDeletePrompts},
			{Method: "POST", Pattern: "/favorites", Handler: h.SoftDeleteFavorites},
			{Method: "POST", Pattern: "/{id}/restore", Handler: h.Restore},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Purge},
		},
	}
}

// SoftDeleteRoutes returns the soft-delete endpoints mounted on the
// source resources: deleting a prompt or favorite moves it to trash.
func (h *Handler) SoftDeleteRoutes() routes.Group {
	return routes.Group{
		Prefix: "",
		Routes: []routes.Route{
			{Method: "DELETE", Pattern: "/prompts/{id}", Handler: h.SoftDeletePrompt},
			{Method: "DELETE", Pattern: "/favorites/{id}", Handler: h.SoftDeleteFavorite},
		},
	}
}

// List returns the acting user's trash entries, newest deletions first.
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

// SoftDeletePrompt moves a prompt to trash.
func (h *Handler) SoftDeletePrompt(w http.ResponseWriter, r *http.Request) {
	h.softDelete(w, r, h.sys.SoftDeletePrompt)
}

// SoftDeleteFavorite moves a favorite to trash.
func (h *Handler) SoftDeleteFavorite(w http.ResponseWriter, r *http.Request) {
	h.softDelete(w, r, h.sys.SoftDeleteFavorite)
}

// SoftDeletePrompts moves a batch of prompts to trash.
func (h *Handler) SoftDeletePrompts(w http.ResponseWriter, r *http.Request) {
	h.softDeleteBatch(w, r, h.sys.SoftDeletePrompts)
}

// SoftDeleteFavorites moves a batch of favorites to trash.
func (h *Handler) SoftDeleteFavorites(w http.ResponseWriter, r *http.Request) {
	h.softDeleteBatch(w, r, h.sys.SoftDeleteFavorites)
}

// Restore moves a single trash entry back to its source table.
func (h *Handler) Restore(w http.ResponseWriter, r *http.Request) {
	id, ok := h.trashID(w, r)
	if !ok {
		return
	}

	if err := h.sys.Restore(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RestoreBatch moves the requested trash entries back to their source
// tables; the whole batch succeeds or none of it does.
func (h *Handler) RestoreBatch(w http.ResponseWriter, r *http.Request) {
	var cmd BatchCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	restored, err := h.sys.RestoreBatch(r.Context(), cmd.IDs)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, BatchResult{Affected: restored})
}

// Purge permanently deletes a single trash entry.
func (h *Handler) Purge(w http.ResponseWriter, r *http.Request) {
	id, ok := h.trashID(w, r)
	if !ok {
		return
	}

	if err := h.sys.PermanentDelete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PurgeBatch permanently deletes the requested trash entries.
func (h *Handler) PurgeBatch(w http.ResponseWriter, r *http.Request) {
	var cmd BatchCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	deleted, err := h.sys.PermanentDeleteBatch(r.Context(), cmd.IDs)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, BatchResult{Affected: deleted})
}

func (h *Handler) softDelete(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, id uuid.UUID) (*Entry, error),
) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrSourceNotFound)
		return
	}

	entry, err := op(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, entry)
}

func (h *Handler) softDeleteBatch(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, ids []uuid.UUID) (int, error),
) {
	var cmd SoftDeleteBatchCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	moved, err := op(r.Context(), cmd.IDs)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, BatchResult{Affected: moved})
}

func (h *Handler) trashID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return 0, false
	}
	return id, true
}
