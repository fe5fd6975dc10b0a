package settings

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"promptvault/pkg/handlers"
	"promptvault/pkg/routes"
)

// Handler provides HTTP endpoints for settings operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "settings"),
	}
}

// Routes returns the route group definition for settings endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/settings",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{key}", Handler: h.Get},
			{Method: "PUT", Pattern: "/{key}", Handler: h.Set},
		},
	}
}

// Get returns the effective value of a setting, stored or default.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	setting, err := h.sys.Get(r.Context(), r.PathValue("key"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, setting)
}

// Set replaces the stored value of a setting.
func (h *Handler) Set(w http.ResponseWriter, r *http.Request) {
	var cmd UpdateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	setting, err := h.sys.Set(r.Context(), r.PathValue("key"), cmd.Value)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, setting)
}
