package drafts

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"promptvault/pkg/handlers"
	"promptvault/pkg/routes"
)

// Handler provides HTTP endpoints for draft operations.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
}

// NewHandler creates a Handler with the given system, logger, and
// upload size limit for the image endpoint.
func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "drafts"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for draft endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/drafts",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/feedback", Handler: h.Feedback},
			{Method: "POST", Pattern: "/keywords", Handler: h.FromKeywords},
			{Method: "POST", Pattern: "/text", Handler: h.FromText},
			{Method: "POST", Pattern: "/image", Handler: h.FromImage},
			{Method: "POST", Pattern: "/compare", Handler: h.Compare},
		},
	}
}

// Feedback revises an existing prompt according to user feedback and
// returns the revision alongside a conversational answer.
func (h *Handler) Feedback(w http.ResponseWriter, r *http.Request) {
	var cmd FeedbackCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Feedback(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// FromKeywords drafts a full prompt from loose keywords.
func (h *Handler) FromKeywords(w http.ResponseWriter, r *http.Request) {
	var cmd KeywordsCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.FromKeywords(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// FromText drafts structured attributes from free text.
func (h *Handler) FromText(w http.ResponseWriter, r *http.Request) {
	var cmd TextCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.FromText(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// FromImage drafts a prompt from an uploaded image. The multipart body
// carries the image under the "image" field and an optional "provider"
// value; the whole request is bounded by the configured upload limit.
func (h *Handler) FromImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, err)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	mime := header.Header.Get("Content-Type")
	if mime == "" {
		mime = "image/png"
	}

	result, err := h.sys.FromImage(r.Context(), r.FormValue("provider"), data, mime)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Compare runs the same draft request against every registered
// provider and returns the side-by-side results.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	var cmd CompareCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	results, err := h.sys.Compare(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, results)
}
