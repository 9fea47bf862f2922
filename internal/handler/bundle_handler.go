package handler

import (
	"net/http"
	"strconv"
	"strings"

	"cart-bundler/internal/model"
	"cart-bundler/internal/service"

	"github.com/rs/zerolog"
)

const bundlesPath = "/api/bundles/"

// BundleHandler handles bundle catalog HTTP requests.
type BundleHandler struct {
	service service.BundleService
	logger  zerolog.Logger
}

// NewBundleHandler creates a new bundle handler.
func NewBundleHandler(service service.BundleService, logger zerolog.Logger) *BundleHandler {
	return &BundleHandler{
		service: service,
		logger:  logger.With().Str("handler", "bundle").Logger(),
	}
}

// GetAll handles GET /api/bundles requests with pagination.
func (h *BundleHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, h.logger)
		return
	}

	// Parse query parameters
	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")

	limit := 10 // default
	if limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid limit parameter", h.logger)
			return
		}
	}

	offset := 0 // default
	if offsetStr != "" {
		var err error
		offset, err = strconv.Atoi(offsetStr)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid offset parameter", h.logger)
			return
		}
	}

	bundles, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, bundles)
}

// Item handles requests for a single bundle: GET, PUT and DELETE on
// /api/bundles/{id} and GET on /api/bundles/{id}/attribute.
func (h *BundleHandler) Item(w http.ResponseWriter, r *http.Request) {
	id, sub, ok := parseBundlePath(r.URL.Path)
	if !ok {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidBundleID, "invalid bundle ID", h.logger)
		return
	}

	switch {
	case sub == "attribute" && r.Method == http.MethodGet:
		h.attribute(w, r, id)
	case sub != "":
		writeError(w, r, http.StatusNotFound, model.ErrCodeBundleNotFound, "not found", h.logger)
	case r.Method == http.MethodGet:
		h.get(w, r, id)
	case r.Method == http.MethodPut:
		h.put(w, r, id)
	case r.Method == http.MethodDelete:
		h.delete(w, r, id)
	default:
		methodNotAllowed(w, r, h.logger)
	}
}

func (h *BundleHandler) get(w http.ResponseWriter, r *http.Request, id int) {
	record, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (h *BundleHandler) put(w http.ResponseWriter, r *http.Request, id int) {
	var req model.BundleRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	record, err := h.service.Put(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (h *BundleHandler) delete(w http.ResponseWriter, r *http.Request, id int) {
	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *BundleHandler) attribute(w http.ResponseWriter, r *http.Request, id int) {
	attr, err := h.service.AttributeFor(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, attr)
}

// parseBundlePath splits /api/bundles/{id}[/{sub}] into its parts.
func parseBundlePath(path string) (int, string, bool) {
	rest, found := strings.CutPrefix(path, bundlesPath)
	if !found || rest == "" {
		return 0, "", false
	}

	idStr, sub, _ := strings.Cut(strings.TrimSuffix(rest, "/"), "/")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return 0, "", false
	}

	return id, sub, true
}
