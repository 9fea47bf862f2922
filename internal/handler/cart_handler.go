package handler

import (
	"net/http"

	"cart-bundler/internal/model"
	"cart-bundler/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler serves the cart functions called by the storefront host.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// Transform handles POST /api/cart/transform requests.
func (h *CartHandler) Transform(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, h.logger)
		return
	}

	var input model.TransformInput
	if err := decodeBody(w, r, &input); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	result, err := h.service.Transform(r.Context(), &input)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Discount handles POST /api/cart/discount requests.
func (h *CartHandler) Discount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, h.logger)
		return
	}

	var input model.DiscountInput
	if err := decodeBody(w, r, &input); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	result, err := h.service.Discount(r.Context(), &input)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
