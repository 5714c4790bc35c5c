package storefront

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/zyraa/storefront/internal/domain"
	"github.com/zyraa/storefront/internal/handler"
	"github.com/zyraa/storefront/internal/service"
	"github.com/zyraa/storefront/internal/telemetry"
)

// CartHandler handles all cart-related storefront routes.
type CartHandler struct {
	cartService service.CartService
	logger      *slog.Logger
	metrics     *telemetry.BusinessMetrics
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(cartService service.CartService, logger *slog.Logger, metrics *telemetry.BusinessMetrics) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		logger:      logger,
		metrics:     metrics,
	}
}

// View handles GET /cart
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	handler.JSON(w, http.StatusOK, h.cartService.Summary())
}

// Add handles POST /cart/items
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var item domain.LineItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		handler.Error(w, h.logger, domain.WrapError(err, domain.EINVALID, "cart.add", "Invalid request body"))
		return
	}

	summary, err := h.cartService.AddItem(r.Context(), item)
	if err != nil {
		handler.Error(w, h.logger, err)
		return
	}

	handler.JSON(w, http.StatusOK, summary)
}

// updateQuantityRequest is the body for PATCH /cart/items/{id}.
type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateQuantity handles PATCH /cart/items/{id}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.Error(w, h.logger, domain.WrapError(err, domain.EINVALID, "cart.update", "Invalid request body"))
		return
	}

	summary, err := h.cartService.UpdateQuantity(r.Context(), id, req.Quantity)
	if err != nil {
		handler.Error(w, h.logger, err)
		return
	}

	handler.JSON(w, http.StatusOK, summary)
}

// Remove handles DELETE /cart/items/{id}
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	summary, err := h.cartService.RemoveItem(r.Context(), r.PathValue("id"))
	if err != nil {
		handler.Error(w, h.logger, err)
		return
	}

	handler.JSON(w, http.StatusOK, summary)
}

// Clear handles DELETE /cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.cartService.Clear(r.Context()); err != nil {
		handler.Error(w, h.logger, err)
		return
	}

	h.metrics.RecordCartCleared("manual")
	handler.JSON(w, http.StatusOK, h.cartService.Summary())
}
