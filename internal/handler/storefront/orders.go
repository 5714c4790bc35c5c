package storefront

import (
	"log/slog"
	"net/http"

	"github.com/zyraa/storefront/internal/handler"
	"github.com/zyraa/storefront/internal/service"
)

// OrdersHandler exposes the order ledger, read-only.
type OrdersHandler struct {
	ledger service.OrderLedger
	logger *slog.Logger
}

// NewOrdersHandler creates a new orders handler.
func NewOrdersHandler(ledger service.OrderLedger, logger *slog.Logger) *OrdersHandler {
	return &OrdersHandler{
		ledger: ledger,
		logger: logger,
	}
}

// List handles GET /orders
func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	orders := h.ledger.List()
	handler.JSON(w, http.StatusOK, map[string]any{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetByID handles GET /orders/{id}
func (h *OrdersHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	order, err := h.ledger.FindByID(r.PathValue("id"))
	if err != nil {
		handler.Error(w, h.logger, err)
		return
	}

	handler.JSON(w, http.StatusOK, order)
}
