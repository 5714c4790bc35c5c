package routes

import (
	"net/http"

	"github.com/zyraa/storefront/internal/handler"
	"github.com/zyraa/storefront/internal/router"
)

// RegisterStorefrontRoutes registers all customer-facing storefront routes.
// The surface mirrors the SPA's cart, checkout, and order history calls.
func RegisterStorefrontRoutes(r *router.Router, deps StorefrontDeps) {
	// Shopping cart
	r.Get("/cart", deps.CartHandler.View)
	r.Post("/cart/items", deps.CartHandler.Add)
	r.Patch("/cart/items/{id}", deps.CartHandler.UpdateQuantity)
	r.Delete("/cart/items/{id}", deps.CartHandler.Remove)
	r.Delete("/cart", deps.CartHandler.Clear)

	// Checkout
	r.Post("/checkout", deps.CheckoutHandler.Place)

	// Order history
	r.Get("/orders", deps.OrdersHandler.List)
	r.Get("/orders/{id}", deps.OrdersHandler.GetByID)

	// Operational endpoints
	r.Get("/healthz", healthz)
	if deps.MetricsHandler != nil {
		r.Handle(http.MethodGet, "/metrics", deps.MetricsHandler)
	}
}

// healthz reports liveness.
func healthz(w http.ResponseWriter, r *http.Request) {
	handler.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
