package routes

import (
	"net/http"

	"github.com/zyraa/storefront/internal/handler/storefront"
)

// StorefrontDeps contains dependencies for the storefront API routes.
type StorefrontDeps struct {
	// Cart
	CartHandler *storefront.CartHandler

	// Checkout
	CheckoutHandler *storefront.CheckoutHandler

	// Order history
	OrdersHandler *storefront.OrdersHandler

	// Prometheus scrape endpoint
	MetricsHandler http.Handler
}
