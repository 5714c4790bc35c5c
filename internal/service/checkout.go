package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zyraa/storefront/internal/domain"
	"github.com/zyraa/storefront/internal/telemetry"
)

// CheckoutService turns the current cart into an immutable order.
type CheckoutService interface {
	// PlaceOrder snapshots the cart, freezes its totals into a new order,
	// appends it to the ledger, and clears the cart. An empty cart is
	// rejected with ErrEmptyCart.
	PlaceOrder(ctx context.Context, meta domain.OrderMetadata) (*domain.Order, error)
}

type checkoutService struct {
	cart    CartService
	ledger  OrderLedger
	logger  *slog.Logger
	metrics *telemetry.BusinessMetrics

	// Injectable for tests.
	now   func() time.Time
	newID func(t time.Time) string
}

// NewCheckoutService creates the order factory over a cart and ledger.
func NewCheckoutService(cart CartService, ledger OrderLedger, logger *slog.Logger, metrics *telemetry.BusinessMetrics) CheckoutService {
	return &checkoutService{
		cart:    cart,
		ledger:  ledger,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
		newID:   newOrderID,
	}
}

// newOrderID builds an order id from the creation time plus a random
// suffix. The millisecond timestamp keeps ids sortable; the suffix keeps
// them unique when two orders land in the same millisecond.
func newOrderID(t time.Time) string {
	suffix := strings.ToUpper(uuid.NewString()[:8])
	return fmt.Sprintf("ORD-%d-%s", t.UnixMilli(), suffix)
}

// PlaceOrder implements CheckoutService.
func (s *checkoutService) PlaceOrder(ctx context.Context, meta domain.OrderMetadata) (*domain.Order, error) {
	summary := s.cart.Summary()
	if len(summary.Items) == 0 {
		s.metrics.RecordCheckoutRejected("empty_cart")
		return nil, domain.WrapError(domain.ErrEmptyCart, domain.EINVALID, "checkout.place", domain.ErrEmptyCart.Message)
	}

	createdAt := s.now()
	order := domain.Order{
		ID:            s.newID(createdAt),
		Items:         domain.CloneItems(summary.Items),
		Subtotal:      summary.Subtotal,
		Shipping:      summary.Shipping,
		Tax:           summary.Tax,
		Total:         summary.Total,
		Status:        domain.OrderStatusConfirmed,
		CreatedAt:     createdAt,
		Customer:      domain.CloneMetadata(meta.Customer),
		Delivery:      domain.CloneMetadata(meta.Delivery),
		PaymentMethod: meta.PaymentMethod,
	}

	if err := s.ledger.Append(ctx, order); err != nil {
		return nil, err
	}

	// The order is committed; clearing the cart afterwards keeps checkout
	// effectively atomic under the single-writer contract.
	if err := s.cart.Clear(ctx); err != nil {
		s.logger.Warn("failed to clear cart after checkout", "order_id", order.ID, "error", err)
	}

	s.metrics.RecordOrder(order)
	s.metrics.RecordCartCleared("purchase")
	s.logger.Info("order placed",
		"order_id", order.ID,
		"items", len(order.Items),
		"total", order.Total.Display(),
	)

	placed := cloneOrder(order)
	return &placed, nil
}
