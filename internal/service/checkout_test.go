package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zyraa/storefront/internal/domain"
	"github.com/zyraa/storefront/internal/pricing"
	"github.com/zyraa/storefront/internal/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func checkoutFixture(t *testing.T) (*checkoutService, CartService, OrderLedger) {
	t.Helper()

	store := storage.NewMemoryStore()
	calc := pricing.NewCalculator(
		pricing.NewFlatRateShipping(domain.NewAmount("100")),
		pricing.NewPercentageTax(0.18),
	)
	cart := NewCartService(store, calc, discardLogger(), nil, false)
	ledger := NewOrderLedger(store, discardLogger(), nil)

	checkout := NewCheckoutService(cart, ledger, discardLogger(), nil).(*checkoutService)
	return checkout, cart, ledger
}

func TestCheckout_PlaceOrder(t *testing.T) {
	checkout, cart, ledger := checkoutFixture(t)
	ctx := context.Background()

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	checkout.now = func() time.Time { return fixed }
	checkout.newID = func(t time.Time) string { return "ORD-TEST-1" }

	_, err := cart.AddItem(ctx, domain.LineItem{
		ID:        "p1",
		Name:      "Linen Shirt",
		UnitPrice: domain.NewAmount("2500"),
		Quantity:  2,
	})
	require.NoError(t, err)

	meta := domain.OrderMetadata{
		Customer:      map[string]string{"fullName": "Asha Rao", "email": "asha@example.com"},
		Delivery:      map[string]string{"address": "14 Lake Rd", "city": "Pune"},
		PaymentMethod: "cod",
	}

	order, err := checkout.PlaceOrder(ctx, meta)
	require.NoError(t, err)

	assert.Equal(t, "ORD-TEST-1", order.ID)
	assert.Equal(t, domain.OrderStatusConfirmed, order.Status)
	assert.Equal(t, fixed, order.CreatedAt)
	assert.Equal(t, "5000.00", order.Subtotal.Display())
	assert.Equal(t, "100.00", order.Shipping.Display())
	assert.Equal(t, "900.00", order.Tax.Display())
	assert.Equal(t, "6000.00", order.Total.Display())
	assert.Equal(t, "cod", order.PaymentMethod)
	assert.Equal(t, "Pune", order.Delivery["city"])

	// The cart is cleared and the order is in the ledger.
	assert.Empty(t, cart.Summary().Items)
	found, err := ledger.FindByID("ORD-TEST-1")
	require.NoError(t, err)
	assert.True(t, found.Total.Equal(order.Total))
}

func TestCheckout_PlaceOrder_EmptyCart(t *testing.T) {
	checkout, _, ledger := checkoutFixture(t)

	_, err := checkout.PlaceOrder(context.Background(), domain.OrderMetadata{})
	assert.True(t, errors.Is(err, domain.ErrEmptyCart))
	assert.Empty(t, ledger.List())
}

func TestCheckout_PlaceOrder_OrderImmutableAfterCartMutation(t *testing.T) {
	checkout, cart, ledger := checkoutFixture(t)
	ctx := context.Background()

	_, err := cart.AddItem(ctx, domain.LineItem{
		ID:        "p1",
		Name:      "Linen Shirt",
		UnitPrice: domain.NewAmount("1299"),
		Quantity:  1,
	})
	require.NoError(t, err)

	order, err := checkout.PlaceOrder(ctx, domain.OrderMetadata{})
	require.NoError(t, err)

	// New cart activity after checkout never leaks into the placed order.
	_, err = cart.AddItem(ctx, domain.LineItem{
		ID:        "p2",
		Name:      "Denim Jacket",
		UnitPrice: domain.NewAmount("2499"),
		Quantity:  4,
	})
	require.NoError(t, err)

	found, err := ledger.FindByID(order.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "p1", found.Items[0].ID)
	assert.Equal(t, 1, found.Items[0].Quantity)
}

func TestCheckout_PlaceOrder_DuplicateIDSurfacesConflict(t *testing.T) {
	checkout, cart, _ := checkoutFixture(t)
	ctx := context.Background()

	checkout.newID = func(t time.Time) string { return "ORD-STUCK" }

	_, err := cart.AddItem(ctx, domain.LineItem{ID: "p1", UnitPrice: domain.NewAmount("100"), Quantity: 1})
	require.NoError(t, err)
	_, err = checkout.PlaceOrder(ctx, domain.OrderMetadata{})
	require.NoError(t, err)

	_, err = cart.AddItem(ctx, domain.LineItem{ID: "p2", UnitPrice: domain.NewAmount("200"), Quantity: 1})
	require.NoError(t, err)
	_, err = checkout.PlaceOrder(ctx, domain.OrderMetadata{})
	assert.True(t, errors.Is(err, domain.ErrDuplicateOrderID))

	// The rejected checkout leaves the cart intact for a retry.
	assert.Len(t, cart.Summary().Items, 1)
}

func TestNewOrderID_Format(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	id := newOrderID(at)
	parts := strings.Split(id, "-")
	require.Len(t, parts, 3)
	assert.Equal(t, "ORD", parts[0])
	assert.Equal(t, "1772366400000", parts[1])
	assert.Len(t, parts[2], 8)
	assert.Equal(t, strings.ToUpper(parts[2]), parts[2])

	// Two ids minted in the same millisecond still differ.
	assert.NotEqual(t, id, newOrderID(at))
}
