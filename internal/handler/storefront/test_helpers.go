package storefront

import (
	"context"
	"io"
	"log/slog"

	"github.com/zyraa/storefront/internal/domain"
)

// mockCartService implements service.CartService with function fields so
// each test overrides only what it needs.
type mockCartService struct {
	LoadFunc           func(ctx context.Context) error
	AddItemFunc        func(ctx context.Context, item domain.LineItem) (*domain.CartSummary, error)
	UpdateQuantityFunc func(ctx context.Context, id string, quantity int) (*domain.CartSummary, error)
	RemoveItemFunc     func(ctx context.Context, id string) (*domain.CartSummary, error)
	ClearFunc          func(ctx context.Context) error
	SummaryFunc        func() *domain.CartSummary
	FlushFunc          func(ctx context.Context) error
}

func (m *mockCartService) Load(ctx context.Context) error {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	return nil
}

func (m *mockCartService) AddItem(ctx context.Context, item domain.LineItem) (*domain.CartSummary, error) {
	return m.AddItemFunc(ctx, item)
}

func (m *mockCartService) UpdateQuantity(ctx context.Context, id string, quantity int) (*domain.CartSummary, error) {
	return m.UpdateQuantityFunc(ctx, id, quantity)
}

func (m *mockCartService) RemoveItem(ctx context.Context, id string) (*domain.CartSummary, error) {
	return m.RemoveItemFunc(ctx, id)
}

func (m *mockCartService) Clear(ctx context.Context) error {
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx)
	}
	return nil
}

func (m *mockCartService) Summary() *domain.CartSummary {
	if m.SummaryFunc != nil {
		return m.SummaryFunc()
	}
	return &domain.CartSummary{}
}

func (m *mockCartService) Flush(ctx context.Context) error {
	if m.FlushFunc != nil {
		return m.FlushFunc(ctx)
	}
	return nil
}

// mockCheckoutService implements service.CheckoutService.
type mockCheckoutService struct {
	PlaceOrderFunc func(ctx context.Context, meta domain.OrderMetadata) (*domain.Order, error)
}

func (m *mockCheckoutService) PlaceOrder(ctx context.Context, meta domain.OrderMetadata) (*domain.Order, error) {
	return m.PlaceOrderFunc(ctx, meta)
}

// mockOrderLedger implements service.OrderLedger.
type mockOrderLedger struct {
	LoadFunc     func(ctx context.Context) error
	AppendFunc   func(ctx context.Context, order domain.Order) error
	ListFunc     func() []domain.Order
	FindByIDFunc func(id string) (*domain.Order, error)
	FlushFunc    func(ctx context.Context) error
}

func (m *mockOrderLedger) Load(ctx context.Context) error {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	return nil
}

func (m *mockOrderLedger) Append(ctx context.Context, order domain.Order) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, order)
	}
	return nil
}

func (m *mockOrderLedger) List() []domain.Order {
	if m.ListFunc != nil {
		return m.ListFunc()
	}
	return nil
}

func (m *mockOrderLedger) FindByID(id string) (*domain.Order, error) {
	return m.FindByIDFunc(id)
}

func (m *mockOrderLedger) Flush(ctx context.Context) error {
	if m.FlushFunc != nil {
		return m.FlushFunc(ctx)
	}
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
