package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zyraa/storefront/internal/domain"
	"github.com/zyraa/storefront/internal/pricing"
	"github.com/zyraa/storefront/internal/service"
	"github.com/zyraa/storefront/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCalculator() *pricing.Calculator {
	return pricing.NewCalculator(
		pricing.NewFlatRateShipping(domain.NewAmount("100")),
		pricing.NewPercentageTax(0.18),
	)
}

func newTestCart(t *testing.T) (service.CartService, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	cart := service.NewCartService(store, testCalculator(), testLogger(), nil, false)
	return cart, store
}

func tshirt(qty int) domain.LineItem {
	return domain.LineItem{
		ID:        "p1",
		Name:      "Linen Shirt",
		UnitPrice: domain.NewAmount("1299"),
		Quantity:  qty,
	}
}

func TestCartService_AddItem(t *testing.T) {
	cart, _ := newTestCart(t)
	ctx := context.Background()

	summary, err := cart.AddItem(ctx, tshirt(2))
	require.NoError(t, err)

	require.Len(t, summary.Items, 1)
	assert.Equal(t, 2, summary.Items[0].Quantity)
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, "2598.00", summary.Subtotal.Display())
}

func TestCartService_AddItem_MergesByProductID(t *testing.T) {
	cart, _ := newTestCart(t)
	ctx := context.Background()

	_, err := cart.AddItem(ctx, tshirt(1))
	require.NoError(t, err)

	// Same product, different variant: default merge key is the id alone,
	// so the lines collapse and the first unit price wins.
	second := tshirt(2)
	second.Variant = "XL"
	second.UnitPrice = domain.NewAmount("1499")
	summary, err := cart.AddItem(ctx, second)
	require.NoError(t, err)

	require.Len(t, summary.Items, 1)
	assert.Equal(t, 3, summary.Items[0].Quantity)
	assert.Equal(t, "1299", summary.Items[0].UnitPrice.String())
}

func TestCartService_AddItem_VariantAwareMerge(t *testing.T) {
	store := storage.NewMemoryStore()
	cart := service.NewCartService(store, testCalculator(), testLogger(), nil, true)
	ctx := context.Background()

	first := tshirt(1)
	first.Variant = "M"
	second := tshirt(1)
	second.Variant = "XL"

	_, err := cart.AddItem(ctx, first)
	require.NoError(t, err)
	summary, err := cart.AddItem(ctx, second)
	require.NoError(t, err)

	assert.Len(t, summary.Items, 2)
}

func TestCartService_AddItem_DefaultsQuantityToOne(t *testing.T) {
	cart, _ := newTestCart(t)

	summary, err := cart.AddItem(context.Background(), tshirt(0))
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Items[0].Quantity)
}

func TestCartService_AddItem_RejectsInvalid(t *testing.T) {
	cart, _ := newTestCart(t)
	ctx := context.Background()

	_, err := cart.AddItem(ctx, domain.LineItem{Quantity: 1})
	assert.True(t, domain.IsCode(err, domain.EINVALID))

	bad := tshirt(-1)
	_, err = cart.AddItem(ctx, bad)
	assert.True(t, errors.Is(err, domain.ErrInvalidQuantity))
}

func TestCartService_UpdateQuantity(t *testing.T) {
	cart, _ := newTestCart(t)
	ctx := context.Background()

	_, err := cart.AddItem(ctx, tshirt(1))
	require.NoError(t, err)

	summary, err := cart.UpdateQuantity(ctx, "p1", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Items[0].Quantity)
}

func TestCartService_UpdateQuantity_NonPositiveRemoves(t *testing.T) {
	cart, _ := newTestCart(t)
	ctx := context.Background()

	_, err := cart.AddItem(ctx, tshirt(3))
	require.NoError(t, err)

	summary, err := cart.UpdateQuantity(ctx, "p1", 0)
	require.NoError(t, err)
	assert.Empty(t, summary.Items)

	_, err = cart.AddItem(ctx, tshirt(3))
	require.NoError(t, err)
	summary, err = cart.UpdateQuantity(ctx, "p1", -2)
	require.NoError(t, err)
	assert.Empty(t, summary.Items)
}

func TestCartService_UpdateQuantity_UnknownIDIsNoop(t *testing.T) {
	cart, _ := newTestCart(t)
	ctx := context.Background()

	_, err := cart.AddItem(ctx, tshirt(1))
	require.NoError(t, err)

	summary, err := cart.UpdateQuantity(ctx, "ghost", 4)
	require.NoError(t, err)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, 1, summary.Items[0].Quantity)
}

func TestCartService_RemoveItem_Idempotent(t *testing.T) {
	cart, _ := newTestCart(t)
	ctx := context.Background()

	_, err := cart.AddItem(ctx, tshirt(1))
	require.NoError(t, err)

	summary, err := cart.RemoveItem(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, summary.Items)

	summary, err = cart.RemoveItem(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, summary.Items)
}

func TestCartService_Summary_Totals(t *testing.T) {
	cart, _ := newTestCart(t)
	ctx := context.Background()

	_, err := cart.AddItem(ctx, tshirt(2))
	require.NoError(t, err)
	_, err = cart.AddItem(ctx, domain.LineItem{
		ID:        "p2",
		Name:      "Denim Jacket",
		UnitPrice: domain.NewAmount("2402"),
		Quantity:  1,
	})
	require.NoError(t, err)

	summary := cart.Summary()
	assert.Equal(t, "5000.00", summary.Subtotal.Display())
	assert.Equal(t, "100.00", summary.Shipping.Display())
	assert.Equal(t, "900.00", summary.Tax.Display())
	assert.Equal(t, "6000.00", summary.Total.Display())
	assert.Equal(t, 3, summary.Count)
}

func TestCartService_Summary_SnapshotIsolation(t *testing.T) {
	cart, _ := newTestCart(t)
	ctx := context.Background()

	_, err := cart.AddItem(ctx, tshirt(1))
	require.NoError(t, err)

	snap := cart.Summary()
	snap.Items[0].Quantity = 99

	assert.Equal(t, 1, cart.Summary().Items[0].Quantity)
}

func TestCartService_Clear(t *testing.T) {
	cart, _ := newTestCart(t)
	ctx := context.Background()

	_, err := cart.AddItem(ctx, tshirt(2))
	require.NoError(t, err)

	require.NoError(t, cart.Clear(ctx))
	summary := cart.Summary()
	assert.Empty(t, summary.Items)
	assert.Equal(t, 0, summary.Count)
	assert.True(t, summary.Subtotal.IsZero())
}

func TestCartService_PersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	cart := service.NewCartService(store, testCalculator(), testLogger(), nil, false)
	_, err := cart.AddItem(ctx, tshirt(2))
	require.NoError(t, err)

	// A fresh service over the same store sees the same cart.
	restored := service.NewCartService(store, testCalculator(), testLogger(), nil, false)
	require.NoError(t, restored.Load(ctx))

	summary := restored.Summary()
	require.Len(t, summary.Items, 1)
	assert.Equal(t, 2, summary.Items[0].Quantity)
	assert.Equal(t, "2598.00", summary.Subtotal.Display())
}

func TestCartService_Load_AbsentDocument(t *testing.T) {
	cart, _ := newTestCart(t)
	require.NoError(t, cart.Load(context.Background()))
	assert.Empty(t, cart.Summary().Items)
}

func TestCartService_Load_DropsInvalidLines(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	doc := []byte(`{"items":[{"id":"p1","price":100,"quantity":2},{"id":"","price":50,"quantity":1},{"id":"p2","price":10,"quantity":0}]}`)
	require.NoError(t, store.Put(ctx, storage.KeyCart, doc))

	cart := service.NewCartService(store, testCalculator(), testLogger(), nil, false)
	require.NoError(t, cart.Load(ctx))

	summary := cart.Summary()
	require.Len(t, summary.Items, 1)
	assert.Equal(t, "p1", summary.Items[0].ID)
}

// failingStore rejects every write, for exercising the best-effort sync.
type failingStore struct {
	GetFunc func(ctx context.Context, key string) ([]byte, bool, error)
}

func (f *failingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if f.GetFunc != nil {
		return f.GetFunc(ctx, key)
	}
	return nil, false, nil
}

func (f *failingStore) Put(ctx context.Context, key string, value []byte) error {
	return errors.New("store unavailable")
}

func (f *failingStore) Delete(ctx context.Context, key string) error {
	return errors.New("store unavailable")
}

func TestCartService_SyncFailureKeepsState(t *testing.T) {
	cart := service.NewCartService(&failingStore{}, testCalculator(), testLogger(), nil, false)
	ctx := context.Background()

	summary, err := cart.AddItem(ctx, tshirt(2))
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Count)

	// The in-memory cart stays authoritative even though every write failed.
	assert.Equal(t, 2, cart.Summary().Count)
	assert.Error(t, cart.Flush(ctx))
}
