package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/zyraa/storefront/internal/domain"
	"github.com/zyraa/storefront/internal/storage"
	"github.com/zyraa/storefront/internal/telemetry"
)

// OrderLedger is the append-only record of placed orders.
type OrderLedger interface {
	// Load restores the ledger from the persistence bridge. An absent
	// document yields an empty ledger, not an error.
	Load(ctx context.Context) error

	// Append records a new order. Ids must be unique across the ledger.
	Append(ctx context.Context, order domain.Order) error

	// List returns all orders, newest first. The returned orders are
	// independent copies.
	List() []domain.Order

	// FindByID returns the order with that id, or ErrOrderNotFound.
	FindByID(id string) (*domain.Order, error)

	// Flush writes the ledger to the persistence bridge, surfacing the
	// outcome.
	Flush(ctx context.Context) error
}

type orderLedger struct {
	mu     sync.RWMutex
	orders []domain.Order // newest first
	ids    map[string]int // order id -> position in orders

	store   storage.Store
	logger  *slog.Logger
	metrics *telemetry.BusinessMetrics
}

// NewOrderLedger creates a ledger synchronized to the given persistence
// bridge.
func NewOrderLedger(store storage.Store, logger *slog.Logger, metrics *telemetry.BusinessMetrics) OrderLedger {
	return &orderLedger{
		ids:     make(map[string]int),
		store:   store,
		logger:  logger,
		metrics: metrics,
	}
}

// Load restores the ledger from the persistence bridge. The persisted
// document is a JSON array already in newest-first order.
func (l *orderLedger) Load(ctx context.Context) error {
	data, found, err := l.store.Get(ctx, storage.KeyOrders)
	if err != nil {
		return domain.WrapError(err, domain.EINTERNAL, "orders.load", "failed to read orders from store")
	}
	if !found {
		return nil
	}

	var orders []domain.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return domain.WrapError(err, domain.EINTERNAL, "orders.load", "failed to decode persisted orders")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.orders = nil
	l.ids = make(map[string]int, len(orders))
	for _, order := range orders {
		if order.ID == "" {
			l.logger.Warn("dropping persisted order without id")
			continue
		}
		if _, dup := l.ids[order.ID]; dup {
			l.logger.Warn("dropping duplicate persisted order", "order_id", order.ID)
			continue
		}
		l.ids[order.ID] = len(l.orders)
		l.orders = append(l.orders, order)
	}

	return nil
}

// Append records a new order at the head of the ledger.
func (l *orderLedger) Append(ctx context.Context, order domain.Order) error {
	if order.ID == "" {
		return domain.Invalid("orders.append", "Order id is required")
	}

	l.mu.Lock()
	if _, dup := l.ids[order.ID]; dup {
		l.mu.Unlock()
		return domain.WrapError(domain.ErrDuplicateOrderID, domain.ECONFLICT, "orders.append", domain.ErrDuplicateOrderID.Message)
	}

	l.orders = append([]domain.Order{order}, l.orders...)
	l.ids = make(map[string]int, len(l.orders))
	for i, o := range l.orders {
		l.ids[o.ID] = i
	}
	l.mu.Unlock()

	l.sync(ctx)
	return nil
}

// List returns all orders, newest first.
func (l *orderLedger) List() []domain.Order {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.Order, len(l.orders))
	for i, order := range l.orders {
		out[i] = cloneOrder(order)
	}
	return out
}

// FindByID returns the order with that id.
func (l *orderLedger) FindByID(id string) (*domain.Order, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i, ok := l.ids[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrOrderNotFound, domain.ENOTFOUND, "orders.find", domain.ErrOrderNotFound.Message)
	}

	order := cloneOrder(l.orders[i])
	return &order, nil
}

// Flush writes the ledger to the bridge, surfacing failures.
func (l *orderLedger) Flush(ctx context.Context) error {
	l.mu.RLock()
	orders := make([]domain.Order, len(l.orders))
	copy(orders, l.orders)
	l.mu.RUnlock()

	data, err := json.Marshal(orders)
	if err != nil {
		return domain.WrapError(err, domain.EINTERNAL, "orders.flush", "failed to encode orders")
	}

	if err := l.store.Put(ctx, storage.KeyOrders, data); err != nil {
		return domain.WrapError(err, domain.EINTERNAL, "orders.flush", "failed to write orders to store")
	}

	return nil
}

// sync is the best-effort write after an append. The order is already
// committed in memory; a failed write is logged and counted only.
func (l *orderLedger) sync(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), syncTimeout)
	defer cancel()

	if err := l.Flush(ctx); err != nil {
		l.logger.Warn("order ledger sync failed", "error", err)
		l.metrics.RecordSyncFailure(storage.KeyOrders)
	}
}

// cloneOrder deep-copies an order so callers cannot mutate ledger state.
func cloneOrder(o domain.Order) domain.Order {
	o.Items = domain.CloneItems(o.Items)
	o.Customer = domain.CloneMetadata(o.Customer)
	o.Delivery = domain.CloneMetadata(o.Delivery)
	return o
}
