package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/zyraa/storefront/internal/domain"
)

// BusinessMetrics holds Prometheus metrics for business-level observability
// of the cart and checkout funnel.
//
// All record methods are nil-safe so services under test can run without a
// metrics registry.
type BusinessMetrics struct {
	// Cart
	CartUpdated  *prometheus.CounterVec
	CartCleared  *prometheus.CounterVec
	CartValue    prometheus.Histogram
	CartItemsAdd prometheus.Counter

	// Checkout funnel
	CheckoutCompleted prometheus.Counter
	CheckoutRejected  *prometheus.CounterVec

	// Orders
	OrdersCreated  prometheus.Counter
	OrderValue     prometheus.Histogram
	OrderItemCount prometheus.Histogram

	// Persistence bridge
	StoreSyncFailures *prometheus.CounterVec
}

// NewBusinessMetrics creates and registers all business metrics.
func NewBusinessMetrics(namespace string) *BusinessMetrics {
	if namespace == "" {
		namespace = "zyraa"
	}

	subsystem := "business"

	return &BusinessMetrics{
		CartUpdated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_updated_total",
				Help:      "Total cart update operations",
			},
			[]string{"action"}, // action: add, remove, update_quantity
		),
		CartCleared: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_cleared_total",
				Help:      "Total carts cleared (after purchase or manually)",
			},
			[]string{"reason"}, // reason: purchase, manual
		),
		CartValue: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_value",
				Help:      "Cart subtotal at checkout start, in base currency units",
				Buckets:   []float64{100, 500, 1000, 2500, 5000, 10000, 25000, 50000},
			},
		),
		CartItemsAdd: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_items_added_total",
				Help:      "Total items added to carts (quantity-aware)",
			},
		),
		CheckoutCompleted: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "checkout_completed_total",
				Help:      "Total successful checkouts",
			},
		),
		CheckoutRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "checkout_rejected_total",
				Help:      "Total rejected checkout attempts",
			},
			[]string{"reason"}, // reason: empty_cart, invalid_input
		),
		OrdersCreated: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orders_created_total",
				Help:      "Total orders created",
			},
		),
		OrderValue: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_value",
				Help:      "Order grand total distribution in base currency units",
				Buckets:   []float64{100, 500, 1000, 2500, 5000, 10000, 25000, 50000, 100000},
			},
		),
		OrderItemCount: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_item_count",
				Help:      "Number of items per order",
				Buckets:   []float64{1, 2, 3, 5, 10, 15, 20},
			},
		),
		StoreSyncFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "store_sync_failures_total",
				Help:      "Total persistence bridge write failures (state kept in memory)",
			},
			[]string{"key"},
		),
	}
}

// RecordCartUpdate counts one cart mutation by action label.
func (m *BusinessMetrics) RecordCartUpdate(action string) {
	if m == nil {
		return
	}
	m.CartUpdated.WithLabelValues(action).Inc()
}

// RecordCartCleared counts one cart clear by reason.
func (m *BusinessMetrics) RecordCartCleared(reason string) {
	if m == nil {
		return
	}
	m.CartCleared.WithLabelValues(reason).Inc()
}

// RecordItemsAdded counts quantity items entering a cart.
func (m *BusinessMetrics) RecordItemsAdded(quantity int) {
	if m == nil {
		return
	}
	m.CartItemsAdd.Add(float64(quantity))
}

// RecordOrder observes a successfully placed order.
func (m *BusinessMetrics) RecordOrder(order domain.Order) {
	if m == nil {
		return
	}
	m.CheckoutCompleted.Inc()
	m.OrdersCreated.Inc()
	m.OrderValue.Observe(order.Total.Float64())

	count := 0
	for _, item := range order.Items {
		count += item.Quantity
	}
	m.OrderItemCount.Observe(float64(count))
	m.CartValue.Observe(order.Subtotal.Float64())
}

// RecordCheckoutRejected counts a rejected checkout attempt by reason.
func (m *BusinessMetrics) RecordCheckoutRejected(reason string) {
	if m == nil {
		return
	}
	m.CheckoutRejected.WithLabelValues(reason).Inc()
}

// RecordSyncFailure counts one persistence bridge write failure.
func (m *BusinessMetrics) RecordSyncFailure(key string) {
	if m == nil {
		return
	}
	m.StoreSyncFailures.WithLabelValues(key).Inc()
}
