package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/zyraa/storefront/internal/service"
)

// Config holds snapshot worker configuration
type Config struct {
	// WorkerID uniquely identifies this worker instance
	WorkerID string

	// Interval is how often to snapshot state to the persistence bridge
	Interval time.Duration
}

// Worker periodically flushes cart and ledger state to the persistence
// bridge. Mutations already sync on their own; the worker is a safety net
// that repairs a missed write after a transient store outage.
type Worker struct {
	config Config
	cart   service.CartService
	ledger service.OrderLedger
	logger *slog.Logger
}

// NewWorker creates a new snapshot worker
func NewWorker(cart service.CartService, ledger service.OrderLedger, config Config, logger *slog.Logger) *Worker {
	// Set defaults
	if config.WorkerID == "" {
		config.WorkerID = fmt.Sprintf("worker-%s", uuid.New().String()[:8])
	}
	if config.Interval == 0 {
		config.Interval = 30 * time.Second
	}

	return &Worker{
		config: config,
		cart:   cart,
		ledger: ledger,
		logger: logger,
	}
}

// Start runs the snapshot loop until the context is cancelled
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("snapshot worker starting",
		"worker_id", w.config.WorkerID,
		"interval", w.config.Interval,
	)

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("snapshot worker stopping", "worker_id", w.config.WorkerID)
			return ctx.Err()
		case <-ticker.C:
			w.snapshot(ctx)
		}
	}
}

// snapshot flushes both documents, logging failures independently so one
// broken key does not mask the other.
func (w *Worker) snapshot(ctx context.Context) {
	if err := w.cart.Flush(ctx); err != nil {
		w.logger.Warn("cart snapshot failed", "worker_id", w.config.WorkerID, "error", err)
	}
	if err := w.ledger.Flush(ctx); err != nil {
		w.logger.Warn("order ledger snapshot failed", "worker_id", w.config.WorkerID, "error", err)
	}
}
