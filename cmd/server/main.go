package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zyraa/storefront/internal"
	"github.com/zyraa/storefront/internal/domain"
	"github.com/zyraa/storefront/internal/handler/storefront"
	"github.com/zyraa/storefront/internal/middleware"
	"github.com/zyraa/storefront/internal/pricing"
	"github.com/zyraa/storefront/internal/router"
	"github.com/zyraa/storefront/internal/routes"
	"github.com/zyraa/storefront/internal/service"
	"github.com/zyraa/storefront/internal/storage"
	"github.com/zyraa/storefront/internal/telemetry"
	"github.com/zyraa/storefront/internal/worker"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize the persistence bridge
	store, err := storage.NewStore(cfg.Store)
	if err != nil {
		return fmt.Errorf("store initialization failed: %w", err)
	}
	if rs, ok := store.(*storage.RedisStore); ok {
		if err := rs.Ping(ctx); err != nil {
			return fmt.Errorf("redis ping failed: %w", err)
		}
	}
	logger.Info("Persistence bridge ready", "provider", cfg.Store.Provider)

	// Metrics
	httpMetrics := middleware.NewMetrics("")
	businessMetrics := telemetry.NewBusinessMetrics("")

	// Pricing rules
	domain.RegisterCurrencyGlyph(cfg.Pricing.CurrencySymbol)
	calc := pricing.NewCalculator(
		pricing.NewFlatRateShipping(domain.NewAmount(cfg.Pricing.ShippingFlat)),
		pricing.NewPercentageTax(cfg.Pricing.TaxRate),
	)

	// Initialize services
	cartService := service.NewCartService(store, calc, logger, businessMetrics, cfg.Cart.MergeByVariant)
	ledger := service.NewOrderLedger(store, logger, businessMetrics)
	checkoutService := service.NewCheckoutService(cartService, ledger, logger, businessMetrics)

	// Restore persisted state
	if err := cartService.Load(ctx); err != nil {
		return fmt.Errorf("cart restore failed: %w", err)
	}
	if err := ledger.Load(ctx); err != nil {
		return fmt.Errorf("order ledger restore failed: %w", err)
	}
	logger.Info("State restored", "cart_items", len(cartService.Summary().Items), "orders", len(ledger.List()))

	// Router with global middleware
	r := router.New(
		router.Recovery(logger),
		router.RequestID(),
		router.CORS([]string{"*"}),
		router.Logger(logger),
		httpMetrics.Middleware,
	)

	routes.RegisterStorefrontRoutes(r, routes.StorefrontDeps{
		CartHandler:     storefront.NewCartHandler(cartService, logger, businessMetrics),
		CheckoutHandler: storefront.NewCheckoutHandler(checkoutService, logger, businessMetrics),
		OrdersHandler:   storefront.NewOrdersHandler(ledger, logger),
		MetricsHandler:  httpMetrics.Handler(),
	})

	// Background snapshot worker as a safety net for missed syncs
	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()
	snapshotWorker := worker.NewWorker(cartService, ledger, worker.Config{}, logger)
	go func() {
		_ = snapshotWorker.Start(workerCtx)
	}()

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting storefront server", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		logger.Info("Shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}

	// Final flush so the next start sees the latest state.
	if err := cartService.Flush(shutdownCtx); err != nil {
		logger.Error("Final cart flush failed", "error", err)
	}
	if err := ledger.Flush(shutdownCtx); err != nil {
		logger.Error("Final order flush failed", "error", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
