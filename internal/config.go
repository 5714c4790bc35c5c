package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	LogLevel string
	Port     uint16
	Store    StoreConfig
	Pricing  PricingConfig
	Cart     CartConfig
}

// StoreConfig selects the persistence bridge backing the cart and the order
// ledger. The "local" provider keeps one JSON document per key under
// DataPath; "redis" keeps the same documents under RedisAddr; "memory" is
// ephemeral and intended for tests.
type StoreConfig struct {
	Provider  string
	DataPath  string
	RedisAddr string
}

// PricingConfig holds the storefront pricing policy constants.
type PricingConfig struct {
	// CurrencySymbol is the glyph stripped when parsing formatted prices
	// coming from the catalog (e.g., "₹1,299.00").
	CurrencySymbol string

	// ShippingFlat is the flat shipping fee in the base currency unit.
	ShippingFlat string

	// TaxRate is the fractional tax rate applied to the subtotal (0.18 = 18%).
	TaxRate float64
}

// CartConfig holds cart behavior knobs.
type CartConfig struct {
	// MergeByVariant widens the line-merge key from product id to
	// id+variant, so two sizes of the same product keep separate lines.
	// Off by default to match the legacy storefront behavior.
	MergeByVariant bool
}

func NewConfig() (*Config, error) {
	// Try to load .env from current directory, then walk up to find it (max 2 levels)
	err := godotenv.Load()
	if err != nil {
		dir, _ := os.Getwd()
		found := false
		for i := 0; i < 2; i++ {
			dir = filepath.Join(dir, "..")
			if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
				found = true
				break
			}
		}
		if !found {
			slog.Default().Warn("Warning: .env file not found, using environment variables and defaults")
		}
	}

	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Port:     getEnvInt("PORT", 3000),
		Store: StoreConfig{
			Provider:  getEnv("STORE_PROVIDER", "local"),
			DataPath:  getEnv("DATA_PATH", "./data"),
			RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
		Pricing: PricingConfig{
			CurrencySymbol: getEnv("CURRENCY_SYMBOL", "₹"),
			ShippingFlat:   getEnv("SHIPPING_FLAT", "100"),
			TaxRate:        getEnvFloat("TAX_RATE", 0.18),
		},
		Cart: CartConfig{
			MergeByVariant: getEnvBool("CART_MERGE_VARIANT", false),
		},
	}

	// Validate env
	validEnv := cfg.Env == "dev" || cfg.Env == "prod"
	if !validEnv {
		slog.Default().Warn("Invalid environment. Using default: prod", slog.String("env", cfg.Env))
		cfg.Env = "prod"
	}

	// Validate log level
	validLevel := cfg.LogLevel == "info" || cfg.LogLevel == "debug" || cfg.LogLevel == "warn" || cfg.LogLevel == "error"
	if !validLevel {
		slog.Default().Warn("Invalid log level. Using default: info", slog.String("value", cfg.LogLevel))
		cfg.LogLevel = "info"
	}

	if cfg.Pricing.TaxRate < 0 || cfg.Pricing.TaxRate >= 1 {
		return nil, fmt.Errorf("TAX_RATE must be in [0, 1), got %v", cfg.Pricing.TaxRate)
	}

	if cfg.Store.Provider == "redis" && cfg.Store.RedisAddr == "" {
		return nil, fmt.Errorf("REDIS_ADDR required when using the redis store provider")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue uint16) uint16 {
	if value := os.Getenv(key); value != "" {
		var intValue uint16
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		var floatValue float64
		if _, err := fmt.Sscanf(value, "%f", &floatValue); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
