package storage

import (
	"context"

	"github.com/zyraa/storefront/internal"
)

// Store is the durable key-value bridge the cart and the order ledger
// synchronize with. The serialized cart and ledger each live under one
// stable key; a restart recovers the latest written state.
//
// Durability here is advisory: callers treat write failures as log-worthy,
// never as a reason to roll back in-memory state.
type Store interface {
	// Get retrieves the value stored under key. An absent key returns
	// found == false with a nil error.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes the value under key. Deleting an absent key is not
	// an error (idempotent).
	Delete(ctx context.Context, key string) error
}

// Well-known keys for the storefront's persisted documents.
const (
	KeyCart   = "cart"
	KeyOrders = "orders"
)

// NewStore creates a Store implementation based on configuration.
// Returns LocalStore for "local", MemoryStore for "memory" and RedisStore
// for "redis".
func NewStore(cfg internal.StoreConfig) (Store, error) {
	switch cfg.Provider {
	case "local", "":
		return NewLocalStore(cfg.DataPath)
	case "memory":
		return NewMemoryStore(), nil
	case "redis":
		return NewRedisStore(cfg.RedisAddr), nil
	default:
		return nil, ErrUnknownProvider(cfg.Provider)
	}
}
