package cache

import (
	"context"
	"time"
)

// Cache defines the interface for caching services.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Noop is a Cache that stores nothing. Used when no cache backend is
// configured so callers never have to nil-check.
type Noop struct{}

// Get always reports a miss.
func (Noop) Get(ctx context.Context, key string) (string, error) { return "", nil }

// Set discards the value.
func (Noop) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return nil
}

// Delete does nothing.
func (Noop) Delete(ctx context.Context, key string) error { return nil }
