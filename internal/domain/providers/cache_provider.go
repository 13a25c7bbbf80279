package providers

import (
	"context"
)

// CacheProvider is a byte-oriented key/value store with expiry. It backs the
// HTTP response cache and the room read cache.
type CacheProvider interface {
	// Get returns the stored bytes. Any error, including an absent key, is
	// treated by callers as a miss.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, expirationSeconds int) error
	Delete(ctx context.Context, key string) error
	// DeletePattern removes every key matching a glob such as "http:cache:/rooms/*"
	DeletePattern(ctx context.Context, pattern string) error
	Exists(ctx context.Context, key string) (bool, error)
}
