package cache

import (
	"context"
	"time"
)

// Cache stores short-lived presentation state such as the current preview of
// a browser session. Catalog responses are never stored here.
type Cache interface {
	// Get retrieves a value; a missing or expired key yields nil, nil
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with expiration; zero means no expiration
	Set(ctx context.Context, key string, value []byte, expiration time.Duration) error

	Delete(ctx context.Context, key string) error

	Exists(ctx context.Context, key string) (bool, error)

	Close() error

	Health(ctx context.Context) error
}

// New returns a Valkey-backed cache when valkeyURL is set and an in-process
// cache bounded to maxItems otherwise.
func New(valkeyURL string, maxItems int) (Cache, error) {
	if valkeyURL == "" {
		return NewMemoryCache(maxItems), nil
	}
	return NewValkeyCache(valkeyURL)
}

// CacheError represents a cache operation error
type CacheError struct {
	Operation string
	Key       string
	Err       error
}

func (e *CacheError) Error() string {
	return "cache " + e.Operation + " failed for key '" + e.Key + "': " + e.Err.Error()
}

func (e *CacheError) Unwrap() error {
	return e.Err
}
