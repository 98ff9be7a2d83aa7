package cache

import (
	"context"
	"sync"
	"time"
)

type cacheItem struct {
	data      []byte
	expiresAt time.Time // zero means no expiration
}

func (i cacheItem) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && !now.Before(i.expiresAt)
}

// memoryCache is an in-process Cache with a bounded number of entries
type memoryCache struct {
	items    map[string]cacheItem
	maxItems int
	now      func() time.Time
	mu       sync.RWMutex
}

// NewMemoryCache creates an in-process cache. maxItems <= 0 means unbounded.
func NewMemoryCache(maxItems int) Cache {
	return &memoryCache{
		items:    make(map[string]cacheItem),
		maxItems: maxItems,
		now:      time.Now,
	}
}

// Get retrieves a value, dropping it if it has expired
func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	item, exists := c.items[key]
	c.mu.RUnlock()

	if !exists {
		return nil, nil
	}

	if item.expired(c.now()) {
		c.mu.Lock()
		// Double-check after acquiring write lock
		if item, exists := c.items[key]; exists && item.expired(c.now()) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, nil
	}

	return item.data, nil
}

// Set stores a value, evicting the entry closest to expiry when full
func (c *memoryCache) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; !exists && c.maxItems > 0 && len(c.items) >= c.maxItems {
		c.evictLocked()
	}

	item := cacheItem{data: append([]byte(nil), value...)}
	if expiration > 0 {
		item.expiresAt = c.now().Add(expiration)
	}
	c.items[key] = item

	return nil
}

// Delete removes a key
func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
	return nil
}

// Exists reports whether an unexpired key is present
func (c *memoryCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, exists := c.items[key]
	return exists && !item.expired(c.now()), nil
}

// Close drops every entry
func (c *memoryCache) Close() error {
	c.mu.Lock()
	c.items = make(map[string]cacheItem)
	c.mu.Unlock()
	return nil
}

// Health always succeeds for the in-process cache
func (c *memoryCache) Health(ctx context.Context) error {
	return nil
}

// evictLocked drops expired entries and, if still full, the entry expiring
// first. Entries without expiration go last.
func (c *memoryCache) evictLocked() {
	now := c.now()
	for k, item := range c.items {
		if item.expired(now) {
			delete(c.items, k)
		}
	}
	if len(c.items) < c.maxItems {
		return
	}

	victim := ""
	var earliest time.Time
	for k, item := range c.items {
		if item.expiresAt.IsZero() {
			continue
		}
		if victim == "" || item.expiresAt.Before(earliest) {
			victim = k
			earliest = item.expiresAt
		}
	}
	if victim == "" {
		for k := range c.items {
			victim = k
			break
		}
	}
	delete(c.items, victim)
}
