package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestMemoryCache returns a memory cache with a controllable clock
func newTestMemoryCache(maxItems int) (*memoryCache, *time.Time) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCache(maxItems).(*memoryCache)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestMemoryCache_Basic(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(0)
	defer cache.Close()

	err := cache.Set(ctx, "key1", []byte("value1"), time.Hour)
	require.NoError(t, err)

	value, err := cache.Get(ctx, "key1")
	require.NoError(t, err)
	assert.Equal(t, []byte("value1"), value)

	exists, err := cache.Exists(ctx, "key1")
	require.NoError(t, err)
	assert.True(t, exists)

	// Missing keys are not errors
	value, err = cache.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestMemoryCache_Delete(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(0)

	require.NoError(t, cache.Set(ctx, "key1", []byte("value1"), time.Hour))
	require.NoError(t, cache.Delete(ctx, "key1"))

	exists, err := cache.Exists(ctx, "key1")
	require.NoError(t, err)
	assert.False(t, exists)

	value, err := cache.Get(ctx, "key1")
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestMemoryCache_Overwrite(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(0)

	require.NoError(t, cache.Set(ctx, "key1", []byte("value1"), time.Hour))
	require.NoError(t, cache.Set(ctx, "key1", []byte("value2"), time.Hour))

	value, err := cache.Get(ctx, "key1")
	require.NoError(t, err)
	assert.Equal(t, []byte("value2"), value)
}

func TestMemoryCache_CopiesValue(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(0)

	data := []byte("value")
	require.NoError(t, cache.Set(ctx, "key", data, 0))
	data[0] = 'X'

	value, err := cache.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), value)
}

func TestMemoryCache_Expiration(t *testing.T) {
	ctx := context.Background()
	cache, now := newTestMemoryCache(0)

	require.NoError(t, cache.Set(ctx, "short", []byte("a"), time.Minute))
	require.NoError(t, cache.Set(ctx, "forever", []byte("b"), 0))

	*now = now.Add(2 * time.Minute)

	value, err := cache.Get(ctx, "short")
	require.NoError(t, err)
	assert.Nil(t, value)

	exists, err := cache.Exists(ctx, "short")
	require.NoError(t, err)
	assert.False(t, exists)

	value, err = cache.Get(ctx, "forever")
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), value)
}

func TestMemoryCache_Eviction(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(c *memoryCache, now *time.Time)
		evicted string
	}{
		{
			name: "evicts entry expiring first",
			setup: func(c *memoryCache, now *time.Time) {
				ctx := context.Background()
				c.Set(ctx, "late", []byte("1"), time.Hour)
				c.Set(ctx, "early", []byte("2"), time.Minute)
			},
			evicted: "early",
		},
		{
			name: "prefers expired entries",
			setup: func(c *memoryCache, now *time.Time) {
				ctx := context.Background()
				c.Set(ctx, "stale", []byte("1"), time.Second)
				c.Set(ctx, "fresh", []byte("2"), time.Second*30)
				*now = now.Add(10 * time.Second)
			},
			evicted: "stale",
		},
		{
			name: "keeps entries without expiration over expiring ones",
			setup: func(c *memoryCache, now *time.Time) {
				ctx := context.Background()
				c.Set(ctx, "pinned", []byte("1"), 0)
				c.Set(ctx, "expiring", []byte("2"), time.Hour)
			},
			evicted: "expiring",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			c, now := newTestMemoryCache(2)
			tt.setup(c, now)

			require.NoError(t, c.Set(ctx, "new", []byte("3"), time.Hour))

			exists, err := c.Exists(ctx, tt.evicted)
			require.NoError(t, err)
			assert.False(t, exists)

			exists, err = c.Exists(ctx, "new")
			require.NoError(t, err)
			assert.True(t, exists)
			assert.LessOrEqual(t, len(c.items), 2)
		})
	}
}

func TestMemoryCache_OverwriteDoesNotEvict(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestMemoryCache(2)

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Hour))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), time.Hour))
	require.NoError(t, c.Set(ctx, "a", []byte("3"), time.Hour))

	assert.Len(t, c.items, 2)
}

func TestMemoryCache_HealthAndClose(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(0)

	assert.NoError(t, cache.Health(ctx))
	require.NoError(t, cache.Set(ctx, "key", []byte("v"), 0))
	require.NoError(t, cache.Close())

	value, err := cache.Get(ctx, "key")
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestNew_WithoutValkeyURL(t *testing.T) {
	c, err := New("", 10)
	require.NoError(t, err)
	_, ok := c.(*memoryCache)
	assert.True(t, ok)
}

func TestParseValkeyURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		address  string
		password string
		wantErr  bool
	}{
		{name: "host only", url: "valkey://localhost:6379", address: "localhost:6379"},
		{name: "with password", url: "valkey://:secret@cache:6379", address: "cache:6379", password: "secret"},
		{name: "missing host", url: "localhost", wantErr: true},
		{name: "invalid", url: "://bad", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			address, password, err := parseValkeyURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.address, address)
			assert.Equal(t, tt.password, password)
		})
	}
}

func TestCacheError(t *testing.T) {
	err := &CacheError{
		Operation: "get",
		Key:       "test-key",
		Err:       assert.AnError,
	}

	expectedMessage := "cache get failed for key 'test-key': assert.AnError general error for testing"
	assert.Equal(t, expectedMessage, err.Error())
	assert.ErrorIs(t, err, assert.AnError)
}

func BenchmarkMemoryCache_Set(b *testing.B) {
	ctx := context.Background()
	cache := NewMemoryCache(1000)
	data := []byte("benchmark test data")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Set(ctx, fmt.Sprintf("key%d", i%2000), data, time.Hour)
	}
}

func BenchmarkMemoryCache_Get(b *testing.B) {
	ctx := context.Background()
	cache := NewMemoryCache(0)
	data := []byte("benchmark test data")

	for i := 0; i < 1000; i++ {
		cache.Set(ctx, fmt.Sprintf("key%d", i), data, time.Hour)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Get(ctx, fmt.Sprintf("key%d", i%1000))
	}
}
