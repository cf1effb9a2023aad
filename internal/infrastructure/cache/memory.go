package cache

import (
	"context"
	"sync"
	"time"

	"github.com/skinsift/backend/internal/domain"
)

const cleanupInterval = 10 * time.Minute

// entry is a single cached value with its expiration time.
type entry struct {
	value     any
	expiresAt time.Time
}

// MemoryCache is a thread-safe in-memory cache with TTL support. Values are
// stored as-is, so cached catalogs come back with their exact types.
type MemoryCache struct {
	data  map[string]entry
	mutex sync.RWMutex
	stop  chan struct{}
}

// NewMemoryCache creates an in-memory cache and starts its cleanup loop.
func NewMemoryCache() *MemoryCache {
	c := &MemoryCache{
		data: make(map[string]entry),
		stop: make(chan struct{}),
	}
	go c.cleanupExpired()
	return c
}

// Get retrieves a value, treating expired entries as misses.
func (c *MemoryCache) Get(ctx context.Context, key string) (any, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	e, ok := c.data[key]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, domain.ErrCacheMiss
	}
	return e.value, nil
}

// Set stores a value with the given TTL.
func (c *MemoryCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = entry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Delete removes a value from the cache.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

// Size returns the current number of entries, expired ones included.
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// Close stops the cleanup loop.
func (c *MemoryCache) Close() {
	close(c.stop)
}

// cleanupExpired drops expired entries periodically until Close is called.
func (c *MemoryCache) cleanupExpired() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.mutex.Lock()
			now := time.Now()
			for key, e := range c.data {
				if now.After(e.expiresAt) {
					delete(c.data, key)
				}
			}
			c.mutex.Unlock()
		}
	}
}
