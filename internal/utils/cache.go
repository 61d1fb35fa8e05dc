package utils

import (
	"sync"
)

// CacheStats reports how a cache has been used
type CacheStats struct {
	Size   int
	Hits   int
	Misses int
}

// Cache is a generic concurrency-safe memo
type Cache[K comparable, V any] struct {
	items  map[K]V
	hits   int
	misses int
	mutex  sync.RWMutex
}

// NewCache creates a new generic cache
func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		items: make(map[K]V),
	}
}

// Get retrieves an item from the cache
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	value, exists := c.items[key]
	if exists {
		c.hits++
	} else {
		c.misses++
	}
	return value, exists
}

// Set stores an item in the cache
func (c *Cache[K, V]) Set(key K, value V) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items[key] = value
}

// GetOrCompute returns the cached value for key, computing and storing it
// on a miss. Errors are returned but never cached.
func (c *Cache[K, V]) GetOrCompute(key K, compute func() (V, error)) (V, error) {
	if value, ok := c.Get(key); ok {
		return value, nil
	}

	value, err := compute()
	if err != nil {
		return value, err
	}
	c.Set(key, value)
	return value, nil
}

// Size returns the number of items in the cache
func (c *Cache[K, V]) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.items)
}

// Stats returns the current cache statistics
func (c *Cache[K, V]) Stats() CacheStats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return CacheStats{Size: len(c.items), Hits: c.hits, Misses: c.misses}
}
