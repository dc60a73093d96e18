package geocache

import (
	"sync"
	"time"

	"github.com/i474232898/weather-resolver/internal/weather"
)

// entry holds cached coordinates with their insertion time.
type entry struct {
	coords   weather.Coordinates
	storedAt time.Time
}

// Cache is a concurrency-safe in-memory map from a normalized geocoding
// query to the coordinates it resolved to. Coordinates for a fixed query
// string are stable, so entries are reused until they age out or the cache
// evicts them to stay within its size bound.
type Cache struct {
	mu sync.RWMutex

	data map[string]entry

	maxEntries int           // 0 = unlimited
	maxAge     time.Duration // 0 = no expiry

	now func() time.Time
}

// New creates a Cache with optional limits. maxEntries <= 0 means unlimited;
// maxAge <= 0 disables expiry.
func New(maxEntries int, maxAge time.Duration) *Cache {
	return &Cache{
		data:       make(map[string]entry),
		maxEntries: maxEntries,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// Get returns the cached coordinates for key if present and not expired.
func (c *Cache) Get(key string) (weather.Coordinates, bool) {
	c.mu.RLock()
	e, ok := c.data[key]
	c.mu.RUnlock()

	if !ok {
		return weather.Coordinates{}, false
	}
	if c.maxAge > 0 && c.now().Sub(e.storedAt) > c.maxAge {
		c.mu.Lock()
		delete(c.data, key)
		c.mu.Unlock()
		return weather.Coordinates{}, false
	}
	return e.coords, true
}

// Put stores coordinates for key, evicting the oldest entry when the size
// bound would be exceeded.
func (c *Cache) Put(key string, coords weather.Coordinates) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.data[key]; !exists && c.maxEntries > 0 && len(c.data) >= c.maxEntries {
		c.evictOldestLocked()
	}
	c.data[key] = entry{coords: coords, storedAt: c.now()}
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

func (c *Cache) evictOldestLocked() {
	var (
		oldestKey string
		oldestAt  time.Time
		found     bool
	)
	for k, e := range c.data {
		if !found || e.storedAt.Before(oldestAt) {
			oldestKey = k
			oldestAt = e.storedAt
			found = true
		}
	}
	if found {
		delete(c.data, oldestKey)
	}
}
