package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ppiankov/censusflat/internal/logger"
)

// MemoryCache holds flattened documents for the lifetime of the process.
// Entries expire after their TTL; zero means the cache default and a
// non-positive default means never.
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates a memory cache. A zero cleanupInterval disables the
// background sweep; expired entries are then only hidden, not freed.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	store := gocache.New(defaultTTL, cleanupInterval)
	store.OnEvicted(func(key string, _ interface{}) {
		logger.Debug("memory cache evicted", "key", key)
	})
	return &MemoryCache{store: store}
}

func (c *MemoryCache) Get(key string) ([]byte, bool) {
	if v, ok := c.store.Get(key); ok {
		data, isBytes := v.([]byte)
		return data, isBytes
	}
	return nil, false
}

func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	c.store.Set(key, value, ttl)
	return nil
}

// Delete drops key. Deleting an absent key is not an error.
func (c *MemoryCache) Delete(key string) error {
	c.store.Delete(key)
	return nil
}

func (c *MemoryCache) Clear() error {
	c.store.Flush()
	return nil
}

// Len counts stored entries, including expired ones not yet swept
func (c *MemoryCache) Len() int {
	return c.store.ItemCount()
}
