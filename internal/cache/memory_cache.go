package cache

import (
	"context"
	"errors"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

// MemoryCache lives in the process; fine for a single instance deployment.
type MemoryCache struct {
	cache      *freecache.Cache
	ttlSeconds int
}

func NewMemoryCache(sizeMegabytes int, ttl time.Duration) *MemoryCache {
	megabyte := 1024 * 1024
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryCache{
		cache:      freecache.NewCache(sizeMegabytes * megabyte),
		ttlSeconds: int(ttl.Seconds()),
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	value, err := c.cache.Get([]byte(key))
	if err != nil {
		if !errors.Is(err, freecache.ErrNotFound) {
			log.Errorf("memory cache get [%s]: %s", key, err)
		}
		return nil, false
	}
	return value, true
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte) {
	if err := c.cache.Set([]byte(key), value, c.ttlSeconds); err != nil {
		log.Errorf("memory cache set [%s]: %s", key, err)
	}
}

func (c *MemoryCache) Delete(_ context.Context, key string) {
	c.cache.Del([]byte(key))
}
