package cache

import (
	"context"
	"sync"
)

// MapCache never expires entries. Meant for tests and tools.
type MapCache struct {
	entries map[string][]byte
	mutex   sync.Mutex
}

func NewMapCache() *MapCache {
	return &MapCache{
		entries: make(map[string][]byte),
	}
}

func (c *MapCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	value, ok := c.entries[key]
	return value, ok
}

func (c *MapCache) Set(_ context.Context, key string, value []byte) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = value
}

func (c *MapCache) Delete(_ context.Context, key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.entries, key)
}

func (c *MapCache) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return len(c.entries)
}
