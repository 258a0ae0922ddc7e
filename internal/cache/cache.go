package cache

import (
	"context"
	"time"
)

// Cache stores opaque values by key. Backends log their own failures and
// report them as misses, a cache is never a reason to fail a request.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Delete(ctx context.Context, key string)
}

var (
	_ Cache = (*RedisCache)(nil)
	_ Cache = (*MemoryCache)(nil)
	_ Cache = (*MapCache)(nil)
	_ Cache = NoopCache{}
)

const DefaultTTL = 5 * time.Minute

type NoopCache struct{}

func (NoopCache) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (NoopCache) Set(context.Context, string, []byte) {}
func (NoopCache) Delete(context.Context, string) {}
