package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

// RedisCache is shared by all service instances.
type RedisCache struct {
	redisClient *redis.Client
	keyPrefix   string
	ttl         time.Duration
}

func NewRedisCache(redisClient *redis.Client, keyPrefix string, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{
		redisClient: redisClient,
		keyPrefix:   keyPrefix,
		ttl:         ttl,
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := c.redisClient.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Errorf("redis cache get [%s]: %s", key, err)
		}
		return nil, false
	}
	return value, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte) {
	if err := c.redisClient.Set(ctx, c.keyPrefix+key, value, c.ttl).Err(); err != nil {
		log.Errorf("redis cache set [%s]: %s", key, err)
	}
}

func (c *RedisCache) Delete(ctx context.Context, key string) {
	if err := c.redisClient.Del(ctx, c.keyPrefix+key).Err(); err != nil {
		log.Errorf("redis cache delete [%s]: %s", key, err)
	}
}
