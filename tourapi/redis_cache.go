package tourapi

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisCache backs the response cache with Redis so multiple processes
// share one cache. Failures are treated as misses: the cache is an
// optimization, never a source of truth.
type RedisCache struct {
	rdb    *redis.Client
	prefix string
	logger zerolog.Logger
}

// NewRedisCache wraps an existing Redis client. All keys are stored
// under the given prefix.
func NewRedisCache(rdb *redis.Client, prefix string, logger zerolog.Logger) *RedisCache {
	if prefix == "" {
		prefix = "tourapi:"
	}
	return &RedisCache{
		rdb:    rdb,
		prefix: prefix,
		logger: logger,
	}
}

// Get retrieves a cached body.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	body, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Str("key", key).Msg("redis cache read failed")
		}
		return nil, false
	}
	return body, true
}

// Set stores a body with the given TTL.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	if err := c.rdb.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("redis cache write failed")
	}
}
