package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"cargo-route-service/internal/domain"
	"cargo-route-service/internal/platform/obs"
)

// RedisMatrixCache stores precomputed distance matrices in Redis so repeated
// runs over an unchanged station set skip the pairwise computation. Entries
// expire after ttl; station-set changes are handled by the key digest.
type RedisMatrixCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisMatrixCache(url string, ttl time.Duration) (*RedisMatrixCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("matrix cache: parse redis url: %w", err)
	}

	return &RedisMatrixCache{rdb: redis.NewClient(opt), ttl: ttl}, nil
}

// NewRedisMatrixCacheFromClient wraps an existing client (tests).
func NewRedisMatrixCacheFromClient(rdb *redis.Client, ttl time.Duration) *RedisMatrixCache {
	return &RedisMatrixCache{rdb: rdb, ttl: ttl}
}

func (c *RedisMatrixCache) Get(ctx context.Context, key string) (_ domain.DistanceMatrix, _ bool, err error) {
	defer obs.Time(ctx, "matrix.cache.Get")(&err)

	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("matrix cache: get %q: %w", key, err)
	}

	var m domain.DistanceMatrix
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, false, fmt.Errorf("matrix cache: decode %q: %w", key, err)
	}

	return m, true, nil
}

func (c *RedisMatrixCache) Put(ctx context.Context, key string, m domain.DistanceMatrix) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("matrix cache: encode %q: %w", key, err)
	}

	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("matrix cache: set %q: %w", key, err)
	}

	return nil
}
