package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jgirmay/fps-trainer/pkg/logger"
	"github.com/jgirmay/fps-trainer/pkg/metrics"
)

const redisKeyPrefix = "fps-trainer:view:"

// RedisCache keeps view payloads in Redis so several server processes share
// one cache and one invalidation.
type RedisCache struct {
	rdb *goredis.Client
	log *logger.Logger
}

// NewRedisCache connects to addr and verifies the connection with a PING.
func NewRedisCache(addr string, log *logger.Logger) (*RedisCache, error) {
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	if log == nil {
		log = logger.NewNop()
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisCache{
		rdb: rdb,
		log: log.With(zap.String("service", "RedisViewCache")),
	}, nil
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := r.rdb.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			r.log.Warn("view cache get failed", zap.String("key", key), zap.Error(err))
		}
		metrics.ViewCacheMiss()
		return nil, false
	}
	metrics.ViewCacheHit()
	return val, true
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := r.rdb.Set(ctx, redisKeyPrefix+key, value, ttl).Err(); err != nil {
		r.log.Warn("view cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (r *RedisCache) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = redisKeyPrefix + k
	}
	if err := r.rdb.Del(ctx, prefixed...).Err(); err != nil {
		r.log.Warn("view cache delete failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func (r *RedisCache) Close() error {
	return r.rdb.Close()
}

// Ping checks that Redis still answers.
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}
