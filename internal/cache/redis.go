package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/jaw1999/planning-tool-sub002/internal/model"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix     = "planning:analytics:"
	keysSet       = "planning:analytics:keys"
	generationKey = "planning:analytics:generation"
)

// RedisAnalyticsCache is an AnalyticsCache backed by Redis. The generation is
// an INCR counter; every stored key is tracked in a set so Invalidate can
// also drop the entries of older generations.
type RedisAnalyticsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisAnalyticsCache returns a cache whose entries expire after ttl.
// A ttl of 0 keeps entries until the next Invalidate.
func NewRedisAnalyticsCache(client *redis.Client, ttl time.Duration) *RedisAnalyticsCache {
	return &RedisAnalyticsCache{client: client, ttl: ttl}
}

func (c *RedisAnalyticsCache) makeKey(key string) string {
	return keyPrefix + key
}

func (c *RedisAnalyticsCache) Generation(ctx context.Context) (int64, bool) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, true
	}
	if err != nil {
		slog.Warn("analytics cache generation failed", "error", err)
		return 0, false
	}
	return gen, true
}

func (c *RedisAnalyticsCache) Get(ctx context.Context, key string) (*model.AnalyticsData, bool) {
	k := c.makeKey(key)
	raw, err := c.client.Get(ctx, k).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("analytics cache get failed", "key", k, "error", err)
		}
		return nil, false
	}
	var data model.AnalyticsData
	if err := json.Unmarshal(raw, &data); err != nil {
		slog.Warn("analytics cache entry is corrupt", "key", k, "error", err)
		return nil, false
	}
	return &data, true
}

func (c *RedisAnalyticsCache) Set(ctx context.Context, key string, data *model.AnalyticsData) {
	k := c.makeKey(key)
	raw, err := json.Marshal(data)
	if err != nil {
		slog.Warn("analytics cache marshal failed", "key", k, "error", err)
		return
	}
	pipe := c.client.TxPipeline()
	pipe.Set(ctx, k, raw, c.ttl)
	pipe.SAdd(ctx, keysSet, k)
	if _, err := pipe.Exec(ctx); err != nil {
		slog.Warn("analytics cache set failed", "key", k, "error", err)
	}
}

func (c *RedisAnalyticsCache) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		slog.Warn("analytics cache generation bump failed", "error", err)
	}
	keys, err := c.client.SMembers(ctx, keysSet).Result()
	if err != nil {
		slog.Warn("analytics cache invalidate failed", "error", err)
		return
	}
	keys = append(keys, keysSet)
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("analytics cache invalidate failed", "keys", len(keys), "error", err)
	}
}

// Ping checks the Redis connection.
func (c *RedisAnalyticsCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
