package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// noGeneration marks a Get that could not read the generation.
const noGeneration = ^uint64(0)

const (
	keyViewGeneration = "invoicedesk:view:gen:%s"
	keyView           = "invoicedesk:view:%s:%d:%s"
)

type redisViewCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisViewCache shares cached views and their invalidation across
// replicas. Redis failures degrade to cache misses.
func NewRedisViewCache(client *redis.Client, ttl time.Duration, log *zap.Logger) ViewCache {
	if ttl <= 0 {
		ttl = DefaultViewTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &redisViewCache{client: client, ttl: ttl, log: log.Named("cache.redis")}
}

func (c *redisViewCache) Get(ctx context.Context, path, key string) ([]byte, uint64, bool) {
	gen, err := c.generation(ctx, path)
	if err != nil {
		c.log.Warn("read view generation", zap.String("path", path), zap.Error(err))
		return nil, noGeneration, false
	}
	value, err := c.client.Get(ctx, viewKey(path, gen, key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("read cached view", zap.String("path", path), zap.Error(err))
		}
		return nil, gen, false
	}
	return value, gen, true
}

// Set writes under the generation the caller read. A Revalidate in between
// has already moved readers to a newer key, so the entry just ages out.
func (c *redisViewCache) Set(ctx context.Context, path, key string, gen uint64, value []byte) {
	if gen == noGeneration {
		return
	}
	if err := c.client.Set(ctx, viewKey(path, gen, key), value, c.ttl).Err(); err != nil {
		c.log.Warn("store cached view", zap.String("path", path), zap.Error(err))
	}
}

func (c *redisViewCache) Revalidate(ctx context.Context, path string) error {
	if err := c.client.Incr(ctx, generationKey(path)).Err(); err != nil {
		return fmt.Errorf("revalidate %s: %w", path, err)
	}
	return nil
}

func (c *redisViewCache) generation(ctx context.Context, path string) (uint64, error) {
	gen, err := c.client.Get(ctx, generationKey(path)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func generationKey(path string) string {
	return fmt.Sprintf(keyViewGeneration, normalizePath(path))
}

func viewKey(path string, gen uint64, key string) string {
	return fmt.Sprintf(keyView, normalizePath(path), gen, strings.TrimSpace(key))
}
