package cache

import (
	"context"
	"strings"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/invoicedesk/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("cache",
	fx.Provide(NewViewCache),
)

// NewViewCache selects redis when REDIS_ADDR is configured and falls back to
// the in-process cache otherwise.
func NewViewCache(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) ViewCache {
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		log.Info("view cache: in-memory", zap.Duration("ttl", cfg.ViewCacheTTL))
		return NewMemoryViewCache(cfg.ViewCacheTTL)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(cfg.RedisPassword),
		DB:       cfg.RedisDB,
	})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				log.Warn("view cache: redis unreachable, serving misses", zap.String("addr", addr), zap.Error(err))
			}
			return nil
		},
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})

	log.Info("view cache: redis", zap.String("addr", addr), zap.Duration("ttl", cfg.ViewCacheTTL))
	return NewRedisViewCache(client, cfg.ViewCacheTTL, log)
}
