package bootstrap

import (
	"context"
	"log/slog"

	"vehicle-care-booking/internal/infra/cache"
	"vehicle-care-booking/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedis,
		cache.NewSessionStore,
	),
)

// NewRedis does not fail startup when Redis is down: sessions are advisory and
// the checkout limiter fails open.
func NewRedis(lc fx.Lifecycle, cfg config.Config) *redis.Client {
	client := cache.NewRedisClient(cfg.Redis)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				slog.Warn("redis unreachable at startup", "addr", cfg.Redis.Address, "error", err)
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return client
}
