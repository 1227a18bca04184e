package connectors

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"

	"gift_ledger/pkg/logx"
)

// Redis обслуживает и кэш списков подарков, и очередь asynq через один
// общий клиент.
type Redis struct {
	value              *redis.Client
	Username           string
	Password           string
	Address            string
	DatabaseNumber     int
	PoolSize           int
	MinIdleConnections int
	MaxIdleConnections int
	StartupTimeout     time.Duration
	init               sync.Once
}

func (r *Redis) Client(ctx context.Context) *redis.Client {
	r.init.Do(func() {
		r.value = redis.NewClient(&redis.Options{ //nolint:exhaustruct
			Addr:         r.Address,
			Username:     r.Username,
			Password:     r.Password,
			DB:           r.DatabaseNumber,
			PoolSize:     r.PoolSize,
			MinIdleConns: r.MinIdleConnections,
			MaxIdleConns: r.MaxIdleConnections,
		})

		lo.Must0(retryStartup(ctx, "redis", r.StartupTimeout, func() error {
			return r.value.Ping(ctx).Err()
		}))

		logger(ctx).Info("redis connected", r.attrs()...)
	})

	return r.value
}

// Ping - проверка готовности redis.
func (r *Redis) Ping(ctx context.Context) error {
	return r.value.Ping(ctx).Err()
}

func (r *Redis) Close(ctx context.Context) {
	if r.value == nil {
		return
	}

	if err := r.value.Close(); err != nil {
		logger(ctx).Error("redisClient.Close", logx.Error(err))
	}

	logger(ctx).Info("redis disconnected", r.attrs()...)
}

func (r *Redis) attrs() []any {
	return []any{
		slog.String("address", r.Address),
		slog.Int("database", r.DatabaseNumber),
	}
}
