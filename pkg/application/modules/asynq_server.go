package modules

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

type AsynqQueues map[string]int

type AsynqHandler struct {
	Pattern string
	Handle  func(context.Context, *asynq.Task) error
}

// AsynqServer запускает обработчики задач поверх общего подключения к Redis
// и останавливает их по завершении ctx.
type AsynqServer struct {
	Redis           redis.UniversalClient
	Concurrency     int
	ShutdownTimeout time.Duration
}

func (s AsynqServer) Run(
	ctx context.Context,
	g *errgroup.Group,
	queues AsynqQueues,
	handlers ...AsynqHandler,
) {
	g.Go(func() error {
		worker := asynq.NewServerFromRedisClient(s.Redis, asynq.Config{
			BaseContext:     func() context.Context { return context.WithoutCancel(ctx) },
			Concurrency:     s.Concurrency,
			Queues:          queues,
			ShutdownTimeout: s.ShutdownTimeout,
		})

		mux := asynq.NewServeMux()

		for _, h := range handlers {
			mux.HandleFunc(h.Pattern, h.Handle)
		}

		if err := worker.Start(mux); err != nil {
			return fmt.Errorf("asynqServer.Start: %w", err)
		}

		logger(ctx).Info("asynq server started", slog.Int("concurrency", s.Concurrency), slog.Int("handlers", len(handlers)))

		<-ctx.Done()

		worker.Shutdown()

		logger(ctx).Info("asynq server stopped")

		return nil
	})
}
