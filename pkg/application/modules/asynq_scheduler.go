package modules

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"gift_ledger/pkg/logx"
)

type AsynqPeriodicTask struct {
	Cronspec string
	Task     *asynq.Task
	Options  []asynq.Option
}

// AsynqScheduler ставит периодические задачи в очередь, пока ctx не завершен.
type AsynqScheduler struct {
	Redis redis.UniversalClient
}

func (s AsynqScheduler) Run(ctx context.Context, g *errgroup.Group, tasks ...AsynqPeriodicTask) {
	g.Go(func() error {
		scheduler := asynq.NewSchedulerFromRedisClient(s.Redis, &asynq.SchedulerOpts{ //nolint:exhaustruct
			EnqueueErrorHandler: func(task *asynq.Task, _ []asynq.Option, err error) {
				logger(ctx).Warn("periodic task not enqueued", slog.String(logx.FieldTaskType, task.Type()), logx.Error(err))
			},
		})

		for _, t := range tasks {
			if _, err := scheduler.Register(t.Cronspec, t.Task, t.Options...); err != nil {
				return fmt.Errorf("asynqScheduler.Register %s: %w", t.Task.Type(), err)
			}
		}

		if err := scheduler.Start(); err != nil {
			return fmt.Errorf("asynqScheduler.Start: %w", err)
		}

		logger(ctx).Info("asynq scheduler started", slog.Int("tasks", len(tasks)))

		<-ctx.Done()

		scheduler.Shutdown()

		logger(ctx).Info("asynq scheduler stopped")

		return nil
	})
}
