package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/lmittmann/tint"
	"github.com/mymmrac/telego"
	"golang.org/x/sync/errgroup"

	"gift_ledger/internal/config"
	service "gift_ledger/internal/domain/service/gift"
	"gift_ledger/internal/infrastructure/cache"
	"gift_ledger/internal/infrastructure/notifier"
	"gift_ledger/internal/infrastructure/persistence"
	"gift_ledger/internal/infrastructure/queue"
	"gift_ledger/internal/server"
	"gift_ledger/internal/transport/bot"
	"gift_ledger/internal/transport/bot/handler"
	"gift_ledger/internal/worker"
	"gift_ledger/pkg/application/connectors"
	"gift_ledger/pkg/application/modules"
	"gift_ledger/pkg/contextx"
	"gift_ledger/pkg/httpx"
	"gift_ledger/pkg/logx"
	"gift_ledger/pkg/middlewarex"
	"gift_ledger/pkg/probe"
)

const (
	botRequestTimeout  = 30 * time.Second
	processedGiftsTTL  = time.Hour
	queuePriorityGifts = 1
	sweepUniqueTTL     = 30 * time.Second
)

func Run(ctx context.Context, cfg config.Config) error {
	log := NewLogger(cfg.App)
	slog.SetDefault(log)

	ctx = contextx.WithLogger(ctx, log)

	log.Info("application starting",
		slog.String(logx.FieldAppName, cfg.App.Name),
		slog.String(logx.FieldAppVersion, cfg.App.Version),
	)

	postgres := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		StartupTimeout:  cfg.Postgres.StartupTimeout,
	}
	db := postgres.Client(ctx)
	defer postgres.Close(ctx)

	redisConnector := &connectors.Redis{
		Address:            cfg.Redis.Address,
		Username:           cfg.Redis.Username,
		Password:           cfg.Redis.Password,
		DatabaseNumber:     cfg.Redis.DatabaseNumber,
		PoolSize:           cfg.Redis.PoolSize,
		MinIdleConnections: cfg.Redis.MinIdleConnections,
		MaxIdleConnections: cfg.Redis.MaxIdleConnections,
		StartupTimeout:     cfg.Redis.StartupTimeout,
	}
	redisClient := redisConnector.Client(ctx)
	defer redisConnector.Close(ctx)

	masker := logx.NewSensitiveDataMasker()

	giftService := service.NewGiftService(
		persistence.NewGiftRepository(db),
		persistence.NewTotalsRepository(db),
	).
		WithListCache(cache.NewGiftList(redisClient, cfg.Cache.GiftListTTL)).
		WithPublisher(queue.NewPublisher(
			asynq.NewClientFromRedisClient(redisClient),
			cfg.Queue.Name,
			cfg.Queue.MaxRetry,
		))

	giftNotifier, err := newNotifier(cfg, masker)
	if err != nil {
		return fmt.Errorf("newNotifier: %w", err)
	}

	giftCompletedHandler := worker.NewGiftCompletedHandler(giftService, giftNotifier, processedGiftsTTL)
	totalsSweepHandler := worker.NewTotalsSweepHandler(giftService, cfg.Queue.SweepBatch)

	router := chi.NewRouter()
	router.Use(
		middlewarex.TraceID,
		middlewarex.Logger(log),
		middlewarex.Recovery,
		middlewarex.Metrics(server.HTTPRequestDuration),
		middlewarex.RequestLogging(masker, cfg.HTTP.LogFieldMaxLen),
		middlewarex.ResponseLogging(masker, cfg.HTTP.LogFieldMaxLen),
	)

	server.NewServer(server.NewGiftServer(giftService)).RegisterRoutes(router)

	g, ctx := errgroup.WithContext(ctx)

	modules.HTTPServer{
		ListenAddress:     cfg.HTTP.ListenAddress,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		ShutdownTimeout:   cfg.HTTP.ShutdownTimeout,
	}.Run(ctx, g, router)

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.App.ProbeAddress,
	}.Run(ctx, g,
		probe.Check{Name: "postgres", Probe: db.PingContext},
		probe.Check{Name: "redis", Probe: redisConnector.Ping},
	)

	modules.MetricServer{
		ListenAddress: cfg.App.MetricsAddress,
	}.Run(ctx, g)

	modules.AsynqServer{
		Redis:           redisClient,
		Concurrency:     cfg.Queue.Concurrency,
		ShutdownTimeout: cfg.Queue.ShutdownTimeout,
	}.Run(ctx, g,
		modules.AsynqQueues{cfg.Queue.Name: queuePriorityGifts},
		modules.AsynqHandler{
			Pattern: queue.TaskTypeGiftCompleted,
			Handle:  giftCompletedHandler.ProcessTask,
		},
		modules.AsynqHandler{
			Pattern: queue.TaskTypeGiftTotalsSweep,
			Handle:  totalsSweepHandler.ProcessTask,
		},
	)

	// Unique не дает нескольким репликам поставить один и тот же проход дважды.
	modules.AsynqScheduler{
		Redis: redisClient,
	}.Run(ctx, g,
		modules.AsynqPeriodicTask{
			Cronspec: cfg.Queue.SweepSchedule,
			Task:     queue.NewGiftTotalsSweepTask(),
			Options: []asynq.Option{
				asynq.Queue(cfg.Queue.Name),
				asynq.MaxRetry(0),
				asynq.Unique(sweepUniqueTTL),
			},
		},
	)

	if cfg.Bot.CommandsEnabled() {
		operatorBot, err := newOperatorBot(cfg, giftService)
		if err != nil {
			return fmt.Errorf("newOperatorBot: %w", err)
		}

		g.Go(func() error {
			return operatorBot.Run(ctx)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	log.Info("application stopped")

	return nil
}

// NewLogger создает логгер процесса: по умолчанию текст через tint, JSON при
// LOG_FORMAT=json.
func NewLogger(cfg config.App) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	if strings.EqualFold(cfg.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})) //nolint:exhaustruct
	}

	return slog.New(tint.NewHandler(os.Stdout, &tint.Options{ //nolint:exhaustruct
		Level:      level,
		TimeFormat: time.DateTime,
	}))
}

func newNotifier(cfg config.Config, masker logx.SensitiveDataMasker) (worker.Notifier, error) {
	if !cfg.Bot.Enabled() {
		return notifier.Nop{}, nil
	}

	httpClient := &http.Client{ //nolint:exhaustruct
		Timeout: botRequestTimeout,
		Transport: httpx.NewLoggingRoundTripper(
			http.DefaultTransport,
			httpx.WithSensitiveDataMasker(masker),
			httpx.WithLogFieldMaxLen(cfg.HTTP.LogFieldMaxLen),
		),
	}

	telegramBot, err := notifier.NewTelegramBot(cfg.Bot.Token, cfg.Bot.ChatID, httpClient)
	if err != nil {
		return nil, fmt.Errorf("notifier.NewTelegramBot: %w", err)
	}

	return telegramBot, nil
}

// newOperatorBot создает бота с командами. Его клиент без логирующего
// RoundTripper, иначе long polling засыпал бы лог пустыми getUpdates.
func newOperatorBot(cfg config.Config, giftService *service.GiftService) (*bot.Bot, error) {
	httpClient := &http.Client{ //nolint:exhaustruct
		Timeout: time.Duration(cfg.Bot.PollTimeout)*time.Second + botRequestTimeout,
	}

	telegoBot, err := telego.NewBot(cfg.Bot.Token, telego.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("telego.NewBot: %w", err)
	}

	return bot.New(telegoBot, handler.New(giftService), cfg.Bot.AdminID, cfg.Bot.PollTimeout), nil
}
