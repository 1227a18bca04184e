// Package bot - Telegram-вход для оператора: команды только на чтение,
// отвечает лишь настроенному администратору.
package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"gift_ledger/internal/transport/bot/handler"
	"gift_ledger/pkg/contextx"
	"gift_ledger/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type Bot struct {
	bot         *telego.Bot
	handler     *handler.Handler
	adminID     int64
	pollTimeout int
}

func New(bot *telego.Bot, handler *handler.Handler, adminID int64, pollTimeout int) *Bot {
	return &Bot{
		bot:         bot,
		handler:     handler,
		adminID:     adminID,
		pollTimeout: pollTimeout,
	}
}

// Run получает обновления long polling, пока ctx не завершен.
func (b *Bot) Run(ctx context.Context) error {
	updates, err := b.bot.UpdatesViaLongPolling(ctx, &telego.GetUpdatesParams{ //nolint:exhaustruct
		Timeout: b.pollTimeout,
	})
	if err != nil {
		return fmt.Errorf("bot.UpdatesViaLongPolling: %w", err)
	}

	botHandler, err := th.NewBotHandler(b.bot, updates)
	if err != nil {
		return fmt.Errorf("th.NewBotHandler: %w", err)
	}

	b.handler.RegisterRoutes(botHandler, b.adminID)

	go func() {
		if err := botHandler.Start(); err != nil {
			logger(ctx).Error("botHandler.Start", logx.Error(err))
		}
	}()

	logger(ctx).Info("operator bot started", slog.Int64("admin-id", b.adminID))

	<-ctx.Done()

	if err := botHandler.Stop(); err != nil {
		logger(ctx).Error("botHandler.Stop", logx.Error(err))
	}

	logger(ctx).Info("operator bot stopped")

	return nil
}
