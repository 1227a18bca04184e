package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/patrickmn/go-cache"

	"gift_ledger/internal/domain"
	"gift_ledger/internal/domain/entity"
	"gift_ledger/internal/infrastructure/queue"
	"gift_ledger/pkg/logx"
)

type GiftApplier interface {
	ApplyCompleted(ctx context.Context, giftID string) (*entity.Gift, bool, error)
}

type Notifier interface {
	GiftCompleted(ctx context.Context, gift *entity.Gift) error
}

// GiftCompletedHandler учитывает завершенные подарки в итогах поста и
// сообщает оператору о каждом подарке при первом учете.
type GiftCompletedHandler struct {
	applier   GiftApplier
	notifier  Notifier
	processed *cache.Cache
}

func NewGiftCompletedHandler(applier GiftApplier, notifier Notifier, rememberFor time.Duration) *GiftCompletedHandler {
	return &GiftCompletedHandler{
		applier:   applier,
		notifier:  notifier,
		processed: cache.New(rememberFor, 2*rememberFor),
	}
}

func (h *GiftCompletedHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	payload, err := queue.ParseGiftCompletedPayload(task.Payload())
	if err != nil {
		return fmt.Errorf("queue.ParseGiftCompletedPayload: %v: %w", err, asynq.SkipRetry)
	}

	log := logger(ctx).With(slog.String(logx.FieldGiftID, payload.GiftID))

	if _, done := h.processed.Get(payload.GiftID); done {
		log.Debug("gift completed task already handled")
		return nil
	}

	gift, applied, err := h.applier.ApplyCompleted(ctx, payload.GiftID)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return fmt.Errorf("applier.ApplyCompleted: %v: %w", err, asynq.SkipRetry)
		}
		return fmt.Errorf("applier.ApplyCompleted: %w", err)
	}

	h.processed.SetDefault(payload.GiftID, struct{}{})

	if !applied {
		log.Info("gift totals already applied")
		return nil
	}

	log.Info("gift totals applied", slog.String(logx.FieldPostID, gift.PostID), slog.String(logx.FieldToken, gift.Token))

	// Итоги уже записаны, неудачное уведомление не повторяем.
	if err := h.notifier.GiftCompleted(ctx, gift); err != nil {
		log.Error("gift completed notification failed", logx.Error(err))
	}

	return nil
}
