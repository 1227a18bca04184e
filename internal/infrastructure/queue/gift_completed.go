package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"

	"gift_ledger/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const TaskTypeGiftCompleted = "gift:completed"

type GiftCompletedPayload struct {
	GiftID string `json:"giftId"`
}

func NewGiftCompletedTask(giftID string) (*asynq.Task, error) {
	payload, err := json.Marshal(GiftCompletedPayload{GiftID: giftID})
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return asynq.NewTask(TaskTypeGiftCompleted, payload), nil
}

// ParseGiftCompletedPayload отклоняет payload без идентификатора подарка.
func ParseGiftCompletedPayload(raw []byte) (GiftCompletedPayload, error) {
	var payload GiftCompletedPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return GiftCompletedPayload{}, fmt.Errorf("json.Unmarshal: %w", err)
	}

	if payload.GiftID == "" {
		return GiftCompletedPayload{}, errors.New("giftId is empty")
	}

	return payload, nil
}

func GiftCompletedTaskID(giftID string) string {
	return "gift-completed:" + giftID
}

// Publisher ставит события подарков в очередь. Один task id на подарок, поэтому
// повторная публикация не создает вторую задачу.
type Publisher struct {
	client   *asynq.Client
	queue    string
	maxRetry int
}

func NewPublisher(client *asynq.Client, queue string, maxRetry int) *Publisher {
	return &Publisher{
		client:   client,
		queue:    queue,
		maxRetry: maxRetry,
	}
}

func (p *Publisher) PublishGiftCompleted(ctx context.Context, giftID string) error {
	task, err := NewGiftCompletedTask(giftID)
	if err != nil {
		return err
	}

	info, err := p.client.EnqueueContext(ctx, task,
		asynq.TaskID(GiftCompletedTaskID(giftID)),
		asynq.Queue(p.queue),
		asynq.MaxRetry(p.maxRetry),
	)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			logger(ctx).Debug("gift completed task already enqueued", slog.String(logx.FieldGiftID, giftID))
			return nil
		}
		return fmt.Errorf("asynqClient.Enqueue: %w", err)
	}

	logger(ctx).Debug("gift completed task enqueued",
		slog.String(logx.FieldGiftID, giftID),
		slog.String(logx.FieldTaskID, info.ID),
		slog.String(logx.FieldQueue, info.Queue),
	)

	return nil
}
