package queue_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"gift_ledger/internal/infrastructure/queue"
)

func TestGiftCompletedPayload(t *testing.T) {
	testCases := []struct {
		name    string
		raw     string
		giftID  string
		wantErr bool
	}{
		{name: "valid", raw: `{"giftId":"g1"}`, giftID: "g1"},
		{name: "empty id", raw: `{"giftId":""}`, wantErr: true},
		{name: "missing id", raw: `{}`, wantErr: true},
		{name: "not json", raw: `giftId=g1`, wantErr: true},
		{name: "wrong type", raw: `{"giftId":42}`, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			payload, err := queue.ParseGiftCompletedPayload([]byte(tc.raw))
			if tc.wantErr {
				rq.Error(err)
				return
			}

			rq.NoError(err)
			rq.Equal(tc.giftID, payload.GiftID)
		})
	}
}

func TestNewGiftCompletedTask(t *testing.T) {
	rq := require.New(t)

	task, err := queue.NewGiftCompletedTask("g1")
	rq.NoError(err)
	rq.Equal(queue.TaskTypeGiftCompleted, task.Type())
	rq.JSONEq(`{"giftId":"g1"}`, string(task.Payload()))
}

func TestPublisher_PublishGiftCompleted(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	server := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: server.Addr()}) //nolint:exhaustruct

	client := asynq.NewClientFromRedisClient(redisClient)
	t.Cleanup(func() { _ = redisClient.Close() })

	publisher := queue.NewPublisher(client, "gifts", 10)

	rq.NoError(publisher.PublishGiftCompleted(ctx, "g1"))
	rq.True(server.Exists("asynq:{gifts}:t:" + queue.GiftCompletedTaskID("g1")))

	pending, err := server.List("asynq:{gifts}:pending")
	rq.NoError(err)
	rq.Len(pending, 1)

	// Тот же подарок: задача остается прежней, ошибки нет.
	rq.NoError(publisher.PublishGiftCompleted(ctx, "g1"))

	pending, err = server.List("asynq:{gifts}:pending")
	rq.NoError(err)
	rq.Len(pending, 1)

	rq.NoError(publisher.PublishGiftCompleted(ctx, "g2"))

	pending, err = server.List("asynq:{gifts}:pending")
	rq.NoError(err)
	rq.Len(pending, 2)
}
