package worker_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"gift_ledger/internal/infrastructure/queue"
	"gift_ledger/internal/worker"
)

type fakeRepublisher struct {
	limits []int
	err    error
}

func (f *fakeRepublisher) RepublishUnapplied(_ context.Context, limit int) (int, error) {
	f.limits = append(f.limits, limit)
	return 3, f.err
}

func TestTotalsSweepHandler(t *testing.T) {
	testCases := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{name: "republishes one batch"},
		{name: "queue failure is retried", err: errors.New("redis down"), wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			republisher := &fakeRepublisher{err: tc.err}
			handler := worker.NewTotalsSweepHandler(republisher, 25)

			err := handler.ProcessTask(context.Background(), queue.NewGiftTotalsSweepTask())
			if tc.wantErr {
				rq.ErrorIs(err, tc.err)
			} else {
				rq.NoError(err)
			}

			rq.Equal([]int{25}, republisher.limits)
		})
	}
}
