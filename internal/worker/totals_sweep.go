package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
)

type UnappliedRepublisher interface {
	RepublishUnapplied(ctx context.Context, limit int) (int, error)
}

// TotalsSweepHandler догоняет итоги по подаркам, событие о которых не
// дошло до очереди.
type TotalsSweepHandler struct {
	republisher UnappliedRepublisher
	batchSize   int
}

func NewTotalsSweepHandler(republisher UnappliedRepublisher, batchSize int) *TotalsSweepHandler {
	return &TotalsSweepHandler{
		republisher: republisher,
		batchSize:   batchSize,
	}
}

func (h *TotalsSweepHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	republished, err := h.republisher.RepublishUnapplied(ctx, h.batchSize)
	if err != nil {
		return fmt.Errorf("republisher.RepublishUnapplied: %w", err)
	}

	logger(ctx).Debug("gift totals sweep finished", slog.Int("republished", republished))

	return nil
}
