package handler

import (
	"context"

	"gift_ledger/internal/domain/entity"
)

type giftReader interface {
	ListByPost(ctx context.Context, postID string) ([]entity.Gift, error)
	PostTotals(ctx context.Context, postID string) ([]entity.PostGiftTotal, error)
}

type Handler struct {
	svc giftReader
}

func New(svc giftReader) *Handler {
	return &Handler{
		svc: svc,
	}
}
