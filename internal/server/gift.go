package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gift_ledger/internal/domain/entity"
	"gift_ledger/pkg/httpx/reply"
	"gift_ledger/pkg/httpx/req"
	"gift_ledger/pkg/rest"
)

type giftService interface {
	Create(ctx context.Context, draft entity.GiftDraft) (*entity.Gift, error)
	Complete(ctx context.Context, giftID, txSignature string) (*entity.Gift, error)
	Cancel(ctx context.Context, giftID string) error
	ListByPost(ctx context.Context, postID string) ([]entity.Gift, error)
	PostTotals(ctx context.Context, postID string) ([]entity.PostGiftTotal, error)
}

type GiftServer struct {
	giftService giftService
}

func NewGiftServer(giftService giftService) GiftServer {
	return GiftServer{
		giftService: giftService,
	}
}

func (s GiftServer) postCreateGift(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var body createGiftBody

	// Правила полей проверяет сервис, чтобы вернуть все нарушения разом.
	if err := req.Decode(r, &body); err != nil {
		return fmt.Errorf("req.Decode: %w", err)
	}

	gift, err := s.giftService.Create(ctx, newDomainGiftDraft(body))
	if err != nil {
		return fmt.Errorf("giftService.Create: %w", newFailure(err))
	}

	reply.JSON(ctx, w, http.StatusCreated, rest.CreateGiftResponse{
		GiftID: gift.ID,
		Gift:   newRESTGift(*gift),
	})

	return nil
}

func (s GiftServer) postCompleteGift(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.CompleteGiftRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	gift, err := s.giftService.Complete(ctx, request.GiftID, request.TransactionSignature)
	if err != nil {
		return fmt.Errorf("giftService.Complete: %w", newFailure(err))
	}

	reply.JSON(ctx, w, http.StatusOK, rest.CompleteGiftResponse{
		Gift: newRESTGift(*gift),
	})

	return nil
}

func (s GiftServer) postCancelGift(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.CancelGiftRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	if err := s.giftService.Cancel(ctx, request.GiftID); err != nil {
		return fmt.Errorf("giftService.Cancel: %w", newFailure(err))
	}

	reply.JSON(ctx, w, http.StatusOK, rest.MessageResponse{
		Message: "Gift cancelled successfully",
	})

	return nil
}

func (s GiftServer) getGiftsByPost(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	gifts, err := s.giftService.ListByPost(ctx, chi.URLParam(r, "postId"))
	if err != nil {
		return fmt.Errorf("giftService.ListByPost: %w", newFailure(err))
	}

	reply.JSON(ctx, w, http.StatusOK, rest.GiftListResponse{
		Gifts: newRESTGifts(gifts),
	})

	return nil
}

func (s GiftServer) getPostGiftTotals(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	totals, err := s.giftService.PostTotals(ctx, chi.URLParam(r, "postId"))
	if err != nil {
		return fmt.Errorf("giftService.PostTotals: %w", newFailure(err))
	}

	reply.JSON(ctx, w, http.StatusOK, rest.PostGiftTotalsResponse{
		Totals: newRESTPostGiftTotals(totals),
	})

	return nil
}
