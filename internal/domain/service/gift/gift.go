package service

import (
	"context"
	"fmt"
	"log/slog"

	"gift_ledger/internal/domain"
	"gift_ledger/internal/domain/entity"
	"gift_ledger/internal/domain/value"
	"gift_ledger/pkg/errcodes"
	"gift_ledger/pkg/logx"
)

type GiftRepository interface {
	// Create вставляет подарок в pending и заполняет ID, CreatedAt и UpdatedAt.
	Create(ctx context.Context, gift *entity.Gift) error
	GetByID(ctx context.Context, id string) (*entity.Gift, error)
	// Transition переводит подарок из pending в терминальный статус. Если
	// подарка нет, возвращает not found, если он уже не pending, возвращает
	// conflict. В обоих случаях ничего не пишется.
	Transition(ctx context.Context, id string, to value.GiftStatus, txSignature *string) (*entity.Gift, error)
	ListCompletedByPost(ctx context.Context, postID string) ([]entity.Gift, error)
}

type TotalsRepository interface {
	// ApplyCompleted добавляет подарок в итоги поста, если он еще не учтен.
	ApplyCompleted(ctx context.Context, gift *entity.Gift) (bool, error)
	ListByPost(ctx context.Context, postID string) ([]entity.PostGiftTotal, error)
	// ListUnapplied возвращает до limit завершенных подарков без записи в итогах.
	ListUnapplied(ctx context.Context, limit int) ([]string, error)
}

type GiftListCache interface {
	// Get возвращает снимок и поколение поста, поколение есть и при промахе.
	Get(ctx context.Context, postID string) (gifts []entity.Gift, generation string, found bool, err error)
	// Set пишет снимок, только если с момента Get не было Invalidate.
	Set(ctx context.Context, postID, generation string, gifts []entity.Gift) error
	Invalidate(ctx context.Context, postID string) error
}

type EventPublisher interface {
	PublishGiftCompleted(ctx context.Context, giftID string) error
}

// GiftService - реестр подарков. Ведет переходы pending -> completed/cancelled
// и не хранит состояния между вызовами.
type GiftService struct {
	giftRepo   GiftRepository
	totalsRepo TotalsRepository
	listCache  GiftListCache
	publisher  EventPublisher
}

func NewGiftService(
	giftRepo GiftRepository,
	totalsRepo TotalsRepository,
) *GiftService {
	return &GiftService{
		giftRepo:   giftRepo,
		totalsRepo: totalsRepo,
		listCache:  nopListCache{},
		publisher:  nopPublisher{},
	}
}

func (s *GiftService) WithListCache(cache GiftListCache) *GiftService {
	s.listCache = cache
	return s
}

func (s *GiftService) WithPublisher(publisher EventPublisher) *GiftService {
	s.publisher = publisher
	return s
}

// Create проверяет черновик и сохраняет подарок в статусе pending.
func (s *GiftService) Create(ctx context.Context, draft entity.GiftDraft) (*entity.Gift, error) {
	if err := validateDraft(draft); err != nil {
		giftEvents.WithLabelValues(eventRejected).Inc()
		return nil, err
	}

	if draft.SenderID == draft.RecipientID {
		giftEvents.WithLabelValues(eventRejected).Inc()
		return nil, domain.NewBusinessRuleError(errcodes.SelfGiftRejected, "Cannot send gift to yourself")
	}

	gift := entity.NewPendingGift(draft)

	if err := s.giftRepo.Create(ctx, &gift); err != nil {
		return nil, fmt.Errorf("giftRepo.Create: %w", err)
	}

	giftEvents.WithLabelValues(eventCreated).Inc()

	logger(ctx).Info("gift created",
		slog.String(logx.FieldGiftID, gift.ID),
		slog.String(logx.FieldPostID, gift.PostID),
		slog.String(logx.FieldToken, gift.Token),
		logx.Amount(gift.Amount),
	)

	return &gift, nil
}

// Complete завершает подарок с подписью транзакции.
func (s *GiftService) Complete(ctx context.Context, giftID, txSignature string) (*entity.Gift, error) {
	var violations []string

	if giftID == "" {
		violations = append(violations, "giftId is required")
	}

	if txSignature == "" {
		violations = append(violations, "transactionSignature is required")
	}

	if len(violations) > 0 {
		return nil, domain.NewValidationError(violations...)
	}

	gift, err := s.giftRepo.Transition(ctx, giftID, value.GiftStatusCompleted, &txSignature)
	if err != nil {
		return nil, fmt.Errorf("giftRepo.Transition: %w", err)
	}

	giftEvents.WithLabelValues(eventCompleted).Inc()

	logger(ctx).Info("gift completed",
		slog.String(logx.FieldGiftID, gift.ID),
		slog.String(logx.FieldPostID, gift.PostID),
	)

	// Завершение уже записано. Сбои кэша и очереди лишь откладывают то,
	// что видят читатели.
	if err := s.listCache.Invalidate(ctx, gift.PostID); err != nil {
		logger(ctx).Warn("gift list cache invalidation failed", slog.String(logx.FieldPostID, gift.PostID), logx.Error(err))
	}

	if err := s.publisher.PublishGiftCompleted(ctx, gift.ID); err != nil {
		logger(ctx).Error("gift completed event not published", slog.String(logx.FieldGiftID, gift.ID), logx.Error(err))
	}

	return gift, nil
}

// Cancel отменяет подарок в pending.
func (s *GiftService) Cancel(ctx context.Context, giftID string) error {
	if giftID == "" {
		return domain.NewValidationError("giftId is required")
	}

	gift, err := s.giftRepo.Transition(ctx, giftID, value.GiftStatusCancelled, nil)
	if err != nil {
		return fmt.Errorf("giftRepo.Transition: %w", err)
	}

	giftEvents.WithLabelValues(eventCancelled).Inc()

	logger(ctx).Info("gift cancelled", slog.String(logx.FieldGiftID, gift.ID))

	return nil
}

// ListByPost возвращает завершенные подарки поста, новые первыми.
func (s *GiftService) ListByPost(ctx context.Context, postID string) ([]entity.Gift, error) {
	if postID == "" {
		return nil, domain.NewValidationError("postId is required")
	}

	cached, generation, found, err := s.listCache.Get(ctx, postID)
	switch {
	case err != nil:
		listCacheLookups.WithLabelValues("error").Inc()
		logger(ctx).Warn("gift list cache read failed", slog.String(logx.FieldPostID, postID), logx.Error(err))
	case found:
		listCacheLookups.WithLabelValues("hit").Inc()
		return cached, nil
	default:
		listCacheLookups.WithLabelValues("miss").Inc()
	}

	gifts, err := s.giftRepo.ListCompletedByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("giftRepo.ListCompletedByPost: %w", err)
	}

	if gifts == nil {
		gifts = []entity.Gift{}
	}

	if err := s.listCache.Set(ctx, postID, generation, gifts); err != nil {
		logger(ctx).Warn("gift list cache write failed", slog.String(logx.FieldPostID, postID), logx.Error(err))
	}

	return gifts, nil
}

// PostTotals возвращает итоги завершенных подарков поста по токенам.
func (s *GiftService) PostTotals(ctx context.Context, postID string) ([]entity.PostGiftTotal, error) {
	if postID == "" {
		return nil, domain.NewValidationError("postId is required")
	}

	totals, err := s.totalsRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("totalsRepo.ListByPost: %w", err)
	}

	if totals == nil {
		totals = []entity.PostGiftTotal{}
	}

	return totals, nil
}

// ApplyCompleted учитывает завершенный подарок в итогах поста. Флаг false,
// если подарок не завершен или уже учтен.
func (s *GiftService) ApplyCompleted(ctx context.Context, giftID string) (*entity.Gift, bool, error) {
	gift, err := s.giftRepo.GetByID(ctx, giftID)
	if err != nil {
		return nil, false, fmt.Errorf("giftRepo.GetByID: %w", err)
	}

	if gift.Status != value.GiftStatusCompleted {
		logger(ctx).Warn("skipping totals for gift that is not completed",
			slog.String(logx.FieldGiftID, gift.ID),
			logx.Stringer(logx.FieldGiftStatus, gift.Status),
		)

		return gift, false, nil
	}

	applied, err := s.totalsRepo.ApplyCompleted(ctx, gift)
	if err != nil {
		return nil, false, fmt.Errorf("totalsRepo.ApplyCompleted: %w", err)
	}

	if applied {
		giftEvents.WithLabelValues(eventApplied).Inc()
	}

	return gift, applied, nil
}

// RepublishUnapplied заново публикует событие для завершенных подарков, которые
// не попали в итоги, например после сбоя публикации в Complete. Повтор
// безопасен: задача одна на подарок, а учет в итогах идемпотентен.
func (s *GiftService) RepublishUnapplied(ctx context.Context, limit int) (int, error) {
	giftIDs, err := s.totalsRepo.ListUnapplied(ctx, limit)
	if err != nil {
		return 0, fmt.Errorf("totalsRepo.ListUnapplied: %w", err)
	}

	for i, giftID := range giftIDs {
		if err := s.publisher.PublishGiftCompleted(ctx, giftID); err != nil {
			return i, fmt.Errorf("publisher.PublishGiftCompleted: %w", err)
		}
	}

	if len(giftIDs) > 0 {
		giftEvents.WithLabelValues(eventRepublished).Add(float64(len(giftIDs)))

		logger(ctx).Warn("unapplied completed gifts republished", slog.Int("count", len(giftIDs)))
	}

	return len(giftIDs), nil
}

type nopListCache struct{}

func (nopListCache) Get(context.Context, string) ([]entity.Gift, string, bool, error) {
	return nil, "", false, nil
}

func (nopListCache) Set(context.Context, string, string, []entity.Gift) error { return nil }

func (nopListCache) Invalidate(context.Context, string) error { return nil }

type nopPublisher struct{}

func (nopPublisher) PublishGiftCompleted(context.Context, string) error { return nil }
