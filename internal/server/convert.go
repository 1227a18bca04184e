package server

import (
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"

	"gift_ledger/internal/domain/entity"
	"gift_ledger/pkg/rest"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func newRESTGift(gift entity.Gift) rest.Gift {
	return rest.Gift{
		ID:                  gift.ID,
		SenderID:            gift.SenderID,
		SenderWallet:        gift.SenderWallet,
		RecipientID:         gift.RecipientID,
		RecipientWallet:     gift.RecipientWallet,
		PostID:              gift.PostID,
		Amount:              gift.Amount,
		Token:               gift.Token,
		SenderBalanceAtTime: gift.SenderBalanceAtTime,
		Status:              gift.Status.String(),
		TxSignature:         gift.TxSignature,
		CreatedAt:           formatTime(gift.CreatedAt),
		UpdatedAt:           formatTime(gift.UpdatedAt),
	}
}

func newRESTGifts(gifts []entity.Gift) []rest.Gift {
	return lo.Map(gifts, func(gift entity.Gift, _ int) rest.Gift {
		return newRESTGift(gift)
	})
}

func newRESTPostGiftTotals(totals []entity.PostGiftTotal) []rest.PostGiftTotal {
	return lo.Map(totals, func(total entity.PostGiftTotal, _ int) rest.PostGiftTotal {
		return rest.PostGiftTotal{
			PostID:      total.PostID,
			Token:       total.Token,
			GiftCount:   total.GiftCount,
			AmountTotal: total.AmountTotal.String(),
			UpdatedAt:   formatTime(total.UpdatedAt),
		}
	})
}

// createGiftBody держит поля запроса в сыром виде, чтобы поле неверного
// типа стало нарушением, а не ошибкой разбора всего тела.
type createGiftBody struct {
	SenderID            jsoniter.RawMessage `json:"senderId"`
	SenderWallet        jsoniter.RawMessage `json:"senderWallet"`
	RecipientID         jsoniter.RawMessage `json:"recipientId"`
	RecipientWallet     jsoniter.RawMessage `json:"recipientWallet"`
	PostID              jsoniter.RawMessage `json:"postId"`
	Amount              jsoniter.RawMessage `json:"amount"`
	Token               jsoniter.RawMessage `json:"token"`
	SenderBalanceAtTime jsoniter.RawMessage `json:"senderBalanceAtTime"`
}

func newDomainGiftDraft(body createGiftBody) entity.GiftDraft {
	var draft entity.GiftDraft

	fields := []struct {
		name string
		raw  jsoniter.RawMessage
		dest any
	}{
		{name: "senderId", raw: body.SenderID, dest: &draft.SenderID},
		{name: "senderWallet", raw: body.SenderWallet, dest: &draft.SenderWallet},
		{name: "recipientId", raw: body.RecipientID, dest: &draft.RecipientID},
		{name: "recipientWallet", raw: body.RecipientWallet, dest: &draft.RecipientWallet},
		{name: "postId", raw: body.PostID, dest: &draft.PostID},
		{name: "amount", raw: body.Amount, dest: &draft.Amount},
		{name: "token", raw: body.Token, dest: &draft.Token},
		{name: "senderBalanceAtTime", raw: body.SenderBalanceAtTime, dest: &draft.SenderBalanceAtTime},
	}

	// Отсутствующее поле и null дают нулевое значение, его проверяет сервис.
	for _, field := range fields {
		if len(field.raw) == 0 {
			continue
		}

		if err := json.Unmarshal(field.raw, field.dest); err != nil {
			draft.Malformed = append(draft.Malformed, field.name)
		}
	}

	return draft
}
