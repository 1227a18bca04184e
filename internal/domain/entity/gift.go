package entity

import (
	"time"

	"gift_ledger/internal/domain/value"
)

type Gift struct {
	ID                  string
	SenderID            string
	SenderWallet        string
	RecipientID         string
	RecipientWallet     string
	PostID              string
	Amount              float64
	Token               string
	SenderBalanceAtTime *float64
	Status              value.GiftStatus
	TxSignature         *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// GiftDraft - часть подарка, которую передает клиент. Нарушения
// сообщаются в порядке полей.
type GiftDraft struct {
	SenderID            string   `json:"senderId" validate:"required"`
	SenderWallet        string   `json:"senderWallet" validate:"required"`
	RecipientID         string   `json:"recipientId" validate:"required"`
	RecipientWallet     string   `json:"recipientWallet" validate:"required"`
	PostID              string   `json:"postId" validate:"required"`
	Amount              float64  `json:"amount" validate:"gt=0"`
	Token               string   `json:"token" validate:"required"`
	SenderBalanceAtTime *float64 `json:"senderBalanceAtTime" validate:"omitnil,gte=0"`
	// Malformed - json-имена полей, пришедших с неверным типом.
	Malformed []string `json:"-"`
}

// NewPendingGift собирает запись для вставки, id и время проставляет хранилище.
func NewPendingGift(draft GiftDraft) Gift {
	return Gift{
		SenderID:            draft.SenderID,
		SenderWallet:        draft.SenderWallet,
		RecipientID:         draft.RecipientID,
		RecipientWallet:     draft.RecipientWallet,
		PostID:              draft.PostID,
		Amount:              draft.Amount,
		Token:               draft.Token,
		SenderBalanceAtTime: draft.SenderBalanceAtTime,
		Status:              value.GiftStatusPending,
	}
}
