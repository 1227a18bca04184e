package persistence

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"gift_ledger/internal/domain/entity"
	"gift_ledger/internal/domain/value"
)

const giftColumns = `id, sender_id, sender_wallet, recipient_id, recipient_wallet, post_id,
	amount, token, sender_balance_at_time, status, tx_signature, created_at, updated_at`

// giftSchema - строка таблицы gifts.
type giftSchema struct {
	ID                  string    `db:"id"`
	SenderID            string    `db:"sender_id"`
	SenderWallet        string    `db:"sender_wallet"`
	RecipientID         string    `db:"recipient_id"`
	RecipientWallet     string    `db:"recipient_wallet"`
	PostID              string    `db:"post_id"`
	Amount              float64   `db:"amount"`
	Token               string    `db:"token"`
	SenderBalanceAtTime *float64  `db:"sender_balance_at_time"`
	Status              string    `db:"status"`
	TxSignature         *string   `db:"tx_signature"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`
}

func fromGift(g *entity.Gift) giftSchema {
	return giftSchema{
		ID:                  g.ID,
		SenderID:            g.SenderID,
		SenderWallet:        g.SenderWallet,
		RecipientID:         g.RecipientID,
		RecipientWallet:     g.RecipientWallet,
		PostID:              g.PostID,
		Amount:              g.Amount,
		Token:               g.Token,
		SenderBalanceAtTime: g.SenderBalanceAtTime,
		Status:              g.Status.String(),
		TxSignature:         g.TxSignature,
		CreatedAt:           g.CreatedAt,
		UpdatedAt:           g.UpdatedAt,
	}
}

func (s *giftSchema) toDomain() (*entity.Gift, error) {
	status, err := value.ParseGiftStatus(s.Status)
	if err != nil {
		return nil, fmt.Errorf("gift %s: %w", s.ID, err)
	}

	return &entity.Gift{
		ID:                  s.ID,
		SenderID:            s.SenderID,
		SenderWallet:        s.SenderWallet,
		RecipientID:         s.RecipientID,
		RecipientWallet:     s.RecipientWallet,
		PostID:              s.PostID,
		Amount:              s.Amount,
		Token:               s.Token,
		SenderBalanceAtTime: s.SenderBalanceAtTime,
		Status:              status,
		TxSignature:         s.TxSignature,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}, nil
}

// postGiftTotalSchema - строка таблицы post_gift_totals.
type postGiftTotalSchema struct {
	PostID      string          `db:"post_id"`
	Token       string          `db:"token"`
	GiftCount   int64           `db:"gift_count"`
	AmountTotal decimal.Decimal `db:"amount_total"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

func (s *postGiftTotalSchema) toDomain() entity.PostGiftTotal {
	return entity.PostGiftTotal{
		PostID:      s.PostID,
		Token:       s.Token,
		GiftCount:   s.GiftCount,
		AmountTotal: s.AmountTotal,
		UpdatedAt:   s.UpdatedAt,
	}
}
