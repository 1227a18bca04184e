package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostGiftTotal - сумма завершенных подарков одного токена на одном посте.
type PostGiftTotal struct {
	PostID      string
	Token       string
	GiftCount   int64
	AmountTotal decimal.Decimal
	UpdatedAt   time.Time
}
