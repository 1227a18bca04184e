// Данный файл должен быть сгенерирован из openapi спецификации и называться types.gen.go
package rest

// Gift Подарок к посту
type Gift struct {
	ID                  string   `json:"id"`
	SenderID            string   `json:"senderId"`
	SenderWallet        string   `json:"senderWallet"`
	RecipientID         string   `json:"recipientId"`
	RecipientWallet     string   `json:"recipientWallet"`
	PostID              string   `json:"postId"`
	Amount              float64  `json:"amount"`
	Token               string   `json:"token"`
	SenderBalanceAtTime *float64 `json:"senderBalanceAtTime"`
	Status              string   `json:"status"`
	TxSignature         *string  `json:"txSignature"`

	// CreatedAt в формате RFC 3339
	CreatedAt string `json:"createdAt"`

	// UpdatedAt в формате RFC 3339
	UpdatedAt string `json:"updatedAt"`
}

// CreateGiftRequest Тело запроса на создание подарка
type CreateGiftRequest struct {
	SenderID            string   `json:"senderId"`
	SenderWallet        string   `json:"senderWallet"`
	RecipientID         string   `json:"recipientId"`
	RecipientWallet     string   `json:"recipientWallet"`
	PostID              string   `json:"postId"`
	Amount              float64  `json:"amount"`
	Token               string   `json:"token"`
	SenderBalanceAtTime *float64 `json:"senderBalanceAtTime"`
}

type CreateGiftResponse struct {
	GiftID string `json:"giftId"`
	Gift   Gift   `json:"gift"`
}

type CompleteGiftRequest struct {
	GiftID               string `json:"giftId" validate:"required"`
	TransactionSignature string `json:"transactionSignature" validate:"required"`
}

type CompleteGiftResponse struct {
	Gift Gift `json:"gift"`
}

type CancelGiftRequest struct {
	GiftID string `json:"giftId" validate:"required"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type GiftListResponse struct {
	Gifts []Gift `json:"gifts"`
}

// PostGiftTotal Сумма завершённых подарков поста в одном токене
type PostGiftTotal struct {
	PostID    string `json:"postId"`
	Token     string `json:"token"`
	GiftCount int64  `json:"giftCount"`

	// AmountTotal Десятичная строка
	AmountTotal string `json:"amountTotal"`
	UpdatedAt   string `json:"updatedAt"`
}

type PostGiftTotalsResponse struct {
	Totals []PostGiftTotal `json:"totals"`
}

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке (для отображения в UI в будущем)
	Message string `json:"message"`

	// SupportID Идентификатор запроса для поддержки
	SupportID string `json:"supportId"`

	// Errors Список ошибок валидации по полям
	Errors []string `json:"errors,omitempty"`
}

// ErrorCode Код ошибки
type ErrorCode string
