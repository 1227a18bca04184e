package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"gift_ledger/internal/domain"
	"gift_ledger/internal/domain/entity"
)

var draftValidator = newDraftValidator() //nolint:gochecknoglobals

// draftFields задает порядок, в котором сообщаются нарушения.
//
//nolint:gochecknoglobals
var draftFields = []string{
	"senderId",
	"senderWallet",
	"recipientId",
	"recipientWallet",
	"postId",
	"amount",
	"token",
	"senderBalanceAtTime",
}

//nolint:gochecknoglobals
var violationMessages = map[string]string{
	"senderId":            "senderId is required and must be a string",
	"senderWallet":        "senderWallet is required and must be a string",
	"recipientId":         "recipientId is required and must be a string",
	"recipientWallet":     "recipientWallet is required and must be a string",
	"postId":              "postId is required and must be a string",
	"amount":              "amount is required and must be a positive number",
	"token":               "token is required and must be a string",
	"senderBalanceAtTime": "senderBalanceAtTime must be a non-negative number or null",
}

func newDraftValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		return name
	})

	return v
}

// validateDraft сообщает обо всех нарушенных полях сразу, включая поля
// неверного типа.
func validateDraft(draft entity.GiftDraft) error {
	failed := make(map[string]bool, len(draftFields))

	for _, field := range draft.Malformed {
		failed[field] = true
	}

	if err := draftValidator.Struct(draft); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return domain.NewValidationError(err.Error())
		}

		for _, fe := range validationErrors {
			failed[fe.Field()] = true
		}
	}

	if len(failed) == 0 {
		return nil
	}

	violations := make([]string, 0, len(failed))

	for _, field := range draftFields {
		if failed[field] {
			violations = append(violations, violationMessages[field])
		}
	}

	return domain.NewValidationError(violations...)
}
