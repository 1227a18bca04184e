package domain

import (
	"errors"
	"fmt"
	"strings"

	"git.appkode.ru/pub/go/failure"

	"gift_ledger/pkg/errcodes"
)

// Kind говорит вызывающему, как реагировать на ошибку, не разбирая ее текст.
type Kind int

const (
	KindStoreFailure Kind = iota
	KindValidationFailed
	KindBusinessRuleViolation
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidationFailed:
		return "ValidationFailed"
	case KindBusinessRuleViolation:
		return "BusinessRuleViolation"
	case KindNotFound:
		return "NotFound"
	case KindConflict:
		return "Conflict"
	default:
		return "StoreFailure"
	}
}

// AppError - доменная ошибка со стабильным кодом.
type AppError struct {
	Code    failure.ErrorCode
	Kind    Kind
	Message string
	cause   error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.cause
}

func NewError(kind Kind, code failure.ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
	}
}

// WrapError помечает err как сбой хранилища.
func WrapError(err error, code failure.ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    KindStoreFailure,
		Message: message,
		cause:   err,
	}
}

func NewNotFoundError(code failure.ErrorCode, message string) *AppError {
	return NewError(KindNotFound, code, message)
}

func NewConflictError(code failure.ErrorCode, message string) *AppError {
	return NewError(KindConflict, code, message)
}

func NewBusinessRuleError(code failure.ErrorCode, message string) *AppError {
	return NewError(KindBusinessRuleViolation, code, message)
}

// ValidationError собирает все нарушения полей одного запроса.
type ValidationError struct {
	violations []string
}

func NewValidationError(violations ...string) *ValidationError {
	return &ValidationError{violations: violations}
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.violations, "; ")
}

func (e *ValidationError) Violations() []string {
	return e.violations
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetCode достает код доменной ошибки.
func GetCode(err error) (failure.ErrorCode, bool) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return errcodes.ValidationError, true
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code, true
	}
	return "", false
}

// KindOf классифицирует err. Все нераспознанное считается сбоем хранилища.
func KindOf(err error) Kind {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return KindValidationFailed
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}

	return KindStoreFailure
}
