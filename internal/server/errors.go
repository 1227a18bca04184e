package server

import (
	"errors"

	"git.appkode.ru/pub/go/failure"

	"gift_ledger/internal/domain"
	"gift_ledger/pkg/errcodes"
	"gift_ledger/pkg/httpx/reply"
)

// newFailure переводит доменную ошибку в failure, который рендерит reply.Error.
// Сбои хранилища и неизвестные ошибки проходят как есть и дают 500.
func newFailure(err error) error {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return reply.WithViolations(
			failure.NewInvalidArgumentError(
				validationErr.Error(),
				failure.WithCode(errcodes.ValidationError),
				failure.WithDescription("Validation failed"),
			),
			validationErr.Violations(),
		)
	}

	var appErr *domain.AppError
	if !errors.As(err, &appErr) {
		return err
	}

	switch appErr.Kind {
	case domain.KindBusinessRuleViolation, domain.KindValidationFailed:
		return failure.NewInvalidArgumentError(
			err.Error(),
			failure.WithCode(appErr.Code),
			failure.WithDescription(appErr.Message),
		)
	case domain.KindNotFound:
		return failure.NewNotFoundError(
			err.Error(),
			failure.WithCode(appErr.Code),
			failure.WithDescription(appErr.Message),
		)
	case domain.KindConflict:
		return failure.NewConflictError(
			err.Error(),
			failure.WithCode(appErr.Code),
			failure.WithDescription(appErr.Message),
		)
	default:
		return err
	}
}
