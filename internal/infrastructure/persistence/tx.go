package persistence

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"gift_ledger/internal/domain"
	"gift_ledger/pkg/errcodes"
	"gift_ledger/pkg/logx"
)

// withTx выполняет fn в транзакции: коммит при nil, иначе откат, в том числе
// при панике. Ошибки fn возвращаются без обертки, чтобы сохранить их Kind.
// Оборачиваются только сбои begin и commit.
func withTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "Failed to begin transaction")
	}

	committed := false

	defer func() {
		if committed {
			return
		}

		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, context.Canceled) {
			logger(ctx).Warn("tx.Rollback", logx.Error(rbErr))
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "Failed to commit transaction")
	}

	committed = true

	return nil
}
