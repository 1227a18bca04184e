package persistence

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"gift_ledger/internal/domain"
	"gift_ledger/internal/domain/entity"
	"gift_ledger/pkg/errcodes"
)

type TotalsRepository struct {
	db *sqlx.DB
}

func NewTotalsRepository(db *sqlx.DB) *TotalsRepository {
	return &TotalsRepository{db: db}
}

// ApplyCompleted добавляет подарок в итоги поста. Повторный вызов для того же
// подарка ничего не меняет благодаря ключу gift_totals_applied.
func (r *TotalsRepository) ApplyCompleted(ctx context.Context, gift *entity.Gift) (bool, error) {
	var applied bool

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO gift_totals_applied (gift_id) VALUES ($1) ON CONFLICT (gift_id) DO NOTHING`,
			gift.ID,
		)
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to mark gift applied")
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to check affected rows")
		}

		if rows == 0 {
			return nil
		}

		query := `
			INSERT INTO post_gift_totals (post_id, token, gift_count, amount_total, updated_at)
			VALUES ($1, $2, 1, $3, now())
			ON CONFLICT (post_id, token) DO UPDATE
			SET gift_count = post_gift_totals.gift_count + 1,
			    amount_total = post_gift_totals.amount_total + EXCLUDED.amount_total,
			    updated_at = now()`

		if _, err := tx.ExecContext(ctx, query, gift.PostID, gift.Token, decimal.NewFromFloat(gift.Amount)); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to update post totals")
		}

		applied = true

		return nil
	})
	if err != nil {
		return false, err
	}

	return applied, nil
}

func (r *TotalsRepository) ListByPost(ctx context.Context, postID string) ([]entity.PostGiftTotal, error) {
	query := `
		SELECT post_id, token, gift_count, amount_total, updated_at
		FROM post_gift_totals
		WHERE post_id = $1
		ORDER BY token ASC`

	var schemas []postGiftTotalSchema
	if err := r.db.SelectContext(ctx, &schemas, query, postID); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list post totals")
	}

	totals := make([]entity.PostGiftTotal, 0, len(schemas))
	for _, s := range schemas {
		totals = append(totals, s.toDomain())
	}

	return totals, nil
}

// ListUnapplied возвращает завершенные подарки, еще не учтенные в итогах,
// начиная с давно завершенных.
func (r *TotalsRepository) ListUnapplied(ctx context.Context, limit int) ([]string, error) {
	query := `
		SELECT g.id
		FROM gifts g
		WHERE g.status = 'completed'
		  AND NOT EXISTS (SELECT 1 FROM gift_totals_applied a WHERE a.gift_id = g.id)
		ORDER BY g.updated_at ASC, g.id ASC
		LIMIT $1`

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, limit); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list unapplied gifts")
	}

	return ids, nil
}
