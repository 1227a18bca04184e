package persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/rs/xid"

	"gift_ledger/internal/domain"
	"gift_ledger/internal/domain/entity"
	"gift_ledger/internal/domain/value"
	"gift_ledger/pkg/errcodes"
	"gift_ledger/pkg/lox"
)

type GiftRepository struct {
	db *sqlx.DB
}

func NewGiftRepository(db *sqlx.DB) *GiftRepository {
	return &GiftRepository{db: db}
}

// Create назначает id, оба времени берутся из часов базы.
func (r *GiftRepository) Create(ctx context.Context, gift *entity.Gift) error {
	schema := fromGift(gift)
	schema.ID = xid.New().String()

	query, args, err := sqlx.Named(`
		INSERT INTO gifts (
			id, sender_id, sender_wallet, recipient_id, recipient_wallet,
			post_id, amount, token, sender_balance_at_time, status, tx_signature
		) VALUES (
			:id, :sender_id, :sender_wallet, :recipient_id, :recipient_wallet,
			:post_id, :amount, :token, :sender_balance_at_time, :status, :tx_signature
		)
		RETURNING created_at, updated_at`, schema)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to build query")
	}

	row := r.db.QueryRowxContext(ctx, r.db.Rebind(query), args...)
	if err := row.Scan(&schema.CreatedAt, &schema.UpdatedAt); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "Failed to create gift record")
	}

	gift.ID = schema.ID
	gift.CreatedAt = schema.CreatedAt
	gift.UpdatedAt = schema.UpdatedAt

	return nil
}

func (r *GiftRepository) GetByID(ctx context.Context, id string) (*entity.Gift, error) {
	query := `SELECT ` + giftColumns + ` FROM gifts WHERE id = $1`

	var schema giftSchema
	if err := r.db.GetContext(ctx, &schema, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError(errcodes.GiftNotFound, "Gift not found")
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get gift")
	}

	return r.convert(schema)
}

// Transition меняет статус по принципу compare-and-swap: обновляется только
// строка в pending, поэтому параллельные complete и cancel не затирают друг друга.
func (r *GiftRepository) Transition(
	ctx context.Context,
	id string,
	to value.GiftStatus,
	txSignature *string,
) (*entity.Gift, error) {
	var schema giftSchema

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			UPDATE gifts
			SET status = $1, tx_signature = $2, updated_at = now()
			WHERE id = $3 AND status = $4
			RETURNING ` + giftColumns

		err := tx.GetContext(ctx, &schema, query, to.String(), txSignature, id, value.GiftStatusPending.String())
		if err == nil {
			return nil
		}

		if !errors.Is(err, sql.ErrNoRows) {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to update gift status")
		}

		var current string
		if err := tx.GetContext(ctx, &current, `SELECT status FROM gifts WHERE id = $1`, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.NewNotFoundError(errcodes.GiftNotFound, "Gift not found")
			}
			return domain.WrapError(err, errcodes.InternalServerError, "failed to get gift status")
		}

		return domain.NewConflictError(errcodes.GiftAlreadyFinalized, "Gift is already "+current)
	})
	if err != nil {
		return nil, err
	}

	return r.convert(schema)
}

func (r *GiftRepository) ListCompletedByPost(ctx context.Context, postID string) ([]entity.Gift, error) {
	query := `
		SELECT ` + giftColumns + `
		FROM gifts
		WHERE post_id = $1 AND status = $2
		ORDER BY created_at DESC, id DESC`

	var schemas []giftSchema
	if err := r.db.SelectContext(ctx, &schemas, query, postID, value.GiftStatusCompleted.String()); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "Failed to fetch gifts")
	}

	return lox.MapErr(schemas, func(schema giftSchema) (entity.Gift, error) {
		gift, err := r.convert(schema)
		if err != nil {
			return entity.Gift{}, err
		}

		return *gift, nil
	})
}

func (r *GiftRepository) convert(schema giftSchema) (*entity.Gift, error) {
	gift, err := schema.toDomain()
	if err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to convert gift")
	}

	return gift, nil
}
