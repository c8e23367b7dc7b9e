package repository

import (
	"context"
	"fmt"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReceiptRepository interface {
	// CreateWithTickets inserts the receipt and marks every ticket paid in one transaction
	CreateWithTickets(ctx context.Context, receipt *entity.Receipt, ticketIDs []uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Receipt, error)

	// DeleteAndRelease reverts the receipt's paid tickets to reserved, then deletes the receipt
	DeleteAndRelease(ctx context.Context, id uuid.UUID) (int64, error)
}

type receiptRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReceiptRepository(db database.PgxIface, log *zap.Logger) ReceiptRepository {
	return &receiptRepository{
		db:  db,
		log: log.With(zap.String("repository", "receipt")),
	}
}

const receiptColumns = `id, receipt_number, user_id, movie_id, promotion_id, subtotal, discount,
		       total_price, payment_method, created_at, updated_at`

func scanReceipt(row pgx.Row) (*entity.Receipt, error) {
	var rc entity.Receipt
	err := row.Scan(
		&rc.ID,
		&rc.ReceiptNumber,
		&rc.UserID,
		&rc.MovieID,
		&rc.PromotionID,
		&rc.Subtotal,
		&rc.Discount,
		&rc.TotalPrice,
		&rc.PaymentMethod,
		&rc.CreatedAt,
		&rc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rc, nil
}

func (r *receiptRepository) CreateWithTickets(ctx context.Context, receipt *entity.Receipt, ticketIDs []uuid.UUID) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO receipts (id, receipt_number, user_id, movie_id, promotion_id, subtotal,
			                      discount, total_price, payment_method, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`,
			receipt.ID,
			receipt.ReceiptNumber,
			receipt.UserID,
			receipt.MovieID,
			receipt.PromotionID,
			receipt.Subtotal,
			receipt.Discount,
			receipt.TotalPrice,
			receipt.PaymentMethod,
			receipt.CreatedAt,
			receipt.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert receipt: %w", err)
		}

		result, err := tx.Exec(ctx, `
			UPDATE tickets
			SET status = 'paid', receipt_id = $1, updated_at = NOW()
			WHERE id = ANY($2) AND user_id = $3 AND status = 'reserved' AND receipt_id IS NULL
		`, receipt.ID, ticketIDs, receipt.UserID)
		if err != nil {
			return fmt.Errorf("mark tickets paid: %w", err)
		}

		// Any ticket that changed since validation aborts the whole receipt.
		if result.RowsAffected() != int64(len(ticketIDs)) {
			return fmt.Errorf("tickets already paid or no longer reserved: updated %d of %d",
				result.RowsAffected(), len(ticketIDs))
		}
		return nil
	})

	if err != nil {
		r.log.Error("Failed to create receipt",
			zap.Error(err),
			zap.String("user_id", receipt.UserID.String()),
			zap.Int("ticket_count", len(ticketIDs)),
		)
		return fmt.Errorf("create receipt: %w", err)
	}

	r.log.Info("Receipt created",
		zap.String("receipt_id", receipt.ID.String()),
		zap.String("receipt_number", receipt.ReceiptNumber),
	)
	return nil
}

func (r *receiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	receipt, err := scanReceipt(r.db.QueryRow(ctx, `SELECT `+receiptColumns+` FROM receipts WHERE id = $1`, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find receipt",
			zap.Error(err),
			zap.String("receipt_id", id.String()),
		)
		return nil, fmt.Errorf("find receipt: %w", err)
	}
	return receipt, nil
}

func (r *receiptRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Receipt, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+receiptColumns+` FROM receipts WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		r.log.Error("Failed to find receipts by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find user receipts: %w", err)
	}
	defer rows.Close()

	var receipts []*entity.Receipt
	for rows.Next() {
		receipt, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		receipts = append(receipts, receipt)
	}
	return receipts, rows.Err()
}

func (r *receiptRepository) DeleteAndRelease(ctx context.Context, id uuid.UUID) (int64, error) {
	var released int64

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx, `
			UPDATE tickets
			SET status = 'reserved', receipt_id = NULL, updated_at = NOW()
			WHERE receipt_id = $1 AND status = 'paid'
		`, id)
		if err != nil {
			return fmt.Errorf("revert tickets: %w", err)
		}
		released = result.RowsAffected()

		result, err = tx.Exec(ctx, `DELETE FROM receipts WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete receipt row: %w", err)
		}
		if result.RowsAffected() == 0 {
			return fmt.Errorf("receipt not found")
		}
		return nil
	})

	if err != nil {
		r.log.Error("Failed to delete receipt",
			zap.Error(err),
			zap.String("receipt_id", id.String()),
		)
		return 0, fmt.Errorf("delete receipt: %w", err)
	}

	r.log.Info("Receipt deleted",
		zap.String("receipt_id", id.String()),
		zap.Int64("released_tickets", released),
	)
	return released, nil
}
