package repository

import (
	"context"
	"fmt"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// PromotionCodeConstraint guards promotion code uniqueness.
const PromotionCodeConstraint = "uq_promotions_code"

type PromotionRepository interface {
	Create(ctx context.Context, promo *entity.Promotion) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Promotion, error)
	FindByCode(ctx context.Context, code string) (*entity.Promotion, error)
	FindAll(ctx context.Context) ([]*entity.Promotion, error)
	FindUsable(ctx context.Context, now time.Time) ([]*entity.Promotion, error)
	Update(ctx context.Context, promo *entity.Promotion) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type promotionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPromotionRepository(db database.PgxIface, log *zap.Logger) PromotionRepository {
	return &promotionRepository{
		db:  db,
		log: log.With(zap.String("repository", "promotion")),
	}
}

const promotionColumns = `id, code, title, description, promo_type, value, start_date, expiry_date,
		       is_active, created_at, updated_at`

func scanPromotion(row pgx.Row) (*entity.Promotion, error) {
	var p entity.Promotion
	err := row.Scan(
		&p.ID,
		&p.Code,
		&p.Title,
		&p.Description,
		&p.PromoType,
		&p.Value,
		&p.StartDate,
		&p.ExpiryDate,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *promotionRepository) queryList(ctx context.Context, query string, args ...any) ([]*entity.Promotion, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list promotions", zap.Error(err))
		return nil, fmt.Errorf("list promotions: %w", err)
	}
	defer rows.Close()

	var promos []*entity.Promotion
	for rows.Next() {
		promo, err := scanPromotion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan promotion: %w", err)
		}
		promos = append(promos, promo)
	}
	return promos, rows.Err()
}

func (r *promotionRepository) Create(ctx context.Context, promo *entity.Promotion) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO promotions (id, code, title, description, promo_type, value, start_date,
		                        expiry_date, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		promo.ID,
		promo.Code,
		promo.Title,
		promo.Description,
		promo.PromoType,
		promo.Value,
		promo.StartDate,
		promo.ExpiryDate,
		promo.IsActive,
		promo.CreatedAt,
		promo.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create promotion",
			zap.Error(err),
			zap.String("code", promo.Code),
		)
		return fmt.Errorf("create promotion: %w", err)
	}
	return nil
}

func (r *promotionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Promotion, error) {
	promo, err := scanPromotion(r.db.QueryRow(ctx, `SELECT `+promotionColumns+` FROM promotions WHERE id = $1`, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find promotion", zap.Error(err), zap.String("promotion_id", id.String()))
		return nil, fmt.Errorf("find promotion: %w", err)
	}
	return promo, nil
}

// FindByCode expects an upper-cased code; codes are stored upper-case.
func (r *promotionRepository) FindByCode(ctx context.Context, code string) (*entity.Promotion, error) {
	promo, err := scanPromotion(r.db.QueryRow(ctx, `SELECT `+promotionColumns+` FROM promotions WHERE code = $1`, code))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find promotion by code", zap.Error(err), zap.String("code", code))
		return nil, fmt.Errorf("find promotion by code: %w", err)
	}
	return promo, nil
}

func (r *promotionRepository) FindAll(ctx context.Context) ([]*entity.Promotion, error) {
	return r.queryList(ctx, `SELECT `+promotionColumns+` FROM promotions ORDER BY created_at DESC`)
}

func (r *promotionRepository) FindUsable(ctx context.Context, now time.Time) ([]*entity.Promotion, error) {
	return r.queryList(ctx, `
		SELECT `+promotionColumns+`
		FROM promotions
		WHERE is_active = TRUE AND start_date <= $1 AND expiry_date >= $1
		ORDER BY expiry_date ASC
	`, now)
}

func (r *promotionRepository) Update(ctx context.Context, promo *entity.Promotion) error {
	result, err := r.db.Exec(ctx, `
		UPDATE promotions
		SET code = $2, title = $3, description = $4, promo_type = $5, value = $6,
		    start_date = $7, expiry_date = $8, is_active = $9, updated_at = $10
		WHERE id = $1
	`,
		promo.ID,
		promo.Code,
		promo.Title,
		promo.Description,
		promo.PromoType,
		promo.Value,
		promo.StartDate,
		promo.ExpiryDate,
		promo.IsActive,
		promo.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update promotion", zap.Error(err), zap.String("promotion_id", promo.ID.String()))
		return fmt.Errorf("update promotion: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("promotion not found")
	}
	return nil
}

func (r *promotionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM promotions WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("promotion cannot be deleted while receipts reference it")
		}
		r.log.Error("Failed to delete promotion", zap.Error(err), zap.String("promotion_id", id.String()))
		return fmt.Errorf("delete promotion: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("promotion not found")
	}
	return nil
}
