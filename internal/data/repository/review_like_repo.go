package repository

import (
	"context"
	"fmt"

	"cinema-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReviewLikeRepository interface {
	// Toggle flips the user's like and returns the new state with the review's like count
	Toggle(ctx context.Context, reviewID, userID uuid.UUID) (bool, int64, error)
}

type reviewLikeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewLikeRepository(db database.PgxIface, log *zap.Logger) ReviewLikeRepository {
	return &reviewLikeRepository{
		db:  db,
		log: log.With(zap.String("repository", "review_like")),
	}
}

func (r *reviewLikeRepository) Toggle(ctx context.Context, reviewID, userID uuid.UUID) (bool, int64, error) {
	var liked bool
	var count int64

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx,
			`DELETE FROM review_likes WHERE review_id = $1 AND user_id = $2`, reviewID, userID)
		if err != nil {
			return err
		}

		if result.RowsAffected() == 0 {
			_, err = tx.Exec(ctx, `
				INSERT INTO review_likes (review_id, user_id, created_at)
				VALUES ($1, $2, NOW())
				ON CONFLICT DO NOTHING
			`, reviewID, userID)
			if err != nil {
				return err
			}
			liked = true
		}

		return tx.QueryRow(ctx, `SELECT COUNT(*) FROM review_likes WHERE review_id = $1`, reviewID).Scan(&count)
	})

	if err != nil {
		r.log.Error("Failed to toggle review like",
			zap.Error(err),
			zap.String("review_id", reviewID.String()),
			zap.String("user_id", userID.String()),
		)
		return false, 0, fmt.Errorf("toggle like: %w", err)
	}
	return liked, count, nil
}
