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

// ReviewUserMovieConstraint enforces one review per user and movie.
const ReviewUserMovieConstraint = "uq_reviews_user_movie"

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	FindByUserAndMovie(ctx context.Context, userID, movieID uuid.UUID) (*entity.Review, error)
	FindByMovieID(ctx context.Context, movieID uuid.UUID, limit, offset int) ([]*entity.ReviewWithAuthor, error)
	CountByMovieID(ctx context.Context, movieID uuid.UUID) (int64, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.ReviewWithAuthor, error)
	Update(ctx context.Context, review *entity.Review) error

	// DeleteCascade removes the review with its replies, likes and reports
	DeleteCascade(ctx context.Context, id uuid.UUID) error

	GetMovieReviewStats(ctx context.Context, movieID uuid.UUID) (*entity.ReviewStats, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

const reviewColumns = `r.id, r.user_id, r.movie_id, r.rating, r.comment, r.created_at, r.updated_at`

const reviewWithAuthorQuery = `
		SELECT ` + reviewColumns + `, u.username,
		       (SELECT COUNT(*) FROM review_likes l WHERE l.review_id = r.id) AS like_count,
		       (SELECT COUNT(*) FROM replies p WHERE p.review_id = r.id) AS reply_count
		FROM reviews r
		JOIN users u ON u.id = r.user_id
	`

func reviewScanTargets(rv *entity.Review) []any {
	return []any{&rv.ID, &rv.UserID, &rv.MovieID, &rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt}
}

func (r *reviewRepository) queryWithAuthor(ctx context.Context, query string, args ...any) ([]*entity.ReviewWithAuthor, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*entity.ReviewWithAuthor
	for rows.Next() {
		var rv entity.ReviewWithAuthor
		targets := append(reviewScanTargets(&rv.Review), &rv.Username, &rv.LikeCount, &rv.ReplyCount)
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, &rv)
	}
	return reviews, rows.Err()
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO reviews (id, user_id, movie_id, rating, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		review.ID,
		review.UserID,
		review.MovieID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
		review.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", review.UserID.String()),
			zap.String("movie_id", review.MovieID.String()),
		)
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

func (r *reviewRepository) findOne(ctx context.Context, where string, args ...any) (*entity.Review, error) {
	var review entity.Review
	err := r.db.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews r WHERE `+where, args...).
		Scan(reviewScanTargets(&review)...)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review", zap.Error(err))
		return nil, fmt.Errorf("find review: %w", err)
	}
	return &review, nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	return r.findOne(ctx, "r.id = $1", id)
}

func (r *reviewRepository) FindByUserAndMovie(ctx context.Context, userID, movieID uuid.UUID) (*entity.Review, error) {
	return r.findOne(ctx, "r.user_id = $1 AND r.movie_id = $2", userID, movieID)
}

func (r *reviewRepository) FindByMovieID(ctx context.Context, movieID uuid.UUID, limit, offset int) ([]*entity.ReviewWithAuthor, error) {
	reviews, err := r.queryWithAuthor(ctx,
		reviewWithAuthorQuery+` WHERE r.movie_id = $1 ORDER BY r.created_at DESC LIMIT $2 OFFSET $3`,
		movieID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reviews by movie",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return nil, fmt.Errorf("find movie reviews: %w", err)
	}
	return reviews, nil
}

func (r *reviewRepository) CountByMovieID(ctx context.Context, movieID uuid.UUID) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews WHERE movie_id = $1`, movieID).Scan(&total); err != nil {
		r.log.Error("Failed to count reviews", zap.Error(err), zap.String("movie_id", movieID.String()))
		return 0, fmt.Errorf("count reviews: %w", err)
	}
	return total, nil
}

func (r *reviewRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.ReviewWithAuthor, error) {
	reviews, err := r.queryWithAuthor(ctx,
		reviewWithAuthorQuery+` WHERE r.user_id = $1 ORDER BY r.created_at DESC`, userID)
	if err != nil {
		r.log.Error("Failed to find reviews by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find user reviews: %w", err)
	}
	return reviews, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	result, err := r.db.Exec(ctx,
		`UPDATE reviews SET rating = $2, comment = $3, updated_at = $4 WHERE id = $1`,
		review.ID, review.Rating, review.Comment, review.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to update review", zap.Error(err), zap.String("review_id", review.ID.String()))
		return fmt.Errorf("update review: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("review not found")
	}
	return nil
}

func (r *reviewRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		return deleteReviewsTx(ctx, tx, []uuid.UUID{id})
	})
	if err != nil {
		r.log.Error("Failed to delete review", zap.Error(err), zap.String("review_id", id.String()))
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}

func (r *reviewRepository) GetMovieReviewStats(ctx context.Context, movieID uuid.UUID) (*entity.ReviewStats, error) {
	rows, err := r.db.Query(ctx,
		`SELECT rating, COUNT(*) FROM reviews WHERE movie_id = $1 GROUP BY rating`, movieID)
	if err != nil {
		r.log.Error("Failed to get review stats", zap.Error(err), zap.String("movie_id", movieID.String()))
		return nil, fmt.Errorf("review stats: %w", err)
	}
	defer rows.Close()

	stats := &entity.ReviewStats{Distribution: map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
	var sum int64
	for rows.Next() {
		var rating int
		var count int64
		if err := rows.Scan(&rating, &count); err != nil {
			return nil, fmt.Errorf("scan review stats: %w", err)
		}
		stats.Distribution[rating] = count
		stats.TotalReviews += count
		sum += int64(rating) * count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review stats: %w", err)
	}

	if stats.TotalReviews > 0 {
		stats.AverageRating = float64(sum) / float64(stats.TotalReviews)
	}
	return stats, nil
}
