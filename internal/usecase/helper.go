package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"

	"github.com/google/uuid"
)

func parseID(kind, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s ID format %s: %w", kind, raw, err)
	}
	return id, nil
}

func parseDate(raw string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return t, nil
}

func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := parseDate(*raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func newBase() entity.Base {
	now := time.Now()
	return entity.Base{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// refreshMovieRating recomputes the movie's rating from its review average.
func refreshMovieRating(ctx context.Context, repo *repository.Repository, movieID uuid.UUID) error {
	stats, err := repo.Review.GetMovieReviewStats(ctx, movieID)
	if err != nil {
		return fmt.Errorf("get review stats: %w", err)
	}
	if err := repo.Movie.UpdateRating(ctx, movieID, stats.AverageRating); err != nil {
		return fmt.Errorf("update movie rating: %w", err)
	}
	return nil
}
