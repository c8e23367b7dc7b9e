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

type PreferenceRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserPreference, error)
	Upsert(ctx context.Context, pref *entity.UserPreference) error
}

type preferenceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPreferenceRepository(db database.PgxIface, log *zap.Logger) PreferenceRepository {
	return &preferenceRepository{
		db:  db,
		log: log.With(zap.String("repository", "preference")),
	}
}

func (r *preferenceRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserPreference, error) {
	query := `
		SELECT user_id, favorite_genres, language, email_notifications, theme, updated_at
		FROM user_preferences
		WHERE user_id = $1
	`

	var pref entity.UserPreference
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&pref.UserID,
		&pref.FavoriteGenres,
		&pref.Language,
		&pref.EmailNotifications,
		&pref.Theme,
		&pref.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find preferences",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find preferences: %w", err)
	}

	return &pref, nil
}

func (r *preferenceRepository) Upsert(ctx context.Context, pref *entity.UserPreference) error {
	query := `
		INSERT INTO user_preferences (user_id, favorite_genres, language, email_notifications, theme, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE
		SET favorite_genres = EXCLUDED.favorite_genres,
		    language = EXCLUDED.language,
		    email_notifications = EXCLUDED.email_notifications,
		    theme = EXCLUDED.theme,
		    updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query,
		pref.UserID,
		pref.FavoriteGenres,
		pref.Language,
		pref.EmailNotifications,
		pref.Theme,
		pref.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to save preferences",
			zap.Error(err),
			zap.String("user_id", pref.UserID.String()),
		)
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}
