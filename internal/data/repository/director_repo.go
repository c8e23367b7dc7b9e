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

type DirectorRepository interface {
	Create(ctx context.Context, director *entity.Director) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Director, error)
	FindAll(ctx context.Context, search *string, limit, offset int) ([]*entity.Director, error)
	CountAll(ctx context.Context, search *string) (int64, error)
	Update(ctx context.Context, director *entity.Director) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type directorRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewDirectorRepository(db database.PgxIface, log *zap.Logger) DirectorRepository {
	return &directorRepository{
		db:  db,
		log: log.With(zap.String("repository", "director")),
	}
}

func scanDirector(row pgx.Row) (*entity.Director, error) {
	var d entity.Director
	err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Bio,
		&d.BirthDate,
		&d.Nationality,
		&d.PhotoURL,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *directorRepository) Create(ctx context.Context, director *entity.Director) error {
	query := `
		INSERT INTO directors (id, name, bio, birth_date, nationality, photo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		director.ID,
		director.Name,
		director.Bio,
		director.BirthDate,
		director.Nationality,
		director.PhotoURL,
		director.CreatedAt,
		director.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create director",
			zap.Error(err),
			zap.String("name", director.Name),
		)
		return fmt.Errorf("create director: %w", err)
	}
	return nil
}

func (r *directorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Director, error) {
	query := `
		SELECT id, name, bio, birth_date, nationality, photo_url, created_at, updated_at
		FROM directors
		WHERE id = $1
	`

	director, err := scanDirector(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find director",
			zap.Error(err),
			zap.String("director_id", id.String()),
		)
		return nil, fmt.Errorf("find director: %w", err)
	}
	return director, nil
}

func (r *directorRepository) FindAll(ctx context.Context, search *string, limit, offset int) ([]*entity.Director, error) {
	query := `
		SELECT id, name, bio, birth_date, nationality, photo_url, created_at, updated_at
		FROM directors
		WHERE ($1::text IS NULL OR name ILIKE '%' || $1 || '%')
		ORDER BY name ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, search, limit, offset)
	if err != nil {
		r.log.Error("Failed to list directors", zap.Error(err))
		return nil, fmt.Errorf("list directors: %w", err)
	}
	defer rows.Close()

	var directors []*entity.Director
	for rows.Next() {
		director, err := scanDirector(rows)
		if err != nil {
			return nil, fmt.Errorf("scan director: %w", err)
		}
		directors = append(directors, director)
	}

	return directors, rows.Err()
}

func (r *directorRepository) CountAll(ctx context.Context, search *string) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM directors WHERE ($1::text IS NULL OR name ILIKE '%' || $1 || '%')`,
		search,
	).Scan(&total)
	if err != nil {
		r.log.Error("Failed to count directors", zap.Error(err))
		return 0, fmt.Errorf("count directors: %w", err)
	}
	return total, nil
}

func (r *directorRepository) Update(ctx context.Context, director *entity.Director) error {
	query := `
		UPDATE directors
		SET name = $2, bio = $3, birth_date = $4, nationality = $5, photo_url = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		director.ID,
		director.Name,
		director.Bio,
		director.BirthDate,
		director.Nationality,
		director.PhotoURL,
		director.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update director",
			zap.Error(err),
			zap.String("director_id", director.ID.String()),
		)
		return fmt.Errorf("update director: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("director not found")
	}
	return nil
}

func (r *directorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM directors WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete director",
			zap.Error(err),
			zap.String("director_id", id.String()),
		)
		return fmt.Errorf("delete director: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("director not found")
	}

	r.log.Info("Director deleted", zap.String("director_id", id.String()))
	return nil
}
