package repository

import (
	"context"
	"fmt"
	"strings"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MovieRepository interface {
	// CRUD Movie
	Create(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	Update(ctx context.Context, movie *entity.Movie) error
	FindAll(ctx context.Context, filter entity.MovieFilter, limit, offset int) ([]*entity.Movie, error)
	CountAll(ctx context.Context, filter entity.MovieFilter) (int64, error)
	FindByDirectorID(ctx context.Context, directorID uuid.UUID) ([]*entity.Movie, error)
	CountByDirectorID(ctx context.Context, directorID uuid.UUID) (int64, error)

	SetHidden(ctx context.Context, id uuid.UUID, hidden bool) error
	UpdateRating(ctx context.Context, movieID uuid.UUID, newRating float64) error

	// Cast links
	FindCast(ctx context.Context, movieID uuid.UUID) ([]*entity.CastCredit, error)
	ReplaceCast(ctx context.Context, movieID uuid.UUID, cast []*entity.MovieCast) error

	// DeleteCascade removes the movie with its showtimes, tickets, receipts, reviews and cast links
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

const movieColumns = `id, title, description, year, genres, rating, duration_minutes,
		       status, hidden, poster_url, trailer_url, director_id, created_at, updated_at`

func scanMovie(row pgx.Row) (*entity.Movie, error) {
	var movie entity.Movie
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.Year,
		&movie.Genres,
		&movie.Rating,
		&movie.DurationMinutes,
		&movie.Status,
		&movie.Hidden,
		&movie.PosterURL,
		&movie.TrailerURL,
		&movie.DirectorID,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func collectMovies(rows pgx.Rows) ([]*entity.Movie, error) {
	defer rows.Close()

	var movies []*entity.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return movies, nil
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (id, title, description, year, genres, rating, duration_minutes,
		                    status, hidden, poster_url, trailer_url, director_id,
		                    created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Description,
		movie.Year,
		movie.Genres,
		movie.Rating,
		movie.DurationMinutes,
		movie.Status,
		movie.Hidden,
		movie.PosterURL,
		movie.TrailerURL,
		movie.DirectorID,
		movie.CreatedAt,
		movie.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("failed to create movie: %w", err)
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`

	movie, err := scanMovie(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return nil, fmt.Errorf("failed to find movie: %w", err)
	}

	return movie, nil
}

// buildMovieFilter renders the WHERE clause for catalog filters, numbering args from 1.
func buildMovieFilter(filter entity.MovieFilter) (string, []any) {
	var conditions []string
	args := []any{}

	add := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if !filter.IncludeHidden {
		conditions = append(conditions, "hidden = FALSE")
	}
	if filter.Genre != nil && *filter.Genre != "" {
		add("EXISTS (SELECT 1 FROM unnest(genres) g WHERE lower(g) = lower($%d))", *filter.Genre)
	}
	if filter.Status != nil && *filter.Status != "" {
		add("status = $%d", *filter.Status)
	}
	if filter.Year != nil {
		add("year = $%d", *filter.Year)
	}
	if filter.DirectorID != nil {
		add("director_id = $%d", *filter.DirectorID)
	}
	if filter.Search != nil && *filter.Search != "" {
		add("title ILIKE '%%' || $%d || '%%'", *filter.Search)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *movieRepository) FindAll(ctx context.Context, filter entity.MovieFilter, limit, offset int) ([]*entity.Movie, error) {
	where, args := buildMovieFilter(filter)

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + movieColumns + ` FROM movies`)
	queryBuilder.WriteString(where)
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY year DESC, title ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find all movies",
			zap.Error(err),
			zap.Int("offset", offset),
			zap.Int("limit", limit),
		)
		return nil, fmt.Errorf("failed to find movies: %w", err)
	}

	movies, err := collectMovies(rows)
	if err != nil {
		r.log.Error("Failed to read movie rows", zap.Error(err))
		return nil, err
	}

	r.log.Debug("Movies found",
		zap.Int("count", len(movies)),
		zap.Int("offset", offset),
		zap.Int("limit", limit),
	)

	return movies, nil
}

func (r *movieRepository) CountAll(ctx context.Context, filter entity.MovieFilter) (int64, error) {
	where, args := buildMovieFilter(filter)

	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM movies`+where, args...).Scan(&total)
	if err != nil {
		r.log.Error("Failed to count movies", zap.Error(err))
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}

	return total, nil
}

func (r *movieRepository) FindByDirectorID(ctx context.Context, directorID uuid.UUID) ([]*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE director_id = $1 AND hidden = FALSE ORDER BY year DESC`

	rows, err := r.db.Query(ctx, query, directorID)
	if err != nil {
		r.log.Error("Failed to find movies by director",
			zap.Error(err),
			zap.String("director_id", directorID.String()),
		)
		return nil, fmt.Errorf("failed to find movies by director: %w", err)
	}

	return collectMovies(rows)
}

func (r *movieRepository) CountByDirectorID(ctx context.Context, directorID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM movies WHERE director_id = $1`, directorID).Scan(&total)
	if err != nil {
		r.log.Error("Failed to count movies by director",
			zap.Error(err),
			zap.String("director_id", directorID.String()),
		)
		return 0, fmt.Errorf("failed to count movies by director: %w", err)
	}
	return total, nil
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	query := `
		UPDATE movies
		SET title = $2, description = $3, year = $4, genres = $5, duration_minutes = $6,
		    status = $7, hidden = $8, poster_url = $9, trailer_url = $10, director_id = $11,
		    updated_at = $12
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Description,
		movie.Year,
		movie.Genres,
		movie.DurationMinutes,
		movie.Status,
		movie.Hidden,
		movie.PosterURL,
		movie.TrailerURL,
		movie.DirectorID,
		movie.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.String("movie_id", movie.ID.String()),
		)
		return fmt.Errorf("failed to update movie: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("movie not found")
	}

	return nil
}

func (r *movieRepository) SetHidden(ctx context.Context, id uuid.UUID, hidden bool) error {
	result, err := r.db.Exec(ctx, `UPDATE movies SET hidden = $2, updated_at = NOW() WHERE id = $1`, id, hidden)
	if err != nil {
		r.log.Error("Failed to change movie visibility",
			zap.Error(err),
			zap.String("movie_id", id.String()),
			zap.Bool("hidden", hidden),
		)
		return fmt.Errorf("failed to change visibility: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("movie not found")
	}
	return nil
}

func (r *movieRepository) UpdateRating(ctx context.Context, movieID uuid.UUID, newRating float64) error {
	query := `UPDATE movies SET rating = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, movieID, newRating)
	if err != nil {
		r.log.Error("Failed to update movie rating",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
			zap.Float64("new_rating", newRating),
		)
		return fmt.Errorf("failed to update rating: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("movie not found")
	}

	return nil
}

func (r *movieRepository) FindCast(ctx context.Context, movieID uuid.UUID) ([]*entity.CastCredit, error) {
	query := `
		SELECT mc.movie_id, mc.cast_member_id, mc.character, mc.billing_order, c.name, c.photo_url
		FROM movie_cast mc
		JOIN cast_members c ON c.id = mc.cast_member_id
		WHERE mc.movie_id = $1
		ORDER BY mc.billing_order ASC, c.name ASC
	`

	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find movie cast",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return nil, fmt.Errorf("failed to find cast: %w", err)
	}
	defer rows.Close()

	var credits []*entity.CastCredit
	for rows.Next() {
		var credit entity.CastCredit
		if err := rows.Scan(
			&credit.MovieID,
			&credit.CastMemberID,
			&credit.Character,
			&credit.BillingOrder,
			&credit.Name,
			&credit.PhotoURL,
		); err != nil {
			return nil, fmt.Errorf("failed to scan cast credit: %w", err)
		}
		credits = append(credits, &credit)
	}

	return credits, rows.Err()
}

func (r *movieRepository) ReplaceCast(ctx context.Context, movieID uuid.UUID, cast []*entity.MovieCast) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM movie_cast WHERE movie_id = $1`, movieID); err != nil {
			return fmt.Errorf("clear cast: %w", err)
		}

		batch := &pgx.Batch{}
		for _, link := range cast {
			batch.Queue(`
				INSERT INTO movie_cast (movie_id, cast_member_id, character, billing_order)
				VALUES ($1, $2, $3, $4)
			`, movieID, link.CastMemberID, link.Character, link.BillingOrder)
		}
		if batch.Len() == 0 {
			return nil
		}
		return tx.SendBatch(ctx, batch).Close()
	})

	if err != nil {
		r.log.Error("Failed to replace movie cast",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
			zap.Int("cast_count", len(cast)),
		)
		return fmt.Errorf("failed to replace cast: %w", err)
	}
	return nil
}

func (r *movieRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		showtimeIDs, err := collectIDs(ctx, tx, `SELECT id FROM showtimes WHERE movie_id = $1`, id)
		if err != nil {
			return fmt.Errorf("collect showtimes: %w", err)
		}
		if err := deleteShowtimesTx(ctx, tx, showtimeIDs); err != nil {
			return err
		}

		// Receipts are tied to the movie even once their tickets are gone.
		if _, err := tx.Exec(ctx, `UPDATE tickets SET receipt_id = NULL WHERE receipt_id IN (SELECT id FROM receipts WHERE movie_id = $1)`, id); err != nil {
			return fmt.Errorf("detach receipts: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM receipts WHERE movie_id = $1`, id); err != nil {
			return fmt.Errorf("delete receipts: %w", err)
		}

		reviewIDs, err := collectIDs(ctx, tx, `SELECT id FROM reviews WHERE movie_id = $1`, id)
		if err != nil {
			return fmt.Errorf("collect reviews: %w", err)
		}
		if err := deleteReviewsTx(ctx, tx, reviewIDs); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM movie_cast WHERE movie_id = $1`, id); err != nil {
			return fmt.Errorf("delete cast links: %w", err)
		}

		result, err := tx.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete movie row: %w", err)
		}
		if result.RowsAffected() == 0 {
			return fmt.Errorf("movie not found")
		}
		return nil
	})

	if err != nil {
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	r.log.Info("Movie deleted", zap.String("movie_id", id.String()))
	return nil
}
