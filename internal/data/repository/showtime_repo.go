package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ShowtimeSlotConstraint keeps one showtime per screen, date and start time.
const ShowtimeSlotConstraint = "uq_showtimes_screen_slot"

type ShowtimeRepository interface {
	Create(ctx context.Context, showtime *entity.Showtime) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error)
	FindAll(ctx context.Context, filter entity.ShowtimeFilter, limit, offset int) ([]*entity.Showtime, error)
	CountAll(ctx context.Context, filter entity.ShowtimeFilter) (int64, error)
	Update(ctx context.Context, showtime *entity.Showtime) error

	// FindSlots lists every showtime on the screen and date with its movie's running time
	FindSlots(ctx context.Context, screenID uuid.UUID, date time.Time) ([]*entity.ShowtimeSlot, error)

	// DeleteCascade removes the showtime and its tickets
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

type showtimeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShowtimeRepository(db database.PgxIface, log *zap.Logger) ShowtimeRepository {
	return &showtimeRepository{
		db:  db,
		log: log.With(zap.String("repository", "showtime")),
	}
}

const showtimeColumns = `id, movie_id, screen_id, show_date, show_time, format, price, created_at, updated_at`

func scanShowtime(row pgx.Row) (*entity.Showtime, error) {
	var s entity.Showtime
	err := row.Scan(
		&s.ID,
		&s.MovieID,
		&s.ScreenID,
		&s.ShowDate,
		&s.ShowTime,
		&s.Format,
		&s.Price,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *showtimeRepository) Create(ctx context.Context, showtime *entity.Showtime) error {
	query := `
		INSERT INTO showtimes (id, movie_id, screen_id, show_date, show_time, format, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		showtime.ID,
		showtime.MovieID,
		showtime.ScreenID,
		showtime.ShowDate,
		showtime.ShowTime,
		showtime.Format,
		showtime.Price,
		showtime.CreatedAt,
		showtime.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create showtime",
			zap.Error(err),
			zap.String("movie_id", showtime.MovieID.String()),
			zap.String("screen_id", showtime.ScreenID.String()),
		)
		return fmt.Errorf("failed to create showtime: %w", err)
	}

	return nil
}

func (r *showtimeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error) {
	showtime, err := scanShowtime(r.db.QueryRow(ctx, `SELECT `+showtimeColumns+` FROM showtimes WHERE id = $1`, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find showtime by ID",
			zap.Error(err),
			zap.String("showtime_id", id.String()),
		)
		return nil, fmt.Errorf("failed to find showtime: %w", err)
	}
	return showtime, nil
}

func buildShowtimeFilter(filter entity.ShowtimeFilter) (string, []any) {
	var conditions []string
	args := []any{}

	if filter.MovieID != nil {
		args = append(args, *filter.MovieID)
		conditions = append(conditions, fmt.Sprintf("movie_id = $%d", len(args)))
	}
	if filter.ScreenID != nil {
		args = append(args, *filter.ScreenID)
		conditions = append(conditions, fmt.Sprintf("screen_id = $%d", len(args)))
	}
	if filter.Date != nil {
		args = append(args, *filter.Date)
		conditions = append(conditions, fmt.Sprintf("show_date = $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *showtimeRepository) FindAll(ctx context.Context, filter entity.ShowtimeFilter, limit, offset int) ([]*entity.Showtime, error) {
	where, args := buildShowtimeFilter(filter)
	query := `SELECT ` + showtimeColumns + ` FROM showtimes` + where +
		fmt.Sprintf(" ORDER BY show_date ASC, show_time ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list showtimes", zap.Error(err))
		return nil, fmt.Errorf("failed to list showtimes: %w", err)
	}
	defer rows.Close()

	var showtimes []*entity.Showtime
	for rows.Next() {
		showtime, err := scanShowtime(rows)
		if err != nil {
			r.log.Error("Failed to scan showtime row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan showtime: %w", err)
		}
		showtimes = append(showtimes, showtime)
	}

	return showtimes, rows.Err()
}

func (r *showtimeRepository) CountAll(ctx context.Context, filter entity.ShowtimeFilter) (int64, error) {
	where, args := buildShowtimeFilter(filter)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM showtimes`+where, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count showtimes", zap.Error(err))
		return 0, fmt.Errorf("failed to count showtimes: %w", err)
	}
	return total, nil
}

func (r *showtimeRepository) FindSlots(ctx context.Context, screenID uuid.UUID, date time.Time) ([]*entity.ShowtimeSlot, error) {
	query := `
		SELECT s.id, s.show_time, m.duration_minutes
		FROM showtimes s
		JOIN movies m ON m.id = s.movie_id
		WHERE s.screen_id = $1 AND s.show_date = $2
		ORDER BY s.show_time ASC
	`

	rows, err := r.db.Query(ctx, query, screenID, date)
	if err != nil {
		r.log.Error("Failed to find showtime slots",
			zap.Error(err),
			zap.String("screen_id", screenID.String()),
			zap.Time("date", date),
		)
		return nil, fmt.Errorf("failed to find slots: %w", err)
	}
	defer rows.Close()

	var slots []*entity.ShowtimeSlot
	for rows.Next() {
		var slot entity.ShowtimeSlot
		if err := rows.Scan(&slot.ID, &slot.ShowTime, &slot.DurationMinutes); err != nil {
			return nil, fmt.Errorf("failed to scan slot: %w", err)
		}
		slots = append(slots, &slot)
	}

	return slots, rows.Err()
}

func (r *showtimeRepository) Update(ctx context.Context, showtime *entity.Showtime) error {
	query := `
		UPDATE showtimes
		SET movie_id = $2, screen_id = $3, show_date = $4, show_time = $5,
		    format = $6, price = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		showtime.ID,
		showtime.MovieID,
		showtime.ScreenID,
		showtime.ShowDate,
		showtime.ShowTime,
		showtime.Format,
		showtime.Price,
		showtime.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update showtime",
			zap.Error(err),
			zap.String("showtime_id", showtime.ID.String()),
		)
		return fmt.Errorf("failed to update showtime: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("showtime not found")
	}
	return nil
}

func (r *showtimeRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM showtimes WHERE id = $1)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("showtime not found")
		}
		return deleteShowtimesTx(ctx, tx, []uuid.UUID{id})
	})

	if err != nil {
		r.log.Error("Failed to delete showtime",
			zap.Error(err),
			zap.String("showtime_id", id.String()),
		)
		return fmt.Errorf("failed to delete showtime: %w", err)
	}

	r.log.Info("Showtime deleted", zap.String("showtime_id", id.String()))
	return nil
}
