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

type ScreenRepository interface {
	// CreateWithSeats stores the screen and its generated seat grid atomically
	CreateWithSeats(ctx context.Context, screen *entity.Screen, seats []*entity.Seat) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Screen, error)
	FindByName(ctx context.Context, name string) (*entity.Screen, error)
	FindAll(ctx context.Context) ([]*entity.Screen, error)
	Update(ctx context.Context, screen *entity.Screen) error

	// DeleteCascade removes tickets, showtimes and seats of the screen, then the screen
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

type screenRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewScreenRepository(db database.PgxIface, log *zap.Logger) ScreenRepository {
	return &screenRepository{
		db:  db,
		log: log.With(zap.String("repository", "screen")),
	}
}

const screenColumns = `id, name, screen_type, capacity, rows, cols, created_at, updated_at`

func scanScreen(row pgx.Row) (*entity.Screen, error) {
	var s entity.Screen
	err := row.Scan(&s.ID, &s.Name, &s.ScreenType, &s.Capacity, &s.Rows, &s.Cols, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// insertSeats writes seats with a single multi-row INSERT.
func insertSeats(ctx context.Context, q database.Querier, seats []*entity.Seat) error {
	if len(seats) == 0 {
		return nil
	}

	query := `INSERT INTO seats (id, screen_id, seat_row, seat_col, seat_number, seat_type, is_available, created_at, updated_at) VALUES `
	args := make([]any, 0, len(seats)*9)

	for i, seat := range seats {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			i*9+1, i*9+2, i*9+3, i*9+4, i*9+5, i*9+6, i*9+7, i*9+8, i*9+9)

		args = append(args,
			seat.ID,
			seat.ScreenID,
			seat.SeatRow,
			seat.SeatCol,
			seat.SeatNumber,
			seat.SeatType,
			seat.IsAvailable,
			seat.CreatedAt,
			seat.UpdatedAt,
		)
	}

	_, err := q.Exec(ctx, query, args...)
	return err
}

func (r *screenRepository) CreateWithSeats(ctx context.Context, screen *entity.Screen, seats []*entity.Seat) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO screens (id, name, screen_type, capacity, rows, cols, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`,
			screen.ID,
			screen.Name,
			screen.ScreenType,
			screen.Capacity,
			screen.Rows,
			screen.Cols,
			screen.CreatedAt,
			screen.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert screen: %w", err)
		}

		if err := insertSeats(ctx, tx, seats); err != nil {
			return fmt.Errorf("insert seats: %w", err)
		}
		return nil
	})

	if err != nil {
		r.log.Error("Failed to create screen",
			zap.Error(err),
			zap.String("name", screen.Name),
			zap.Int("seat_count", len(seats)),
		)
		return fmt.Errorf("failed to create screen: %w", err)
	}

	r.log.Info("Screen created",
		zap.String("screen_id", screen.ID.String()),
		zap.Int("seat_count", len(seats)),
	)
	return nil
}

func (r *screenRepository) findOne(ctx context.Context, where string, arg any) (*entity.Screen, error) {
	screen, err := scanScreen(r.db.QueryRow(ctx, `SELECT `+screenColumns+` FROM screens WHERE `+where, arg))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find screen", zap.Error(err), zap.Any("arg", arg))
		return nil, fmt.Errorf("failed to find screen: %w", err)
	}
	return screen, nil
}

func (r *screenRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Screen, error) {
	return r.findOne(ctx, "id = $1", id)
}

func (r *screenRepository) FindByName(ctx context.Context, name string) (*entity.Screen, error) {
	return r.findOne(ctx, "lower(name) = lower($1)", name)
}

func (r *screenRepository) FindAll(ctx context.Context) ([]*entity.Screen, error) {
	rows, err := r.db.Query(ctx, `SELECT `+screenColumns+` FROM screens ORDER BY name ASC`)
	if err != nil {
		r.log.Error("Failed to list screens", zap.Error(err))
		return nil, fmt.Errorf("failed to list screens: %w", err)
	}
	defer rows.Close()

	var screens []*entity.Screen
	for rows.Next() {
		screen, err := scanScreen(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan screen: %w", err)
		}
		screens = append(screens, screen)
	}
	return screens, rows.Err()
}

// Update changes descriptive fields only; the seat grid is fixed at creation.
func (r *screenRepository) Update(ctx context.Context, screen *entity.Screen) error {
	result, err := r.db.Exec(ctx, `
		UPDATE screens SET name = $2, screen_type = $3, updated_at = $4 WHERE id = $1
	`, screen.ID, screen.Name, screen.ScreenType, screen.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to update screen",
			zap.Error(err),
			zap.String("screen_id", screen.ID.String()),
		)
		return fmt.Errorf("failed to update screen: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("screen not found")
	}
	return nil
}

func (r *screenRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		showtimeIDs, err := collectIDs(ctx, tx, `SELECT id FROM showtimes WHERE screen_id = $1`, id)
		if err != nil {
			return fmt.Errorf("collect showtimes: %w", err)
		}
		if err := deleteShowtimesTx(ctx, tx, showtimeIDs); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM seats WHERE screen_id = $1`, id); err != nil {
			return fmt.Errorf("delete seats: %w", err)
		}

		result, err := tx.Exec(ctx, `DELETE FROM screens WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete screen row: %w", err)
		}
		if result.RowsAffected() == 0 {
			return fmt.Errorf("screen not found")
		}
		return nil
	})

	if err != nil {
		r.log.Error("Failed to delete screen",
			zap.Error(err),
			zap.String("screen_id", id.String()),
		)
		return fmt.Errorf("failed to delete screen: %w", err)
	}

	r.log.Info("Screen deleted", zap.String("screen_id", id.String()))
	return nil
}
