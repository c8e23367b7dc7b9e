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

type SeatRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Seat, error)
	FindByScreenID(ctx context.Context, screenID uuid.UUID) ([]*entity.Seat, error)
	UpdateAvailability(ctx context.Context, seatID uuid.UUID, isAvailable bool) error

	// FindWithStatus lists the screen's seats flagged with whether an active ticket holds them for the showtime
	FindWithStatus(ctx context.Context, screenID, showtimeID uuid.UUID) ([]*entity.SeatWithStatus, error)
}

type seatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSeatRepository(db database.PgxIface, log *zap.Logger) SeatRepository {
	return &seatRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat")),
	}
}

const seatColumns = `s.id, s.screen_id, s.seat_row, s.seat_col, s.seat_number, s.seat_type,
		       s.is_available, s.created_at, s.updated_at`

func seatScanTargets(seat *entity.Seat) []any {
	return []any{
		&seat.ID,
		&seat.ScreenID,
		&seat.SeatRow,
		&seat.SeatCol,
		&seat.SeatNumber,
		&seat.SeatType,
		&seat.IsAvailable,
		&seat.CreatedAt,
		&seat.UpdatedAt,
	}
}

func (r *seatRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Seat, error) {
	var seat entity.Seat
	err := r.db.QueryRow(ctx, `SELECT `+seatColumns+` FROM seats s WHERE s.id = $1`, id).Scan(seatScanTargets(&seat)...)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find seat by ID",
			zap.Error(err),
			zap.String("seat_id", id.String()),
		)
		return nil, fmt.Errorf("failed to find seat: %w", err)
	}
	return &seat, nil
}

func (r *seatRepository) FindByScreenID(ctx context.Context, screenID uuid.UUID) ([]*entity.Seat, error) {
	query := `SELECT ` + seatColumns + ` FROM seats s WHERE s.screen_id = $1 ORDER BY length(s.seat_row), s.seat_row, s.seat_col`

	rows, err := r.db.Query(ctx, query, screenID)
	if err != nil {
		r.log.Error("Failed to find seats by screen",
			zap.Error(err),
			zap.String("screen_id", screenID.String()),
		)
		return nil, fmt.Errorf("failed to find seats: %w", err)
	}
	defer rows.Close()

	var seats []*entity.Seat
	for rows.Next() {
		var seat entity.Seat
		if err := rows.Scan(seatScanTargets(&seat)...); err != nil {
			r.log.Error("Failed to scan seat row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan seat: %w", err)
		}
		seats = append(seats, &seat)
	}

	return seats, rows.Err()
}

func (r *seatRepository) FindWithStatus(ctx context.Context, screenID, showtimeID uuid.UUID) ([]*entity.SeatWithStatus, error) {
	query := `
		SELECT ` + seatColumns + `,
		       EXISTS (
		           SELECT 1 FROM tickets t
		           WHERE t.seat_id = s.id AND t.showtime_id = $2 AND t.status IN ('reserved', 'paid')
		       ) AS is_booked
		FROM seats s
		WHERE s.screen_id = $1
		ORDER BY length(s.seat_row), s.seat_row, s.seat_col
	`

	rows, err := r.db.Query(ctx, query, screenID, showtimeID)
	if err != nil {
		r.log.Error("Failed to find seats with status",
			zap.Error(err),
			zap.String("screen_id", screenID.String()),
			zap.String("showtime_id", showtimeID.String()),
		)
		return nil, fmt.Errorf("failed to find seat status: %w", err)
	}
	defer rows.Close()

	var seats []*entity.SeatWithStatus
	for rows.Next() {
		var seat entity.SeatWithStatus
		targets := append(seatScanTargets(&seat.Seat), &seat.IsBooked)
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("failed to scan seat status: %w", err)
		}
		seats = append(seats, &seat)
	}

	return seats, rows.Err()
}

func (r *seatRepository) UpdateAvailability(ctx context.Context, seatID uuid.UUID, isAvailable bool) error {
	result, err := r.db.Exec(ctx,
		`UPDATE seats SET is_available = $2, updated_at = NOW() WHERE id = $1`, seatID, isAvailable)
	if err != nil {
		r.log.Error("Failed to update seat availability",
			zap.Error(err),
			zap.String("seat_id", seatID.String()),
		)
		return fmt.Errorf("failed to update seat availability: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("seat not found")
	}
	return nil
}
