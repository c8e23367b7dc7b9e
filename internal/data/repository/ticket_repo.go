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

// ActiveSeatConstraint is the partial unique index guarding one active ticket per seat and showtime.
const ActiveSeatConstraint = "uq_tickets_active_seat"

type TicketRepository interface {
	Create(ctx context.Context, ticket *entity.Ticket) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Ticket, error)
	FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.TicketDetail, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.TicketDetail, error)
	FindByReceiptID(ctx context.Context, receiptID uuid.UUID) ([]*entity.TicketDetail, error)
	FindAll(ctx context.Context, filter entity.TicketFilter, limit, offset int) ([]*entity.TicketDetail, error)
	CountAll(ctx context.Context, filter entity.TicketFilter) (int64, error)
	FindActiveBySeat(ctx context.Context, showtimeID, seatID uuid.UUID) (*entity.Ticket, error)
	// UpdateStatus moves a ticket only while it is still in from; reserved tickets must have no receipt
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.TicketStatus) (bool, error)

	// Cancel marks a reserved ticket without receipt as deleted; false when the ticket no longer qualifies
	Cancel(ctx context.Context, id uuid.UUID) (bool, error)
}

type ticketRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTicketRepository(db database.PgxIface, log *zap.Logger) TicketRepository {
	return &ticketRepository{
		db:  db,
		log: log.With(zap.String("repository", "ticket")),
	}
}

const ticketColumns = `t.id, t.user_id, t.showtime_id, t.seat_id, t.receipt_id, t.price, t.status,
		       t.purchase_date, t.created_at, t.updated_at`

const ticketDetailQuery = `
		SELECT ` + ticketColumns + `,
		       st.movie_id, m.title, sc.name, se.seat_number, st.show_date, st.show_time
		FROM tickets t
		JOIN showtimes st ON st.id = t.showtime_id
		JOIN movies m ON m.id = st.movie_id
		JOIN screens sc ON sc.id = st.screen_id
		JOIN seats se ON se.id = t.seat_id
	`

func ticketScanTargets(t *entity.Ticket) []any {
	return []any{
		&t.ID,
		&t.UserID,
		&t.ShowtimeID,
		&t.SeatID,
		&t.ReceiptID,
		&t.Price,
		&t.Status,
		&t.PurchaseDate,
		&t.CreatedAt,
		&t.UpdatedAt,
	}
}

func scanTicketDetail(row pgx.Row) (*entity.TicketDetail, error) {
	var d entity.TicketDetail
	targets := append(ticketScanTargets(&d.Ticket),
		&d.MovieID,
		&d.MovieTitle,
		&d.ScreenName,
		&d.SeatNumber,
		&d.ShowDate,
		&d.ShowTime,
	)
	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *ticketRepository) queryDetails(ctx context.Context, query string, args ...any) ([]*entity.TicketDetail, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []*entity.TicketDetail
	for rows.Next() {
		detail, err := scanTicketDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, detail)
	}
	return tickets, rows.Err()
}

func (r *ticketRepository) Create(ctx context.Context, ticket *entity.Ticket) error {
	query := `
		INSERT INTO tickets (id, user_id, showtime_id, seat_id, receipt_id, price, status,
		                     purchase_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		ticket.ID,
		ticket.UserID,
		ticket.ShowtimeID,
		ticket.SeatID,
		ticket.ReceiptID,
		ticket.Price,
		ticket.Status,
		ticket.PurchaseDate,
		ticket.CreatedAt,
		ticket.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err, ActiveSeatConstraint) {
			r.log.Warn("Seat taken by concurrent reservation",
				zap.String("showtime_id", ticket.ShowtimeID.String()),
				zap.String("seat_id", ticket.SeatID.String()),
			)
		} else {
			r.log.Error("Failed to create ticket",
				zap.Error(err),
				zap.String("showtime_id", ticket.ShowtimeID.String()),
				zap.String("seat_id", ticket.SeatID.String()),
			)
		}
		return fmt.Errorf("create ticket: %w", err)
	}

	return nil
}

func (r *ticketRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	var ticket entity.Ticket
	err := r.db.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets t WHERE t.id = $1`, id).
		Scan(ticketScanTargets(&ticket)...)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find ticket by ID",
			zap.Error(err),
			zap.String("ticket_id", id.String()),
		)
		return nil, fmt.Errorf("find ticket: %w", err)
	}
	return &ticket, nil
}

func (r *ticketRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Ticket, error) {
	rows, err := r.db.Query(ctx, `SELECT `+ticketColumns+` FROM tickets t WHERE t.id = ANY($1)`, ids)
	if err != nil {
		r.log.Error("Failed to find tickets by ids", zap.Error(err), zap.Int("count", len(ids)))
		return nil, fmt.Errorf("find tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*entity.Ticket
	for rows.Next() {
		var ticket entity.Ticket
		if err := rows.Scan(ticketScanTargets(&ticket)...); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, &ticket)
	}
	return tickets, rows.Err()
}

func (r *ticketRepository) FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.TicketDetail, error) {
	detail, err := scanTicketDetail(r.db.QueryRow(ctx, ticketDetailQuery+` WHERE t.id = $1`, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find ticket detail",
			zap.Error(err),
			zap.String("ticket_id", id.String()),
		)
		return nil, fmt.Errorf("find ticket detail: %w", err)
	}
	return detail, nil
}

func (r *ticketRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.TicketDetail, error) {
	tickets, err := r.queryDetails(ctx,
		ticketDetailQuery+` WHERE t.user_id = $1 ORDER BY st.show_date DESC, st.show_time DESC`, userID)
	if err != nil {
		r.log.Error("Failed to find tickets by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find user tickets: %w", err)
	}
	return tickets, nil
}

func (r *ticketRepository) FindByReceiptID(ctx context.Context, receiptID uuid.UUID) ([]*entity.TicketDetail, error) {
	tickets, err := r.queryDetails(ctx,
		ticketDetailQuery+` WHERE t.receipt_id = $1 ORDER BY se.seat_number`, receiptID)
	if err != nil {
		r.log.Error("Failed to find tickets by receipt",
			zap.Error(err),
			zap.String("receipt_id", receiptID.String()),
		)
		return nil, fmt.Errorf("find receipt tickets: %w", err)
	}
	return tickets, nil
}

func buildTicketFilter(filter entity.TicketFilter) (string, []any) {
	var conditions []string
	args := []any{}

	if filter.Status != nil && *filter.Status != "" {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("t.status = $%d", len(args)))
	}
	if filter.ShowtimeID != nil {
		args = append(args, *filter.ShowtimeID)
		conditions = append(conditions, fmt.Sprintf("t.showtime_id = $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *ticketRepository) FindAll(ctx context.Context, filter entity.TicketFilter, limit, offset int) ([]*entity.TicketDetail, error) {
	where, args := buildTicketFilter(filter)
	query := ticketDetailQuery + where +
		fmt.Sprintf(" ORDER BY t.purchase_date DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	tickets, err := r.queryDetails(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list tickets", zap.Error(err))
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}

func (r *ticketRepository) CountAll(ctx context.Context, filter entity.TicketFilter) (int64, error) {
	where, args := buildTicketFilter(filter)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tickets t`+where, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count tickets", zap.Error(err))
		return 0, fmt.Errorf("count tickets: %w", err)
	}
	return total, nil
}

func (r *ticketRepository) FindActiveBySeat(ctx context.Context, showtimeID, seatID uuid.UUID) (*entity.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets t
		WHERE t.showtime_id = $1 AND t.seat_id = $2 AND t.status IN ('reserved', 'paid')
		LIMIT 1
	`

	var ticket entity.Ticket
	err := r.db.QueryRow(ctx, query, showtimeID, seatID).Scan(ticketScanTargets(&ticket)...)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to check seat occupancy",
			zap.Error(err),
			zap.String("showtime_id", showtimeID.String()),
			zap.String("seat_id", seatID.String()),
		)
		return nil, fmt.Errorf("check seat occupancy: %w", err)
	}
	return &ticket, nil
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.TicketStatus) (bool, error) {
	result, err := r.db.Exec(ctx, `
		UPDATE tickets
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3 AND (status = 'paid' OR receipt_id IS NULL)
	`, id, to, from)
	if err != nil {
		r.log.Error("Failed to update ticket status",
			zap.Error(err),
			zap.String("ticket_id", id.String()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return false, fmt.Errorf("update ticket status: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

func (r *ticketRepository) Cancel(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := r.db.Exec(ctx, `
		UPDATE tickets
		SET status = 'deleted', updated_at = NOW()
		WHERE id = $1 AND status = 'reserved' AND receipt_id IS NULL
	`, id)
	if err != nil {
		r.log.Error("Failed to cancel ticket",
			zap.Error(err),
			zap.String("ticket_id", id.String()),
		)
		return false, fmt.Errorf("cancel ticket: %w", err)
	}
	return result.RowsAffected() == 1, nil
}
