//go:build integration

package repository

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap"
)

var testDB database.PgxIface

func TestMain(m *testing.M) {
	ctx := context.Background()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("cinema"),
		postgres.WithUsername("cinema"),
		postgres.WithPassword("cinema"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "start postgres container: %v\n", err)
		os.Exit(1)
	}

	code, err := runWithDatabase(ctx, ctr, m)
	if termErr := testcontainers.TerminateContainer(ctr); termErr != nil {
		fmt.Fprintf(os.Stderr, "terminate postgres container: %v\n", termErr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(code)
}

func runWithDatabase(ctx context.Context, ctr *postgres.PostgresContainer, m *testing.M) (int, error) {
	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return 0, fmt.Errorf("connection string: %w", err)
	}

	if err := database.Migrate(strings.Replace(dsn, "postgres://", "pgx5://", 1), zap.NewNop()); err != nil {
		return 0, fmt.Errorf("migrate: %w", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return 0, fmt.Errorf("open pool: %w", err)
	}
	testDB = database.NewDB(pool)
	defer testDB.Close()

	return m.Run(), nil
}

// showing is one movie on one screen with a few seats, owned by a fresh user.
type showing struct {
	userID     uuid.UUID
	movieID    uuid.UUID
	showtimeID uuid.UUID
	seatIDs    []uuid.UUID
}

func seedShowing(t *testing.T, seats int) showing {
	t.Helper()
	ctx := context.Background()
	s := showing{
		userID:     uuid.New(),
		movieID:    uuid.New(),
		showtimeID: uuid.New(),
	}
	screenID := uuid.New()

	exec := func(sql string, args ...any) {
		t.Helper()
		_, err := testDB.Exec(ctx, sql, args...)
		require.NoError(t, err)
	}

	exec(`INSERT INTO users (id, username, email, password) VALUES ($1, $2, $3, 'x')`,
		s.userID, "u-"+s.userID.String()[:8], s.userID.String()+"@example.com")
	exec(`INSERT INTO movies (id, title, year, duration_minutes, status) VALUES ($1, 'Arrival', 2016, 116, 'now_showing')`,
		s.movieID)
	exec(`INSERT INTO screens (id, name, screen_type, capacity, rows, cols) VALUES ($1, $2, 'standard', $3, 1, $3)`,
		screenID, "screen-"+screenID.String()[:8], seats)
	for col := 1; col <= seats; col++ {
		seatID := uuid.New()
		exec(`INSERT INTO seats (id, screen_id, seat_row, seat_col, seat_number) VALUES ($1, $2, 'A', $3, $4)`,
			seatID, screenID, col, fmt.Sprintf("A%d", col))
		s.seatIDs = append(s.seatIDs, seatID)
	}
	exec(`INSERT INTO showtimes (id, movie_id, screen_id, show_date, show_time, price) VALUES ($1, $2, $3, CURRENT_DATE, '19:00', 12.50)`,
		s.showtimeID, s.movieID, screenID)
	return s
}

func reserve(t *testing.T, repo *Repository, s showing, seat int) *entity.Ticket {
	t.Helper()
	now := time.Now()
	ticket := &entity.Ticket{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		UserID:       s.userID,
		ShowtimeID:   s.showtimeID,
		SeatID:       s.seatIDs[seat],
		Price:        12.5,
		Status:       entity.TicketStatusReserved,
		PurchaseDate: now,
	}
	require.NoError(t, repo.Ticket.Create(context.Background(), ticket))
	return ticket
}

func newReceipt(s showing, total float64) *entity.Receipt {
	now := time.Now()
	id := uuid.New()
	return &entity.Receipt{
		Base:          entity.Base{ID: id, CreatedAt: now, UpdatedAt: now},
		ReceiptNumber: "RCPT-" + id.String()[:12],
		UserID:        s.userID,
		MovieID:       s.movieID,
		Subtotal:      total,
		TotalPrice:    total,
		PaymentMethod: "card",
	}
}

func ticketState(t *testing.T, id uuid.UUID) (entity.TicketStatus, *uuid.UUID) {
	t.Helper()
	var status entity.TicketStatus
	var receiptID *uuid.UUID
	err := testDB.QueryRow(context.Background(),
		`SELECT status, receipt_id FROM tickets WHERE id = $1`, id).Scan(&status, &receiptID)
	require.NoError(t, err)
	return status, receiptID
}

func receiptExists(t *testing.T, id uuid.UUID) bool {
	t.Helper()
	var exists bool
	err := testDB.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM receipts WHERE id = $1)`, id).Scan(&exists)
	require.NoError(t, err)
	return exists
}

func TestReceiptRepository_CreateThenDeleteReleasesTickets(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(testDB, zap.NewNop())
	s := seedShowing(t, 2)
	first, second := reserve(t, repo, s, 0), reserve(t, repo, s, 1)

	receipt := newReceipt(s, 25)
	require.NoError(t, repo.Receipt.CreateWithTickets(ctx, receipt, []uuid.UUID{first.ID, second.ID}))

	for _, id := range []uuid.UUID{first.ID, second.ID} {
		status, receiptID := ticketState(t, id)
		assert.Equal(t, entity.TicketStatusPaid, status)
		require.NotNil(t, receiptID)
		assert.Equal(t, receipt.ID, *receiptID)
	}

	released, err := repo.Receipt.DeleteAndRelease(ctx, receipt.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), released)
	assert.False(t, receiptExists(t, receipt.ID))

	for _, id := range []uuid.UUID{first.ID, second.ID} {
		status, receiptID := ticketState(t, id)
		assert.Equal(t, entity.TicketStatusReserved, status)
		assert.Nil(t, receiptID)
	}
}

func TestReceiptRepository_CreateRollsBackOnStaleTicket(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(testDB, zap.NewNop())
	s := seedShowing(t, 2)
	first, second := reserve(t, repo, s, 0), reserve(t, repo, s, 1)

	canceled, err := repo.Ticket.Cancel(ctx, second.ID)
	require.NoError(t, err)
	require.True(t, canceled)

	receipt := newReceipt(s, 25)
	err = repo.Receipt.CreateWithTickets(ctx, receipt, []uuid.UUID{first.ID, second.ID})
	require.Error(t, err)

	assert.False(t, receiptExists(t, receipt.ID))
	status, receiptID := ticketState(t, first.ID)
	assert.Equal(t, entity.TicketStatusReserved, status)
	assert.Nil(t, receiptID)
}

func TestReceiptRepository_DeleteWithUsedTicketChangesNothing(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(testDB, zap.NewNop())
	s := seedShowing(t, 2)
	first, second := reserve(t, repo, s, 0), reserve(t, repo, s, 1)

	receipt := newReceipt(s, 25)
	require.NoError(t, repo.Receipt.CreateWithTickets(ctx, receipt, []uuid.UUID{first.ID, second.ID}))

	used, err := repo.Ticket.UpdateStatus(ctx, second.ID, entity.TicketStatusPaid, entity.TicketStatusUsed)
	require.NoError(t, err)
	require.True(t, used)

	_, err = repo.Receipt.DeleteAndRelease(ctx, receipt.ID)
	require.Error(t, err)
	assert.True(t, database.IsForeignKeyViolation(err))

	// the revert of the paid ticket was rolled back with the failed delete
	assert.True(t, receiptExists(t, receipt.ID))
	status, receiptID := ticketState(t, first.ID)
	assert.Equal(t, entity.TicketStatusPaid, status)
	require.NotNil(t, receiptID)
	assert.Equal(t, receipt.ID, *receiptID)
}

func TestTicketRepository_ActiveSeatIsUnique(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(testDB, zap.NewNop())
	s := seedShowing(t, 1)
	held := reserve(t, repo, s, 0)

	now := time.Now()
	dup := &entity.Ticket{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		UserID:       s.userID,
		ShowtimeID:   s.showtimeID,
		SeatID:       s.seatIDs[0],
		Price:        12.5,
		Status:       entity.TicketStatusReserved,
		PurchaseDate: now,
	}
	err := repo.Ticket.Create(ctx, dup)
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err, ActiveSeatConstraint))

	canceled, err := repo.Ticket.Cancel(ctx, held.ID)
	require.NoError(t, err)
	require.True(t, canceled)

	require.NoError(t, repo.Ticket.Create(ctx, dup), "a canceled ticket releases the seat")
}

func TestTicketRepository_UpdateStatusIsConditional(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(testDB, zap.NewNop())
	s := seedShowing(t, 1)
	ticket := reserve(t, repo, s, 0)

	moved, err := repo.Ticket.UpdateStatus(ctx, ticket.ID, entity.TicketStatusPaid, entity.TicketStatusUsed)
	require.NoError(t, err)
	assert.False(t, moved, "ticket is reserved, not paid")

	receipt := newReceipt(s, 12.5)
	require.NoError(t, repo.Receipt.CreateWithTickets(ctx, receipt, []uuid.UUID{ticket.ID}))

	moved, err = repo.Ticket.UpdateStatus(ctx, ticket.ID, entity.TicketStatusReserved, entity.TicketStatusDeleted)
	require.NoError(t, err)
	assert.False(t, moved, "paid ticket is no longer reserved")

	status, _ := ticketState(t, ticket.ID)
	assert.Equal(t, entity.TicketStatusPaid, status)
}

func TestMovieRepository_DeleteCascadeRemovesBookings(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(testDB, zap.NewNop())
	s := seedShowing(t, 2)
	first, second := reserve(t, repo, s, 0), reserve(t, repo, s, 1)
	require.NoError(t, repo.Receipt.CreateWithTickets(ctx, newReceipt(s, 12.5), []uuid.UUID{first.ID}))

	require.NoError(t, repo.Movie.DeleteCascade(ctx, s.movieID))

	for _, q := range []struct {
		table string
		sql   string
		arg   any
	}{
		{"tickets", `SELECT COUNT(*) FROM tickets WHERE id = ANY($1)`, []uuid.UUID{first.ID, second.ID}},
		{"showtimes", `SELECT COUNT(*) FROM showtimes WHERE id = $1`, s.showtimeID},
		{"receipts", `SELECT COUNT(*) FROM receipts WHERE movie_id = $1`, s.movieID},
		{"movies", `SELECT COUNT(*) FROM movies WHERE id = $1`, s.movieID},
	} {
		var n int
		require.NoError(t, testDB.QueryRow(ctx, q.sql, q.arg).Scan(&n))
		assert.Zero(t, n, q.table)
	}
}
