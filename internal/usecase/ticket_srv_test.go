package usecase

import (
	"context"
	"testing"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/pkg/events"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type ticketFixture struct {
	userID     uuid.UUID
	screenID   uuid.UUID
	showtime   *entity.Showtime
	seat       *entity.Seat
	users      *mockUserRepo
	showtimes  *mockShowtimeRepo
	seats      *mockSeatRepo
	tickets    *mockTicketRepo
	publisher  *mockPublisher
	repository *repository.Repository
}

func newTicketFixture() *ticketFixture {
	f := &ticketFixture{
		userID:    uuid.New(),
		screenID:  uuid.New(),
		users:     new(mockUserRepo),
		showtimes: new(mockShowtimeRepo),
		seats:     new(mockSeatRepo),
		tickets:   new(mockTicketRepo),
		publisher: new(mockPublisher),
	}
	f.showtime = &entity.Showtime{Base: newBase(), ScreenID: f.screenID, MovieID: uuid.New(), ShowTime: "19:00", Price: 11}
	f.seat = &entity.Seat{Base: newBase(), ScreenID: f.screenID, SeatNumber: "C4", IsAvailable: true}

	f.users.On("FindByID", mock.Anything, f.userID).
		Return(&entity.User{Base: entity.Base{ID: f.userID}, IsActive: true}, nil)
	f.showtimes.On("FindByID", mock.Anything, f.showtime.ID).Return(f.showtime, nil)
	f.seats.On("FindByID", mock.Anything, f.seat.ID).Return(f.seat, nil)

	f.repository = &repository.Repository{
		User:     f.users,
		Showtime: f.showtimes,
		Seat:     f.seats,
		Ticket:   f.tickets,
	}
	return f
}

func (f *ticketFixture) request() *request.CreateTicketRequest {
	return &request.CreateTicketRequest{
		ShowtimeID: f.showtime.ID.String(),
		SeatID:     f.seat.ID.String(),
	}
}

func TestTicketService_CreateTicket(t *testing.T) {
	t.Run("reserves the seat at the showtime price", func(t *testing.T) {
		f := newTicketFixture()
		f.tickets.On("FindActiveBySeat", mock.Anything, f.showtime.ID, f.seat.ID).Return(nil, nil)

		var created *entity.Ticket
		detail := &entity.TicketDetail{SeatNumber: "C4"}
		f.tickets.On("Create", mock.Anything, mock.AnythingOfType("*entity.Ticket")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*entity.Ticket)
				detail.Ticket = *created
			}).
			Return(nil)
		f.tickets.On("FindDetailByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(detail, nil)
		f.publisher.On("Publish", mock.Anything, events.TicketReserved, mock.AnythingOfType("events.TicketEvent")).Return(nil)

		svc := NewTicketService(f.repository, f.publisher, zap.NewNop())
		resp, err := svc.CreateTicket(context.Background(), f.userID, f.request())

		require.NoError(t, err)
		assert.Equal(t, entity.TicketStatusReserved, created.Status)
		assert.Equal(t, 11.0, created.Price)
		assert.Equal(t, f.userID, created.UserID)
		assert.Equal(t, "C4", resp.SeatNumber)
		f.publisher.AssertExpectations(t)
	})

	t.Run("customer cannot set the price", func(t *testing.T) {
		f := newTicketFixture()
		req := f.request()
		price := 1.0
		req.Price = &price

		svc := NewTicketService(f.repository, f.publisher, zap.NewNop())
		_, err := svc.CreateTicket(context.Background(), f.userID, req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "forbidden")
		f.tickets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("staff sells at an explicit price", func(t *testing.T) {
		f := newTicketFixture()
		staffID := uuid.New()
		f.users.On("FindByID", mock.Anything, staffID).
			Return(&entity.User{Base: entity.Base{ID: staffID}, Role: entity.RoleStaff, IsActive: true}, nil)
		f.tickets.On("FindActiveBySeat", mock.Anything, f.showtime.ID, f.seat.ID).Return(nil, nil)

		var created *entity.Ticket
		f.tickets.On("Create", mock.Anything, mock.AnythingOfType("*entity.Ticket")).
			Run(func(args mock.Arguments) { created = args.Get(1).(*entity.Ticket) }).
			Return(nil)
		f.tickets.On("FindDetailByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).
			Return(&entity.TicketDetail{}, nil)
		f.publisher.On("Publish", mock.Anything, events.TicketReserved, mock.Anything).Return(nil)

		req := f.request()
		price := 6.5
		req.Price = &price

		svc := NewTicketService(f.repository, f.publisher, zap.NewNop())
		_, err := svc.CreateTicket(context.Background(), staffID, req)

		require.NoError(t, err)
		assert.Equal(t, 6.5, created.Price)
	})

	t.Run("rejects a seat already held", func(t *testing.T) {
		f := newTicketFixture()
		f.tickets.On("FindActiveBySeat", mock.Anything, f.showtime.ID, f.seat.ID).
			Return(&entity.Ticket{Base: newBase(), Status: entity.TicketStatusPaid}, nil)

		svc := NewTicketService(f.repository, f.publisher, zap.NewNop())
		_, err := svc.CreateTicket(context.Background(), f.userID, f.request())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "already booked")
		f.tickets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("maps a lost race on the unique index to already booked", func(t *testing.T) {
		f := newTicketFixture()
		f.tickets.On("FindActiveBySeat", mock.Anything, f.showtime.ID, f.seat.ID).Return(nil, nil)
		f.tickets.On("Create", mock.Anything, mock.Anything).Return(&pgconn.PgError{
			Code:           pgerrcode.UniqueViolation,
			ConstraintName: repository.ActiveSeatConstraint,
		})

		svc := NewTicketService(f.repository, f.publisher, zap.NewNop())
		_, err := svc.CreateTicket(context.Background(), f.userID, f.request())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "already booked")
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects a seat from another screen", func(t *testing.T) {
		f := newTicketFixture()
		f.seat.ScreenID = uuid.New()

		svc := NewTicketService(f.repository, f.publisher, zap.NewNop())
		_, err := svc.CreateTicket(context.Background(), f.userID, f.request())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid seat")
	})

	t.Run("rejects a seat taken out of service", func(t *testing.T) {
		f := newTicketFixture()
		f.seat.IsAvailable = false

		svc := NewTicketService(f.repository, f.publisher, zap.NewNop())
		_, err := svc.CreateTicket(context.Background(), f.userID, f.request())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unavailable")
	})

	t.Run("rejects a malformed seat id", func(t *testing.T) {
		f := newTicketFixture()
		req := f.request()
		req.SeatID = "seat-1"

		svc := NewTicketService(f.repository, f.publisher, zap.NewNop())
		_, err := svc.CreateTicket(context.Background(), f.userID, req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
	})
}

func TestTicketService_CancelTicket(t *testing.T) {
	userID := uuid.New()
	ticket := &entity.Ticket{Base: newBase(), UserID: userID, Status: entity.TicketStatusReserved}

	t.Run("owner cancels a reserved ticket", func(t *testing.T) {
		tickets := new(mockTicketRepo)
		tickets.On("FindByID", mock.Anything, ticket.ID).Return(ticket, nil)
		tickets.On("Cancel", mock.Anything, ticket.ID).Return(true, nil)
		publisher := new(mockPublisher)
		publisher.On("Publish", mock.Anything, events.TicketCanceled, mock.Anything).Return(nil)

		svc := NewTicketService(&repository.Repository{Ticket: tickets}, publisher, zap.NewNop())
		require.NoError(t, svc.CancelTicket(context.Background(), userID, ticket.ID.String()))
		publisher.AssertExpectations(t)
	})

	t.Run("paid ticket cannot be canceled", func(t *testing.T) {
		tickets := new(mockTicketRepo)
		tickets.On("FindByID", mock.Anything, ticket.ID).Return(ticket, nil)
		tickets.On("Cancel", mock.Anything, ticket.ID).Return(false, nil)

		svc := NewTicketService(&repository.Repository{Ticket: tickets}, new(mockPublisher), zap.NewNop())
		err := svc.CancelTicket(context.Background(), userID, ticket.ID.String())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be canceled")
	})

	t.Run("someone else's ticket is forbidden", func(t *testing.T) {
		tickets := new(mockTicketRepo)
		tickets.On("FindByID", mock.Anything, ticket.ID).Return(ticket, nil)

		svc := NewTicketService(&repository.Repository{Ticket: tickets}, new(mockPublisher), zap.NewNop())
		err := svc.CancelTicket(context.Background(), uuid.New(), ticket.ID.String())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "forbidden")
		tickets.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
	})
}

func TestTicketService_UpdateTicketStatus(t *testing.T) {
	receiptID := uuid.New()

	tests := []struct {
		name      string
		status    entity.TicketStatus
		receiptID *uuid.UUID
		to        entity.TicketStatus
		wantErr   string
	}{
		{name: "paid ticket is checked in", status: entity.TicketStatusPaid, receiptID: &receiptID, to: entity.TicketStatusUsed},
		{name: "unpaid reservation is dropped", status: entity.TicketStatusReserved, to: entity.TicketStatusDeleted},
		{name: "paid ticket on a receipt cannot be deleted", status: entity.TicketStatusPaid, receiptID: &receiptID, to: entity.TicketStatusDeleted, wantErr: "cannot move"},
		{name: "paid ticket cannot go back to reserved", status: entity.TicketStatusPaid, receiptID: &receiptID, to: entity.TicketStatusReserved, wantErr: "cannot move"},
		{name: "reserved ticket cannot be marked paid", status: entity.TicketStatusReserved, to: entity.TicketStatusPaid, wantErr: "cannot move"},
		{name: "reserved ticket cannot be marked used", status: entity.TicketStatusReserved, to: entity.TicketStatusUsed, wantErr: "cannot move"},
		{name: "reserved ticket on a receipt cannot be deleted", status: entity.TicketStatusReserved, receiptID: &receiptID, to: entity.TicketStatusDeleted, wantErr: "cannot move"},
		{name: "used ticket cannot be reopened", status: entity.TicketStatusUsed, receiptID: &receiptID, to: entity.TicketStatusPaid, wantErr: "cannot move"},
		{name: "deleted ticket cannot be revived", status: entity.TicketStatusDeleted, to: entity.TicketStatusReserved, wantErr: "cannot move"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticket := &entity.Ticket{Base: newBase(), Status: tt.status, ReceiptID: tt.receiptID}
			tickets := new(mockTicketRepo)
			tickets.On("FindByID", mock.Anything, ticket.ID).Return(ticket, nil)
			if tt.wantErr == "" {
				tickets.On("UpdateStatus", mock.Anything, ticket.ID, tt.status, tt.to).Return(true, nil)
				tickets.On("FindDetailByID", mock.Anything, ticket.ID).
					Return(&entity.TicketDetail{Ticket: entity.Ticket{Base: ticket.Base, Status: tt.to}}, nil)
			}

			svc := NewTicketService(&repository.Repository{Ticket: tickets}, new(mockPublisher), zap.NewNop())
			resp, err := svc.UpdateTicketStatus(context.Background(), ticket.ID.String(),
				&request.UpdateTicketStatusRequest{Status: string(tt.to)})

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				tickets.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, resp.Status)
			tickets.AssertExpectations(t)
		})
	}

	t.Run("lost race reports a conflict", func(t *testing.T) {
		ticket := &entity.Ticket{Base: newBase(), Status: entity.TicketStatusPaid, ReceiptID: &receiptID}
		tickets := new(mockTicketRepo)
		tickets.On("FindByID", mock.Anything, ticket.ID).Return(ticket, nil)
		tickets.On("UpdateStatus", mock.Anything, ticket.ID, entity.TicketStatusPaid, entity.TicketStatusUsed).Return(false, nil)

		svc := NewTicketService(&repository.Repository{Ticket: tickets}, new(mockPublisher), zap.NewNop())
		_, err := svc.UpdateTicketStatus(context.Background(), ticket.ID.String(),
			&request.UpdateTicketStatusRequest{Status: string(entity.TicketStatusUsed)})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot move")
	})
}
