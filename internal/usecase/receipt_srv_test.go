package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

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

type receiptFixture struct {
	userID    uuid.UUID
	movie     *entity.Movie
	showtime  *entity.Showtime
	tickets   []*entity.Ticket
	ticketIDs []uuid.UUID

	movieRepo    *mockMovieRepo
	ticketRepo   *mockTicketRepo
	showtimeRepo *mockShowtimeRepo
	receiptRepo  *mockReceiptRepo
	promoRepo    *mockPromotionRepo
	userRepo     *mockUserRepo
	prefRepo     *mockPreferenceRepo
	publisher    *mockPublisher
	mailer       *mockMailer
}

func newReceiptFixture() *receiptFixture {
	f := &receiptFixture{
		userID:       uuid.New(),
		movieRepo:    new(mockMovieRepo),
		ticketRepo:   new(mockTicketRepo),
		showtimeRepo: new(mockShowtimeRepo),
		receiptRepo:  new(mockReceiptRepo),
		promoRepo:    new(mockPromotionRepo),
		userRepo:     new(mockUserRepo),
		prefRepo:     new(mockPreferenceRepo),
		publisher:    new(mockPublisher),
		mailer:       new(mockMailer),
	}
	f.movie = &entity.Movie{Base: newBase(), Title: "Arrival", DurationMinutes: 116}
	f.showtime = &entity.Showtime{Base: newBase(), MovieID: f.movie.ID, ScreenID: uuid.New()}
	for _, price := range []float64{12.5, 12.5} {
		t := &entity.Ticket{
			Base:       newBase(),
			UserID:     f.userID,
			ShowtimeID: f.showtime.ID,
			SeatID:     uuid.New(),
			Price:      price,
			Status:     entity.TicketStatusReserved,
		}
		f.tickets = append(f.tickets, t)
		f.ticketIDs = append(f.ticketIDs, t.ID)
	}

	f.movieRepo.On("FindByID", mock.Anything, f.movie.ID).Return(f.movie, nil)
	f.ticketRepo.On("FindByIDs", mock.Anything, f.ticketIDs).Return(f.tickets, nil)
	f.showtimeRepo.On("FindByID", mock.Anything, f.showtime.ID).Return(f.showtime, nil)
	return f
}

func (f *receiptFixture) service() ReceiptService {
	repo := &repository.Repository{
		User:       f.userRepo,
		Preference: f.prefRepo,
		Movie:      f.movieRepo,
		Showtime:   f.showtimeRepo,
		Ticket:     f.ticketRepo,
		Receipt:    f.receiptRepo,
		Promotion:  f.promoRepo,
	}
	return NewReceiptService(repo, f.mailer, f.publisher, zap.NewNop())
}

func (f *receiptFixture) request() *request.CreateReceiptRequest {
	ids := make([]string, 0, len(f.ticketIDs))
	for _, id := range f.ticketIDs {
		ids = append(ids, id.String())
	}
	return &request.CreateReceiptRequest{
		MovieID:       f.movie.ID.String(),
		TicketIDs:     ids,
		PaymentMethod: "credit_card",
	}
}

func TestReceiptService_CreateReceipt(t *testing.T) {
	t.Run("sums tickets, applies the promotion and emails the receipt", func(t *testing.T) {
		f := newReceiptFixture()
		now := time.Now()
		promo := &entity.Promotion{
			Base:       newBase(),
			Code:       "BOGO",
			PromoType:  entity.PromotionBuyOneGetOne,
			StartDate:  now.Add(-time.Hour),
			ExpiryDate: now.Add(time.Hour),
			IsActive:   true,
		}
		f.promoRepo.On("FindByCode", mock.Anything, "BOGO").Return(promo, nil)

		var stored *entity.Receipt
		f.receiptRepo.On("CreateWithTickets", mock.Anything, mock.AnythingOfType("*entity.Receipt"), f.ticketIDs).
			Run(func(args mock.Arguments) { stored = args.Get(1).(*entity.Receipt) }).
			Return(nil)
		f.ticketRepo.On("FindByReceiptID", mock.Anything, mock.AnythingOfType("uuid.UUID")).
			Return([]*entity.TicketDetail{}, nil)
		f.publisher.On("Publish", mock.Anything, events.ReceiptCreated, mock.AnythingOfType("events.ReceiptEvent")).Return(nil)

		sent := make(chan struct{})
		f.userRepo.On("FindByID", mock.Anything, f.userID).
			Return(&entity.User{Base: entity.Base{ID: f.userID}, Email: "ana@example.com", Username: "ana"}, nil)
		f.prefRepo.On("FindByUserID", mock.Anything, f.userID).Return(nil, nil)
		f.mailer.On("Send", "ana@example.com", receiptTemplate, mock.AnythingOfType("usecase.ReceiptEmail")).
			Run(func(mock.Arguments) { close(sent) }).
			Return(nil)

		req := f.request()
		code := "bogo"
		req.PromotionCode = &code

		resp, err := f.service().CreateReceipt(context.Background(), f.userID, req)
		require.NoError(t, err)

		assert.InDelta(t, 25.0, stored.Subtotal, 0.001)
		assert.InDelta(t, 12.5, stored.Discount, 0.001)
		assert.InDelta(t, 12.5, stored.TotalPrice, 0.001)
		require.NotNil(t, stored.PromotionID)
		assert.Equal(t, promo.ID, *stored.PromotionID)
		assert.Equal(t, stored.ReceiptNumber, resp.ReceiptNumber)

		select {
		case <-sent:
		case <-time.After(2 * time.Second):
			t.Fatal("receipt email was not sent")
		}
		f.publisher.AssertExpectations(t)
	})

	t.Run("explicit total overrides the ticket sum", func(t *testing.T) {
		f := newReceiptFixture()
		var stored *entity.Receipt
		f.receiptRepo.On("CreateWithTickets", mock.Anything, mock.Anything, f.ticketIDs).
			Run(func(args mock.Arguments) { stored = args.Get(1).(*entity.Receipt) }).
			Return(nil)
		f.ticketRepo.On("FindByReceiptID", mock.Anything, mock.Anything).Return([]*entity.TicketDetail{}, nil)
		f.publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		f.userRepo.On("FindByID", mock.Anything, mock.Anything).Return(nil, nil).Maybe()

		req := f.request()
		total := 20.0
		req.TotalPrice = &total

		_, err := f.service().CreateReceipt(context.Background(), f.userID, req)
		require.NoError(t, err)
		assert.InDelta(t, 20.0, stored.TotalPrice, 0.001)
		assert.Zero(t, stored.Discount)
	})

	tests := []struct {
		name    string
		mutate  func(f *receiptFixture)
		wantErr string
	}{
		{
			name:    "ticket of another user",
			mutate:  func(f *receiptFixture) { f.tickets[1].UserID = uuid.New() },
			wantErr: "forbidden",
		},
		{
			name: "ticket already on a receipt",
			mutate: func(f *receiptFixture) {
				id := uuid.New()
				f.tickets[0].ReceiptID = &id
			},
			wantErr: "already paid",
		},
		{
			name:    "ticket no longer reserved",
			mutate:  func(f *receiptFixture) { f.tickets[0].Status = entity.TicketStatusDeleted },
			wantErr: "already deleted",
		},
		{
			name:    "ticket for a different movie",
			mutate:  func(f *receiptFixture) { f.showtime.MovieID = uuid.New() },
			wantErr: "invalid ticket",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newReceiptFixture()
			tt.mutate(f)

			_, err := f.service().CreateReceipt(context.Background(), f.userID, f.request())

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			f.receiptRepo.AssertNotCalled(t, "CreateWithTickets", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestReceiptService_DeleteReceipt(t *testing.T) {
	paidDetails := func(f *receiptFixture, receiptID uuid.UUID) []*entity.TicketDetail {
		var out []*entity.TicketDetail
		for _, tk := range f.tickets {
			paid := *tk
			paid.Status = entity.TicketStatusPaid
			paid.ReceiptID = &receiptID
			out = append(out, &entity.TicketDetail{Ticket: paid, SeatNumber: "C4"})
		}
		return out
	}

	t.Run("another user is forbidden", func(t *testing.T) {
		f := newReceiptFixture()
		receipt := &entity.Receipt{Base: newBase(), UserID: f.userID, MovieID: f.movie.ID}
		f.receiptRepo.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil)

		err := f.service().DeleteReceipt(context.Background(), uuid.New(), entity.RoleUser, receipt.ID.String())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "forbidden")
		f.receiptRepo.AssertNotCalled(t, "DeleteAndRelease", mock.Anything, mock.Anything)
	})

	t.Run("owner deletes and tickets are released", func(t *testing.T) {
		f := newReceiptFixture()
		receipt := &entity.Receipt{Base: newBase(), UserID: f.userID, MovieID: f.movie.ID}
		f.receiptRepo.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil)
		f.ticketRepo.On("FindByReceiptID", mock.Anything, receipt.ID).Return(paidDetails(f, receipt.ID), nil)
		f.receiptRepo.On("DeleteAndRelease", mock.Anything, receipt.ID).Return(int64(2), nil)
		f.publisher.On("Publish", mock.Anything, events.ReceiptDeleted, mock.MatchedBy(func(e events.ReceiptEvent) bool {
			return len(e.TicketIDs) == 2
		})).Return(nil)

		err := f.service().DeleteReceipt(context.Background(), f.userID, entity.RoleUser, receipt.ID.String())
		require.NoError(t, err)
		f.receiptRepo.AssertCalled(t, "DeleteAndRelease", mock.Anything, receipt.ID)
		f.publisher.AssertExpectations(t)
	})

	t.Run("a used ticket blocks the delete", func(t *testing.T) {
		f := newReceiptFixture()
		receipt := &entity.Receipt{Base: newBase(), UserID: f.userID, MovieID: f.movie.ID}
		details := paidDetails(f, receipt.ID)
		details[1].Status = entity.TicketStatusUsed
		f.receiptRepo.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil)
		f.ticketRepo.On("FindByReceiptID", mock.Anything, receipt.ID).Return(details, nil)

		err := f.service().DeleteReceipt(context.Background(), f.userID, entity.RoleUser, receipt.ID.String())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be deleted")
		f.receiptRepo.AssertNotCalled(t, "DeleteAndRelease", mock.Anything, mock.Anything)
	})

	t.Run("a ticket used while deleting maps to a conflict", func(t *testing.T) {
		f := newReceiptFixture()
		receipt := &entity.Receipt{Base: newBase(), UserID: f.userID, MovieID: f.movie.ID}
		f.receiptRepo.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil)
		f.ticketRepo.On("FindByReceiptID", mock.Anything, receipt.ID).Return(paidDetails(f, receipt.ID), nil)
		f.receiptRepo.On("DeleteAndRelease", mock.Anything, receipt.ID).
			Return(int64(0), fmt.Errorf("delete receipt: %w", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}))

		err := f.service().DeleteReceipt(context.Background(), f.userID, entity.RoleUser, receipt.ID.String())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be deleted")
	})
}
