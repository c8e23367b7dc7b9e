package usecase

import (
	"context"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Each mock embeds its interface and implements only what the tests reach;
// an unexpected call panics on the nil embedded value.

type mockUserRepo struct {
	repository.UserRepository
	mock.Mock
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

type mockPreferenceRepo struct {
	repository.PreferenceRepository
	mock.Mock
}

func (m *mockPreferenceRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserPreference, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UserPreference), args.Error(1)
}

type mockMovieRepo struct {
	repository.MovieRepository
	mock.Mock
}

func (m *mockMovieRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Movie), args.Error(1)
}

type mockScreenRepo struct {
	repository.ScreenRepository
	mock.Mock
}

func (m *mockScreenRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Screen, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Screen), args.Error(1)
}

type mockSeatRepo struct {
	repository.SeatRepository
	mock.Mock
}

func (m *mockSeatRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Seat, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Seat), args.Error(1)
}

type mockShowtimeRepo struct {
	repository.ShowtimeRepository
	mock.Mock
}

func (m *mockShowtimeRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Showtime), args.Error(1)
}

func (m *mockShowtimeRepo) FindSlots(ctx context.Context, screenID uuid.UUID, date time.Time) ([]*entity.ShowtimeSlot, error) {
	args := m.Called(ctx, screenID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ShowtimeSlot), args.Error(1)
}

func (m *mockShowtimeRepo) Create(ctx context.Context, showtime *entity.Showtime) error {
	return m.Called(ctx, showtime).Error(0)
}

type mockTicketRepo struct {
	repository.TicketRepository
	mock.Mock
}

func (m *mockTicketRepo) Create(ctx context.Context, ticket *entity.Ticket) error {
	return m.Called(ctx, ticket).Error(0)
}

func (m *mockTicketRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Ticket), args.Error(1)
}

func (m *mockTicketRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Ticket, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Ticket), args.Error(1)
}

func (m *mockTicketRepo) FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.TicketDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TicketDetail), args.Error(1)
}

func (m *mockTicketRepo) FindByReceiptID(ctx context.Context, receiptID uuid.UUID) ([]*entity.TicketDetail, error) {
	args := m.Called(ctx, receiptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.TicketDetail), args.Error(1)
}

func (m *mockTicketRepo) FindActiveBySeat(ctx context.Context, showtimeID, seatID uuid.UUID) (*entity.Ticket, error) {
	args := m.Called(ctx, showtimeID, seatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Ticket), args.Error(1)
}

func (m *mockTicketRepo) Cancel(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockTicketRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.TicketStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

type mockReceiptRepo struct {
	repository.ReceiptRepository
	mock.Mock
}

func (m *mockReceiptRepo) CreateWithTickets(ctx context.Context, receipt *entity.Receipt, ticketIDs []uuid.UUID) error {
	return m.Called(ctx, receipt, ticketIDs).Error(0)
}

func (m *mockReceiptRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Receipt), args.Error(1)
}

func (m *mockReceiptRepo) DeleteAndRelease(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type mockPromotionRepo struct {
	repository.PromotionRepository
	mock.Mock
}

func (m *mockPromotionRepo) FindByCode(ctx context.Context, code string) (*entity.Promotion, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Promotion), args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	return m.Called(ctx, routingKey, payload).Error(0)
}

func (m *mockPublisher) Close() error { return nil }

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(recipient, templateFile string, data any) error {
	return m.Called(recipient, templateFile, data).Error(0)
}
