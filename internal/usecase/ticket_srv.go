package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/pkg/database"
	"cinema-ticketing/pkg/events"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TicketQuery holds the staff ticket listing filters.
type TicketQuery struct {
	request.PaginatedRequest
	Status     *string
	ShowtimeID *string
}

type TicketService interface {
	// Authenticated users
	CreateTicket(ctx context.Context, userID uuid.UUID, req *request.CreateTicketRequest) (*response.TicketDetailResponse, error)
	GetUserTickets(ctx context.Context, userID uuid.UUID) ([]response.TicketDetailResponse, error)
	GetTicketByID(ctx context.Context, userID uuid.UUID, role entity.UserRole, ticketID string) (*response.TicketDetailResponse, error)
	CancelTicket(ctx context.Context, userID uuid.UUID, ticketID string) error

	// Staff
	GetAllTickets(ctx context.Context, q *TicketQuery) (*response.PaginatedResponse[response.TicketDetailResponse], error)
	UpdateTicketStatus(ctx context.Context, ticketID string, req *request.UpdateTicketStatusRequest) (*response.TicketDetailResponse, error)
}

type ticketService struct {
	repo      *repository.Repository
	publisher events.Publisher
	log       *zap.Logger
}

func NewTicketService(repo *repository.Repository, publisher events.Publisher, log *zap.Logger) TicketService {
	return &ticketService{
		repo:      repo,
		publisher: publisher,
		log:       log.With(zap.String("service", "ticket")),
	}
}

func (s *ticketService) CreateTicket(ctx context.Context, userID uuid.UUID, req *request.CreateTicketRequest) (*response.TicketDetailResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create ticket validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	showtimeID, err := parseID("showtime", req.ShowtimeID)
	if err != nil {
		return nil, err
	}
	seatID, err := parseID("seat", req.SeatID)
	if err != nil {
		return nil, err
	}

	// 1. User must exist and be active
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, fmt.Errorf("user not found")
	}
	if req.Price != nil && !user.Role.IsStaff() {
		return nil, fmt.Errorf("forbidden: only staff can set a ticket price")
	}

	// 2. Showtime must exist
	showtime, err := s.repo.Showtime.FindByID(ctx, showtimeID)
	if err != nil {
		return nil, fmt.Errorf("get showtime: %w", err)
	}
	if showtime == nil {
		return nil, fmt.Errorf("showtime %s not found", req.ShowtimeID)
	}

	// 3. Seat must exist on the showtime's screen and be open for sale
	seat, err := s.repo.Seat.FindByID(ctx, seatID)
	if err != nil {
		return nil, fmt.Errorf("get seat: %w", err)
	}
	if seat == nil {
		return nil, fmt.Errorf("seat %s not found", req.SeatID)
	}
	if seat.ScreenID != showtime.ScreenID {
		return nil, fmt.Errorf("invalid seat: %s is not on the showtime's screen", seat.SeatNumber)
	}
	if !seat.IsAvailable {
		return nil, fmt.Errorf("seat %s is unavailable", seat.SeatNumber)
	}

	// 4. No active ticket may hold the seat
	active, err := s.repo.Ticket.FindActiveBySeat(ctx, showtimeID, seatID)
	if err != nil {
		return nil, fmt.Errorf("check seat: %w", err)
	}
	if active != nil {
		return nil, fmt.Errorf("seat %s already booked for this showtime", seat.SeatNumber)
	}

	price := showtime.Price
	if req.Price != nil {
		price = *req.Price
	}

	now := time.Now()
	ticket := &entity.Ticket{
		Base:         newBase(),
		UserID:       userID,
		ShowtimeID:   showtimeID,
		SeatID:       seatID,
		Price:        price,
		Status:       entity.TicketStatusReserved,
		PurchaseDate: now,
	}

	// 5. The partial unique index settles concurrent reservations
	if err := s.repo.Ticket.Create(ctx, ticket); err != nil {
		if database.IsUniqueViolation(err, repository.ActiveSeatConstraint) {
			return nil, fmt.Errorf("seat %s already booked for this showtime", seat.SeatNumber)
		}
		return nil, fmt.Errorf("create ticket: %w", err)
	}

	s.log.Info("Ticket reserved",
		zap.String("ticket_id", ticket.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("showtime_id", showtimeID.String()),
		zap.String("seat", seat.SeatNumber),
	)
	s.publish(ctx, events.TicketReserved, ticket)

	return s.detail(ctx, ticket.ID)
}

func (s *ticketService) GetUserTickets(ctx context.Context, userID uuid.UUID) ([]response.TicketDetailResponse, error) {
	tickets, err := s.repo.Ticket.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to get user tickets", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("get tickets: %w", err)
	}
	return response.TicketDetailsToResponse(tickets), nil
}

func (s *ticketService) GetTicketByID(ctx context.Context, userID uuid.UUID, role entity.UserRole, ticketID string) (*response.TicketDetailResponse, error) {
	id, err := parseID("ticket", ticketID)
	if err != nil {
		return nil, err
	}

	ticket, err := s.repo.Ticket.FindDetailByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	if ticket == nil {
		return nil, fmt.Errorf("ticket %s not found", ticketID)
	}
	if ticket.UserID != userID && !role.IsStaff() {
		return nil, fmt.Errorf("forbidden: ticket belongs to another user")
	}

	resp := response.TicketDetailToResponse(ticket)
	return &resp, nil
}

func (s *ticketService) CancelTicket(ctx context.Context, userID uuid.UUID, ticketID string) error {
	id, err := parseID("ticket", ticketID)
	if err != nil {
		return err
	}

	ticket, err := s.repo.Ticket.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get ticket: %w", err)
	}
	if ticket == nil {
		return fmt.Errorf("ticket %s not found", ticketID)
	}
	if ticket.UserID != userID {
		return fmt.Errorf("forbidden: ticket belongs to another user")
	}

	canceled, err := s.repo.Ticket.Cancel(ctx, id)
	if err != nil {
		return fmt.Errorf("cancel ticket: %w", err)
	}
	if !canceled {
		return fmt.Errorf("ticket cannot be canceled: only reserved tickets without a receipt can be canceled")
	}

	ticket.Status = entity.TicketStatusDeleted
	s.log.Info("Ticket canceled", zap.String("ticket_id", ticketID), zap.String("user_id", userID.String()))
	s.publish(ctx, events.TicketCanceled, ticket)
	return nil
}

func (s *ticketService) GetAllTickets(ctx context.Context, q *TicketQuery) (*response.PaginatedResponse[response.TicketDetailResponse], error) {
	filter := entity.TicketFilter{Status: q.Status}
	if q.Status != nil && !entity.TicketStatus(*q.Status).Valid() {
		return nil, fmt.Errorf("invalid ticket status %q", *q.Status)
	}
	if q.ShowtimeID != nil {
		id, err := parseID("showtime", *q.ShowtimeID)
		if err != nil {
			return nil, err
		}
		filter.ShowtimeID = &id
	}

	tickets, err := s.repo.Ticket.FindAll(ctx, filter, q.Limit(), q.Offset())
	if err != nil {
		s.log.Error("Failed to get tickets", zap.Error(err))
		return nil, fmt.Errorf("get tickets: %w", err)
	}

	total, err := s.repo.Ticket.CountAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count tickets: %w", err)
	}

	return response.NewPaginatedResponse(response.TicketDetailsToResponse(tickets), q.Page, q.Limit(), total), nil
}

func (s *ticketService) UpdateTicketStatus(ctx context.Context, ticketID string, req *request.UpdateTicketStatusRequest) (*response.TicketDetailResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := parseID("ticket", ticketID)
	if err != nil {
		return nil, err
	}

	ticket, err := s.repo.Ticket.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	if ticket == nil {
		return nil, fmt.Errorf("ticket %s not found", ticketID)
	}

	status := entity.TicketStatus(req.Status)
	if !ticket.Status.CanBecome(status, ticket.ReceiptID != nil) {
		return nil, fmt.Errorf("ticket cannot move from %s to %s", ticket.Status, status)
	}

	updated, err := s.repo.Ticket.UpdateStatus(ctx, id, ticket.Status, status)
	if err != nil {
		return nil, fmt.Errorf("update ticket status: %w", err)
	}
	if !updated {
		return nil, fmt.Errorf("ticket cannot move to %s: it changed while updating", status)
	}

	s.log.Info("Ticket status updated",
		zap.String("ticket_id", ticketID),
		zap.String("from", string(ticket.Status)),
		zap.String("to", req.Status),
	)

	return s.detail(ctx, id)
}

// ==================== HELPER METHODS ====================

func (s *ticketService) detail(ctx context.Context, id uuid.UUID) (*response.TicketDetailResponse, error) {
	ticket, err := s.repo.Ticket.FindDetailByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	if ticket == nil {
		return nil, fmt.Errorf("ticket %s not found", id)
	}

	resp := response.TicketDetailToResponse(ticket)
	return &resp, nil
}

func (s *ticketService) publish(ctx context.Context, routingKey string, ticket *entity.Ticket) {
	event := events.TicketEvent{
		TicketID:   ticket.ID.String(),
		UserID:     ticket.UserID.String(),
		ShowtimeID: ticket.ShowtimeID.String(),
		SeatID:     ticket.SeatID.String(),
		Status:     string(ticket.Status),
		Price:      ticket.Price,
		OccurredAt: time.Now(),
	}
	if err := s.publisher.Publish(ctx, routingKey, event); err != nil {
		s.log.Warn("Failed to publish ticket event",
			zap.Error(err),
			zap.String("routing_key", routingKey),
			zap.String("ticket_id", event.TicketID),
		)
	}
}
