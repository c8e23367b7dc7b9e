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
	"cinema-ticketing/pkg/mailer"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const receiptTemplate = "receipt.tmpl"

type ReceiptService interface {
	CreateReceipt(ctx context.Context, userID uuid.UUID, req *request.CreateReceiptRequest) (*response.ReceiptDetailResponse, error)
	GetUserReceipts(ctx context.Context, userID uuid.UUID) ([]response.ReceiptResponse, error)
	GetReceiptByID(ctx context.Context, userID uuid.UUID, role entity.UserRole, receiptID string) (*response.ReceiptDetailResponse, error)
	DeleteReceipt(ctx context.Context, userID uuid.UUID, role entity.UserRole, receiptID string) error
}

type receiptService struct {
	repo      *repository.Repository
	mailer    mailer.Mailer
	publisher events.Publisher
	log       *zap.Logger
}

func NewReceiptService(
	repo *repository.Repository,
	mail mailer.Mailer,
	publisher events.Publisher,
	log *zap.Logger,
) ReceiptService {
	return &receiptService{
		repo:      repo,
		mailer:    mail,
		publisher: publisher,
		log:       log.With(zap.String("service", "receipt")),
	}
}

// ReceiptEmail is the data rendered into the receipt mail template.
type ReceiptEmail struct {
	Username      string
	MovieTitle    string
	ReceiptNumber string
	Tickets       []ReceiptEmailLine
	Subtotal      string
	Discount      string
	TotalPrice    string
	PaymentMethod string
}

type ReceiptEmailLine struct {
	ShowDate   string
	ShowTime   string
	ScreenName string
	SeatNumber string
	Price      string
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func (s *receiptService) CreateReceipt(ctx context.Context, userID uuid.UUID, req *request.CreateReceiptRequest) (*response.ReceiptDetailResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create receipt validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	movieID, err := parseID("movie", req.MovieID)
	if err != nil {
		return nil, err
	}

	ticketIDs := make([]uuid.UUID, 0, len(req.TicketIDs))
	seen := make(map[uuid.UUID]bool, len(req.TicketIDs))
	for _, raw := range req.TicketIDs {
		id, err := parseID("ticket", raw)
		if err != nil {
			return nil, err
		}
		if seen[id] {
			return nil, fmt.Errorf("validation failed: ticket %s listed twice", raw)
		}
		seen[id] = true
		ticketIDs = append(ticketIDs, id)
	}

	// 1. Movie must exist
	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s not found", req.MovieID)
	}

	// 2. Every ticket must exist, be the caller's, be reserved and unpaid
	tickets, err := s.repo.Ticket.FindByIDs(ctx, ticketIDs)
	if err != nil {
		return nil, fmt.Errorf("get tickets: %w", err)
	}
	if len(tickets) != len(ticketIDs) {
		return nil, fmt.Errorf("ticket not found")
	}

	subtotal := decimal.Zero
	showtimeMovie := make(map[uuid.UUID]uuid.UUID)
	for _, t := range tickets {
		if t.UserID != userID {
			return nil, fmt.Errorf("forbidden: ticket %s belongs to another user", t.ID)
		}
		if t.ReceiptID != nil {
			return nil, fmt.Errorf("ticket %s already paid", t.ID)
		}
		if t.Status != entity.TicketStatusReserved {
			return nil, fmt.Errorf("ticket %s is already %s", t.ID, t.Status)
		}

		// 3. ... and belong to a showtime of the movie
		if _, ok := showtimeMovie[t.ShowtimeID]; !ok {
			st, err := s.repo.Showtime.FindByID(ctx, t.ShowtimeID)
			if err != nil {
				return nil, fmt.Errorf("get showtime: %w", err)
			}
			if st == nil {
				return nil, fmt.Errorf("showtime %s not found", t.ShowtimeID)
			}
			showtimeMovie[t.ShowtimeID] = st.MovieID
		}
		if showtimeMovie[t.ShowtimeID] != movieID {
			return nil, fmt.Errorf("invalid ticket %s: showtime is not for movie %s", t.ID, movie.Title)
		}

		subtotal = subtotal.Add(decimal.NewFromFloat(t.Price))
	}

	if req.TotalPrice != nil {
		subtotal = decimal.NewFromFloat(*req.TotalPrice)
	}
	subtotal = subtotal.Round(2)

	// 4. Optional promotion
	now := time.Now()
	discount := decimal.Zero
	var promotionID *uuid.UUID
	if req.PromotionCode != nil && *req.PromotionCode != "" {
		promo, err := findUsablePromotion(ctx, s.repo, *req.PromotionCode, now)
		if err != nil {
			return nil, err
		}
		discount = CalculateDiscount(promo, subtotal)
		promotionID = &promo.ID
	}

	receipt := &entity.Receipt{
		Base:          newBase(),
		ReceiptNumber: utils.GenerateReceiptNumber(now),
		UserID:        userID,
		MovieID:       movieID,
		PromotionID:   promotionID,
		Subtotal:      subtotal.InexactFloat64(),
		Discount:      discount.InexactFloat64(),
		TotalPrice:    subtotal.Sub(discount).InexactFloat64(),
		PaymentMethod: req.PaymentMethod,
	}

	// 5. Receipt insert and ticket updates commit together
	if err := s.repo.Receipt.CreateWithTickets(ctx, receipt, ticketIDs); err != nil {
		s.log.Error("Failed to create receipt",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("ticket_count", len(ticketIDs)),
		)
		return nil, fmt.Errorf("create receipt: %w", err)
	}

	details, err := s.repo.Ticket.FindByReceiptID(ctx, receipt.ID)
	if err != nil {
		return nil, fmt.Errorf("get receipt tickets: %w", err)
	}

	s.log.Info("Receipt created",
		zap.String("receipt_id", receipt.ID.String()),
		zap.String("receipt_number", receipt.ReceiptNumber),
		zap.String("user_id", userID.String()),
		zap.Float64("total_price", receipt.TotalPrice),
	)

	s.publishReceipt(ctx, events.ReceiptCreated, receipt, ticketIDs)
	go s.sendReceiptEmail(receipt, movie.Title, details)

	resp := response.ReceiptToDetailResponse(receipt, details)
	return &resp, nil
}

func (s *receiptService) GetUserReceipts(ctx context.Context, userID uuid.UUID) ([]response.ReceiptResponse, error) {
	receipts, err := s.repo.Receipt.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to get user receipts", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("get receipts: %w", err)
	}
	return response.ReceiptsToResponse(receipts), nil
}

func (s *receiptService) findOwned(ctx context.Context, userID uuid.UUID, role entity.UserRole, receiptID string) (*entity.Receipt, error) {
	id, err := parseID("receipt", receiptID)
	if err != nil {
		return nil, err
	}

	receipt, err := s.repo.Receipt.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get receipt: %w", err)
	}
	if receipt == nil {
		return nil, fmt.Errorf("receipt %s not found", receiptID)
	}
	if receipt.UserID != userID && !role.IsStaff() {
		return nil, fmt.Errorf("forbidden: receipt belongs to another user")
	}
	return receipt, nil
}

func (s *receiptService) GetReceiptByID(ctx context.Context, userID uuid.UUID, role entity.UserRole, receiptID string) (*response.ReceiptDetailResponse, error) {
	receipt, err := s.findOwned(ctx, userID, role, receiptID)
	if err != nil {
		return nil, err
	}

	details, err := s.repo.Ticket.FindByReceiptID(ctx, receipt.ID)
	if err != nil {
		return nil, fmt.Errorf("get receipt tickets: %w", err)
	}

	resp := response.ReceiptToDetailResponse(receipt, details)
	return &resp, nil
}

func (s *receiptService) DeleteReceipt(ctx context.Context, userID uuid.UUID, role entity.UserRole, receiptID string) error {
	receipt, err := s.findOwned(ctx, userID, role, receiptID)
	if err != nil {
		return err
	}

	details, err := s.repo.Ticket.FindByReceiptID(ctx, receipt.ID)
	if err != nil {
		return fmt.Errorf("get receipt tickets: %w", err)
	}
	for _, d := range details {
		if d.Status != entity.TicketStatusPaid {
			return fmt.Errorf("receipt cannot be deleted: ticket %s is already %s", d.SeatNumber, d.Status)
		}
	}

	released, err := s.repo.Receipt.DeleteAndRelease(ctx, receipt.ID)
	if err != nil {
		// a ticket was marked used after the check above and still references the receipt
		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("receipt cannot be deleted: one of its tickets was already used")
		}
		s.log.Error("Failed to delete receipt", zap.Error(err), zap.String("receipt_id", receiptID))
		return fmt.Errorf("delete receipt: %w", err)
	}

	s.log.Info("Receipt deleted",
		zap.String("receipt_id", receiptID),
		zap.Int64("tickets_released", released),
	)

	ticketIDs := make([]uuid.UUID, 0, len(details))
	for _, d := range details {
		ticketIDs = append(ticketIDs, d.ID)
	}
	s.publishReceipt(ctx, events.ReceiptDeleted, receipt, ticketIDs)
	return nil
}

// ==================== HELPER METHODS ====================

func (s *receiptService) publishReceipt(ctx context.Context, routingKey string, receipt *entity.Receipt, ticketIDs []uuid.UUID) {
	ids := make([]string, 0, len(ticketIDs))
	for _, id := range ticketIDs {
		ids = append(ids, id.String())
	}

	event := events.ReceiptEvent{
		ReceiptID:     receipt.ID.String(),
		ReceiptNumber: receipt.ReceiptNumber,
		UserID:        receipt.UserID.String(),
		MovieID:       receipt.MovieID.String(),
		TicketIDs:     ids,
		TotalPrice:    receipt.TotalPrice,
		OccurredAt:    time.Now(),
	}
	if err := s.publisher.Publish(ctx, routingKey, event); err != nil {
		s.log.Warn("Failed to publish receipt event",
			zap.Error(err),
			zap.String("routing_key", routingKey),
			zap.String("receipt_id", event.ReceiptID),
		)
	}
}

func (s *receiptService) sendReceiptEmail(receipt *entity.Receipt, movieTitle string, details []*entity.TicketDetail) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, err := s.repo.User.FindByID(ctx, receipt.UserID)
	if err != nil || user == nil {
		s.log.Warn("Receipt email skipped, user lookup failed",
			zap.Error(err), zap.String("receipt_id", receipt.ID.String()))
		return
	}

	pref, err := s.repo.Preference.FindByUserID(ctx, user.ID)
	if err == nil && pref != nil && !pref.EmailNotifications {
		s.log.Debug("Receipt email skipped by preference", zap.String("user_id", user.ID.String()))
		return
	}

	data := ReceiptEmail{
		Username:      user.Username,
		MovieTitle:    movieTitle,
		ReceiptNumber: receipt.ReceiptNumber,
		Subtotal:      money(receipt.Subtotal),
		Discount:      money(receipt.Discount),
		TotalPrice:    money(receipt.TotalPrice),
		PaymentMethod: receipt.PaymentMethod,
	}
	for _, d := range details {
		data.Tickets = append(data.Tickets, ReceiptEmailLine{
			ShowDate:   d.ShowDate.Format("2006-01-02"),
			ShowTime:   d.ShowTime,
			ScreenName: d.ScreenName,
			SeatNumber: d.SeatNumber,
			Price:      money(d.Price),
		})
	}

	if err := s.mailer.Send(user.Email, receiptTemplate, data); err != nil {
		s.log.Error("Failed to send receipt email",
			zap.Error(err),
			zap.String("receipt_id", receipt.ID.String()),
			zap.String("email", user.Email),
		)
		return
	}

	s.log.Info("Receipt email sent", zap.String("receipt_id", receipt.ID.String()))
}
