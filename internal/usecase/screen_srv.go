package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ScreenService interface {
	GetScreens(ctx context.Context) ([]response.ScreenResponse, error)
	GetScreenByID(ctx context.Context, id string) (*response.ScreenResponse, error)
	GetScreenSeats(ctx context.Context, id string) (*response.ScreenDetailResponse, error)
	CreateScreen(ctx context.Context, req *request.ScreenRequest) (*response.ScreenDetailResponse, error)
	UpdateScreen(ctx context.Context, id string, req *request.ScreenUpdateRequest) (*response.ScreenResponse, error)
	DeleteScreen(ctx context.Context, id string) error
	SetSeatAvailability(ctx context.Context, seatID string, req *request.SeatAvailabilityRequest) (*response.SeatResponse, error)
}

type screenService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewScreenService(repo *repository.Repository, log *zap.Logger) ScreenService {
	return &screenService{
		repo: repo,
		log:  log.With(zap.String("service", "screen")),
	}
}

// BuildSeats lays out rows×cols seats labelled A1, A2, ... B1 for a screen.
func BuildSeats(screenID uuid.UUID, rows, cols int) []*entity.Seat {
	now := time.Now()
	seats := make([]*entity.Seat, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 1; c <= cols; c++ {
			seats = append(seats, &entity.Seat{
				Base: entity.Base{
					ID:        uuid.New(),
					CreatedAt: now,
					UpdatedAt: now,
				},
				ScreenID:    screenID,
				SeatRow:     utils.RowLabel(r),
				SeatCol:     c,
				SeatNumber:  utils.SeatLabel(r, c),
				SeatType:    "standard",
				IsAvailable: true,
			})
		}
	}
	return seats
}

func (s *screenService) GetScreens(ctx context.Context) ([]response.ScreenResponse, error) {
	screens, err := s.repo.Screen.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get screens", zap.Error(err))
		return nil, fmt.Errorf("get screens: %w", err)
	}
	return response.ScreensToResponse(screens), nil
}

func (s *screenService) find(ctx context.Context, id string) (*entity.Screen, error) {
	screenID, err := parseID("screen", id)
	if err != nil {
		return nil, err
	}

	screen, err := s.repo.Screen.FindByID(ctx, screenID)
	if err != nil {
		return nil, fmt.Errorf("get screen: %w", err)
	}
	if screen == nil {
		return nil, fmt.Errorf("screen %s not found", id)
	}
	return screen, nil
}

func (s *screenService) GetScreenByID(ctx context.Context, id string) (*response.ScreenResponse, error) {
	screen, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.ScreenToResponse(screen)
	return &resp, nil
}

func (s *screenService) GetScreenSeats(ctx context.Context, id string) (*response.ScreenDetailResponse, error) {
	screen, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	seats, err := s.repo.Seat.FindByScreenID(ctx, screen.ID)
	if err != nil {
		return nil, fmt.Errorf("get seats: %w", err)
	}

	resp := response.ScreenToDetailResponse(screen, seats)
	return &resp, nil
}

func (s *screenService) CreateScreen(ctx context.Context, req *request.ScreenRequest) (*response.ScreenDetailResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create screen validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	name := strings.TrimSpace(req.Name)
	existing, err := s.repo.Screen.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("check screen name: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("screen %q already exists", name)
	}

	screen := &entity.Screen{
		Base:       newBase(),
		Name:       name,
		ScreenType: req.ScreenType,
		Capacity:   req.Rows * req.Cols,
		Rows:       req.Rows,
		Cols:       req.Cols,
	}
	seats := BuildSeats(screen.ID, req.Rows, req.Cols)

	if err := s.repo.Screen.CreateWithSeats(ctx, screen, seats); err != nil {
		s.log.Error("Failed to create screen", zap.Error(err), zap.String("name", name))
		return nil, fmt.Errorf("create screen: %w", err)
	}

	s.log.Info("Screen created",
		zap.String("screen_id", screen.ID.String()),
		zap.Int("capacity", screen.Capacity),
	)

	resp := response.ScreenToDetailResponse(screen, seats)
	return &resp, nil
}

func (s *screenService) UpdateScreen(ctx context.Context, id string, req *request.ScreenUpdateRequest) (*response.ScreenResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	screen, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name != screen.Name {
			existing, err := s.repo.Screen.FindByName(ctx, name)
			if err != nil {
				return nil, fmt.Errorf("check screen name: %w", err)
			}
			if existing != nil {
				return nil, fmt.Errorf("screen %q already exists", name)
			}
			screen.Name = name
		}
	}
	if req.ScreenType != nil {
		screen.ScreenType = *req.ScreenType
	}
	screen.UpdatedAt = time.Now()

	if err := s.repo.Screen.Update(ctx, screen); err != nil {
		return nil, fmt.Errorf("update screen: %w", err)
	}

	resp := response.ScreenToResponse(screen)
	return &resp, nil
}

func (s *screenService) DeleteScreen(ctx context.Context, id string) error {
	screen, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Screen.DeleteCascade(ctx, screen.ID); err != nil {
		s.log.Error("Failed to delete screen", zap.Error(err), zap.String("screen_id", id))
		return fmt.Errorf("delete screen: %w", err)
	}

	s.log.Info("Screen deleted", zap.String("screen_id", id), zap.String("name", screen.Name))
	return nil
}

func (s *screenService) SetSeatAvailability(ctx context.Context, seatID string, req *request.SeatAvailabilityRequest) (*response.SeatResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := parseID("seat", seatID)
	if err != nil {
		return nil, err
	}

	seat, err := s.repo.Seat.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get seat: %w", err)
	}
	if seat == nil {
		return nil, fmt.Errorf("seat %s not found", seatID)
	}

	if err := s.repo.Seat.UpdateAvailability(ctx, id, *req.IsAvailable); err != nil {
		return nil, fmt.Errorf("update seat: %w", err)
	}
	seat.IsAvailable = *req.IsAvailable

	s.log.Info("Seat availability changed",
		zap.String("seat_id", seatID),
		zap.Bool("is_available", seat.IsAvailable),
	)

	resp := response.SeatToResponse(seat)
	return &resp, nil
}
