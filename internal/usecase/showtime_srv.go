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
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ShowtimeQuery holds the showtime listing filters taken from the query string.
type ShowtimeQuery struct {
	request.PaginatedRequest
	MovieID  *string
	ScreenID *string
	Date     *string
}

type ShowtimeService interface {
	GetShowtimes(ctx context.Context, q *ShowtimeQuery) (*response.PaginatedResponse[response.ShowtimeResponse], error)
	GetShowtimeByID(ctx context.Context, id string) (*response.ShowtimeResponse, error)
	GetShowtimeSeats(ctx context.Context, id string) (*response.ShowtimeSeatsResponse, error)
	CreateShowtime(ctx context.Context, req *request.ShowtimeRequest) (*response.ShowtimeResponse, error)
	UpdateShowtime(ctx context.Context, id string, req *request.ShowtimeUpdateRequest) (*response.ShowtimeResponse, error)
	DeleteShowtime(ctx context.Context, id string) error
}

type showtimeService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewShowtimeService(repo *repository.Repository, log *zap.Logger) ShowtimeService {
	return &showtimeService{
		repo: repo,
		log:  log.With(zap.String("service", "showtime")),
	}
}

// ClockMinutes converts "HH:MM" into minutes after midnight.
func ClockMinutes(clock string) (int, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, fmt.Errorf("invalid show time %q, expected HH:MM", clock)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Overlaps reports whether the half-open intervals [aStart, aStart+aLen) and
// [bStart, bStart+bLen) intersect. Equal starts always overlap.
func Overlaps(aStart, aLen, bStart, bLen int) bool {
	if aStart == bStart {
		return true
	}
	return aStart < bStart+bLen && bStart < aStart+aLen
}

const minutesPerDay = 24 * 60

// FindConflict returns the first slot that overlaps a showing starting at start for duration minutes.
// The slot with id exclude is skipped.
func FindConflict(slots []*entity.ShowtimeSlot, start, duration int, exclude uuid.UUID) (*entity.ShowtimeSlot, error) {
	for _, slot := range slots {
		if slot.ID == exclude {
			continue
		}
		slotStart, err := ClockMinutes(slot.ShowTime)
		if err != nil {
			return nil, err
		}
		if Overlaps(start, duration, slotStart+slot.OffsetMinutes, slot.DurationMinutes) {
			return slot, nil
		}
	}
	return nil, nil
}

func (s *showtimeService) GetShowtimes(ctx context.Context, q *ShowtimeQuery) (*response.PaginatedResponse[response.ShowtimeResponse], error) {
	var filter entity.ShowtimeFilter
	if q.MovieID != nil {
		id, err := parseID("movie", *q.MovieID)
		if err != nil {
			return nil, err
		}
		filter.MovieID = &id
	}
	if q.ScreenID != nil {
		id, err := parseID("screen", *q.ScreenID)
		if err != nil {
			return nil, err
		}
		filter.ScreenID = &id
	}
	if q.Date != nil {
		date, err := parseDate(*q.Date)
		if err != nil {
			return nil, err
		}
		filter.Date = &date
	}

	showtimes, err := s.repo.Showtime.FindAll(ctx, filter, q.Limit(), q.Offset())
	if err != nil {
		s.log.Error("Failed to get showtimes", zap.Error(err))
		return nil, fmt.Errorf("get showtimes: %w", err)
	}

	total, err := s.repo.Showtime.CountAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count showtimes: %w", err)
	}

	return response.NewPaginatedResponse(response.ShowtimesToResponse(showtimes), q.Page, q.Limit(), total), nil
}

func (s *showtimeService) find(ctx context.Context, id string) (*entity.Showtime, error) {
	showtimeID, err := parseID("showtime", id)
	if err != nil {
		return nil, err
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, showtimeID)
	if err != nil {
		return nil, fmt.Errorf("get showtime: %w", err)
	}
	if showtime == nil {
		return nil, fmt.Errorf("showtime %s not found", id)
	}
	return showtime, nil
}

func (s *showtimeService) GetShowtimeByID(ctx context.Context, id string) (*response.ShowtimeResponse, error) {
	showtime, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}

func (s *showtimeService) GetShowtimeSeats(ctx context.Context, id string) (*response.ShowtimeSeatsResponse, error) {
	showtime, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	seats, err := s.repo.Seat.FindWithStatus(ctx, showtime.ScreenID, showtime.ID)
	if err != nil {
		s.log.Error("Failed to get seats with status", zap.Error(err), zap.String("showtime_id", id))
		return nil, fmt.Errorf("get seats: %w", err)
	}

	resp := response.ShowtimeSeatsToResponse(showtime, seats)
	return &resp, nil
}

func (s *showtimeService) CreateShowtime(ctx context.Context, req *request.ShowtimeRequest) (*response.ShowtimeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create showtime validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	movieID, err := parseID("movie", req.MovieID)
	if err != nil {
		return nil, err
	}
	screenID, err := parseID("screen", req.ScreenID)
	if err != nil {
		return nil, err
	}
	showDate, err := parseDate(req.ShowDate)
	if err != nil {
		return nil, err
	}

	format := req.Format
	if format == "" {
		format = "2D"
	}

	showtime := &entity.Showtime{
		Base:     newBase(),
		MovieID:  movieID,
		ScreenID: screenID,
		ShowDate: showDate,
		ShowTime: req.ShowTime,
		Format:   format,
		Price:    req.Price,
	}

	if err := s.checkSchedule(ctx, showtime); err != nil {
		return nil, err
	}

	if err := s.repo.Showtime.Create(ctx, showtime); err != nil {
		if database.IsUniqueViolation(err, repository.ShowtimeSlotConstraint) {
			return nil, fmt.Errorf("showtime conflict: screen already has a showing at %s", showtime.ShowTime)
		}
		return nil, fmt.Errorf("create showtime: %w", err)
	}

	s.log.Info("Showtime created",
		zap.String("showtime_id", showtime.ID.String()),
		zap.String("screen_id", screenID.String()),
		zap.String("show_date", req.ShowDate),
		zap.String("show_time", req.ShowTime),
	)

	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}

func (s *showtimeService) UpdateShowtime(ctx context.Context, id string, req *request.ShowtimeUpdateRequest) (*response.ShowtimeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	showtime, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.MovieID != nil {
		if showtime.MovieID, err = parseID("movie", *req.MovieID); err != nil {
			return nil, err
		}
	}
	if req.ScreenID != nil {
		if showtime.ScreenID, err = parseID("screen", *req.ScreenID); err != nil {
			return nil, err
		}
	}
	if req.ShowDate != nil {
		if showtime.ShowDate, err = parseDate(*req.ShowDate); err != nil {
			return nil, err
		}
	}
	if req.ShowTime != nil {
		showtime.ShowTime = *req.ShowTime
	}
	if req.Format != nil {
		showtime.Format = *req.Format
	}
	if req.Price != nil {
		showtime.Price = *req.Price
	}
	showtime.UpdatedAt = time.Now()

	if err := s.checkSchedule(ctx, showtime); err != nil {
		return nil, err
	}

	if err := s.repo.Showtime.Update(ctx, showtime); err != nil {
		if database.IsUniqueViolation(err, repository.ShowtimeSlotConstraint) {
			return nil, fmt.Errorf("showtime conflict: screen already has a showing at %s", showtime.ShowTime)
		}
		return nil, fmt.Errorf("update showtime: %w", err)
	}

	s.log.Info("Showtime updated", zap.String("showtime_id", id))

	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}

func (s *showtimeService) DeleteShowtime(ctx context.Context, id string) error {
	showtime, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Showtime.DeleteCascade(ctx, showtime.ID); err != nil {
		s.log.Error("Failed to delete showtime", zap.Error(err), zap.String("showtime_id", id))
		return fmt.Errorf("delete showtime: %w", err)
	}

	s.log.Info("Showtime deleted", zap.String("showtime_id", id))
	return nil
}

// checkSchedule verifies the movie and screen exist and the showing fits on the screen that day.
func (s *showtimeService) checkSchedule(ctx context.Context, showtime *entity.Showtime) error {
	movie, err := s.repo.Movie.FindByID(ctx, showtime.MovieID)
	if err != nil {
		return fmt.Errorf("get movie: %w", err)
	}
	if movie == nil {
		return fmt.Errorf("movie %s not found", showtime.MovieID)
	}

	screen, err := s.repo.Screen.FindByID(ctx, showtime.ScreenID)
	if err != nil {
		return fmt.Errorf("get screen: %w", err)
	}
	if screen == nil {
		return fmt.Errorf("screen %s not found", showtime.ScreenID)
	}

	start, err := ClockMinutes(showtime.ShowTime)
	if err != nil {
		return err
	}

	slots, err := s.scheduleAround(ctx, showtime.ScreenID, showtime.ShowDate)
	if err != nil {
		return err
	}

	conflict, err := FindConflict(slots, start, movie.DurationMinutes, showtime.ID)
	if err != nil {
		return err
	}
	if conflict != nil {
		s.log.Warn("Showtime conflict",
			zap.String("screen_id", showtime.ScreenID.String()),
			zap.String("show_time", showtime.ShowTime),
			zap.String("conflicting_id", conflict.ID.String()),
		)
		return fmt.Errorf("showtime conflict: overlaps showing %s at %s on %s",
			conflict.ID, conflict.ShowTime, screen.Name)
	}
	return nil
}

// scheduleAround loads the screen's slots for date and both neighbouring days,
// so showings crossing midnight are compared on one clock.
func (s *showtimeService) scheduleAround(ctx context.Context, screenID uuid.UUID, date time.Time) ([]*entity.ShowtimeSlot, error) {
	var all []*entity.ShowtimeSlot
	for _, day := range []int{-1, 0, 1} {
		slots, err := s.repo.Showtime.FindSlots(ctx, screenID, date.AddDate(0, 0, day))
		if err != nil {
			return nil, fmt.Errorf("get screen schedule: %w", err)
		}
		for _, slot := range slots {
			slot.OffsetMinutes = day * minutesPerDay
		}
		all = append(all, slots...)
	}
	return all, nil
}
