package usecase

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

// SeedResult reports what a seed run inserted.
type SeedResult struct {
	Skipped     bool `json:"skipped"`
	Directors   int  `json:"directors"`
	CastMembers int  `json:"cast_members"`
	Movies      int  `json:"movies"`
	Screens     int  `json:"screens"`
	Seats       int  `json:"seats"`
	Showtimes   int  `json:"showtimes"`
	Promotions  int  `json:"promotions"`
}

type SeedService interface {
	Seed(ctx context.Context, secret string) (*SeedResult, error)
}

type seedService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewSeedService(repo *repository.Repository, config *utils.Config, log *zap.Logger) SeedService {
	return &seedService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "seed")),
	}
}

type seedMovie struct {
	title    string
	year     int
	genres   []string
	duration int
	status   entity.MovieStatus
	cast     []string
}

var seedMovies = []seedMovie{
	{"The Last Projectionist", 2024, []string{"Drama"}, 118, entity.MovieStatusNowShowing, []string{"Mara Quinn", "Theo Vance"}},
	{"Orbit of Glass", 2025, []string{"Sci-Fi", "Thriller"}, 132, entity.MovieStatusNowShowing, []string{"Theo Vance", "Iris Kato"}},
	{"Paper Lanterns", 2025, []string{"Animation", "Family"}, 95, entity.MovieStatusComingSoon, []string{"Iris Kato"}},
}

func (s *seedService) Seed(ctx context.Context, secret string) (*SeedResult, error) {
	expected := s.config.Seed.Secret
	if expected == "" {
		return nil, fmt.Errorf("forbidden: seeding is disabled")
	}
	if subtle.ConstantTimeCompare([]byte(secret), []byte(expected)) != 1 {
		s.log.Warn("Seed attempted with wrong secret")
		return nil, fmt.Errorf("unauthorized: invalid seed secret")
	}

	existing, err := s.repo.Movie.CountAll(ctx, entity.MovieFilter{IncludeHidden: true})
	if err != nil {
		return nil, fmt.Errorf("count movies: %w", err)
	}
	if existing > 0 {
		s.log.Info("Seed skipped, catalog not empty", zap.Int64("movies", existing))
		return &SeedResult{Skipped: true}, nil
	}

	result := &SeedResult{}

	// Director
	nationality := "Canadian"
	director := &entity.Director{Base: newBase(), Name: "Lena Okafor", Nationality: &nationality}
	if err := s.repo.Director.Create(ctx, director); err != nil {
		return nil, fmt.Errorf("seed director: %w", err)
	}
	result.Directors++

	// Cast
	castByName := make(map[string]*entity.CastMember)
	for _, name := range []string{"Mara Quinn", "Theo Vance", "Iris Kato"} {
		member := &entity.CastMember{Base: newBase(), Name: name}
		if err := s.repo.CastMember.Create(ctx, member); err != nil {
			return nil, fmt.Errorf("seed cast member: %w", err)
		}
		castByName[name] = member
		result.CastMembers++
	}

	// Movies with cast links
	var movies []*entity.Movie
	for _, sm := range seedMovies {
		movie := &entity.Movie{
			Base:            newBase(),
			Title:           sm.title,
			Year:            sm.year,
			Genres:          sm.genres,
			DurationMinutes: sm.duration,
			Status:          sm.status,
			DirectorID:      &director.ID,
		}
		if err := s.repo.Movie.Create(ctx, movie); err != nil {
			return nil, fmt.Errorf("seed movie: %w", err)
		}

		links := make([]*entity.MovieCast, 0, len(sm.cast))
		for i, name := range sm.cast {
			links = append(links, &entity.MovieCast{
				MovieID:      movie.ID,
				CastMemberID: castByName[name].ID,
				BillingOrder: i + 1,
			})
		}
		if err := s.repo.Movie.ReplaceCast(ctx, movie.ID, links); err != nil {
			return nil, fmt.Errorf("seed cast: %w", err)
		}

		movies = append(movies, movie)
		result.Movies++
	}

	// Screens with generated seats
	var screens []*entity.Screen
	for _, spec := range []struct {
		name, kind string
		rows, cols int
	}{
		{"Screen 1", "standard", 8, 12},
		{"Screen 2", "imax", 10, 16},
	} {
		screen := &entity.Screen{
			Base:       newBase(),
			Name:       spec.name,
			ScreenType: spec.kind,
			Capacity:   spec.rows * spec.cols,
			Rows:       spec.rows,
			Cols:       spec.cols,
		}
		seats := BuildSeats(screen.ID, spec.rows, spec.cols)
		if err := s.repo.Screen.CreateWithSeats(ctx, screen, seats); err != nil {
			return nil, fmt.Errorf("seed screen: %w", err)
		}
		screens = append(screens, screen)
		result.Screens++
		result.Seats += len(seats)
	}

	// Tomorrow's showtimes for the now-showing movies, spaced so they never overlap
	tomorrow := time.Now().AddDate(0, 0, 1)
	showDate := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, time.UTC)
	for i, movie := range movies {
		if movie.Status != entity.MovieStatusNowShowing {
			continue
		}
		screen := screens[i%len(screens)]
		for _, clock := range []string{"13:00", "16:30", "20:00"} {
			showtime := &entity.Showtime{
				Base:     newBase(),
				MovieID:  movie.ID,
				ScreenID: screen.ID,
				ShowDate: showDate,
				ShowTime: clock,
				Format:   "2D",
				Price:    50000,
			}
			if screen.ScreenType == "imax" {
				showtime.Format = "IMAX"
				showtime.Price = 75000
			}
			if err := s.repo.Showtime.Create(ctx, showtime); err != nil {
				return nil, fmt.Errorf("seed showtime: %w", err)
			}
			result.Showtimes++
		}
	}

	// Promotions
	now := time.Now()
	for _, p := range []struct {
		code  string
		title string
		kind  entity.PromotionType
		value float64
	}{
		{"WELCOME10", "10% off your first booking", entity.PromotionPercentage, 10},
		{"BOGO", "Buy one get one", entity.PromotionBuyOneGetOne, 0},
	} {
		promo := &entity.Promotion{
			Base:       newBase(),
			Code:       p.code,
			Title:      p.title,
			PromoType:  p.kind,
			Value:      p.value,
			StartDate:  now.Add(-time.Hour),
			ExpiryDate: now.AddDate(0, 3, 0),
			IsActive:   true,
		}
		if err := s.repo.Promotion.Create(ctx, promo); err != nil {
			return nil, fmt.Errorf("seed promotion: %w", err)
		}
		result.Promotions++
	}

	s.log.Info("Seed completed",
		zap.Int("movies", result.Movies),
		zap.Int("screens", result.Screens),
		zap.Int("showtimes", result.Showtimes),
	)
	return result, nil
}
