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

// MovieQuery holds the catalog listing filters taken from the query string.
type MovieQuery struct {
	request.PaginatedRequest
	Genre      *string
	Status     *string
	Year       *int
	DirectorID *string
	Search     *string
}

type MovieService interface {
	GetMovies(ctx context.Context, q *MovieQuery, includeHidden bool) (*response.PaginatedResponse[response.MovieResponse], error)
	GetMovieByID(ctx context.Context, movieID string, includeHidden bool) (*response.MovieDetailResponse, error)
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, movieID string, req *request.MovieUpdateRequest) (*response.MovieResponse, error)
	SetVisibility(ctx context.Context, movieID string, req *request.VisibilityRequest) (*response.MovieResponse, error)
	ReplaceCast(ctx context.Context, movieID string, req *request.MovieCastRequest) (*response.MovieDetailResponse, error)
	DeleteMovie(ctx context.Context, movieID string) error
}

type movieService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMovieService(
	repo *repository.Repository,
	log *zap.Logger,
) MovieService {
	return &movieService{
		repo: repo,
		log:  log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetMovies(ctx context.Context, q *MovieQuery, includeHidden bool) (*response.PaginatedResponse[response.MovieResponse], error) {
	filter := entity.MovieFilter{
		Genre:         q.Genre,
		Status:        q.Status,
		Year:          q.Year,
		Search:        q.Search,
		IncludeHidden: includeHidden,
	}

	if q.Status != nil {
		status := entity.MovieStatus(*q.Status)
		if status != entity.MovieStatusNowShowing && status != entity.MovieStatusComingSoon {
			return nil, fmt.Errorf("invalid status %q, expected now_showing or coming_soon", *q.Status)
		}
	}
	if q.DirectorID != nil {
		id, err := parseID("director", *q.DirectorID)
		if err != nil {
			return nil, err
		}
		filter.DirectorID = &id
	}

	movies, err := s.repo.Movie.FindAll(ctx, filter, q.Limit(), q.Offset())
	if err != nil {
		s.log.Error("Failed to get movies",
			zap.Error(err),
			zap.Int("page", q.Page),
			zap.Int("per_page", q.PerPage),
		)
		return nil, fmt.Errorf("get movies: %w", err)
	}

	total, err := s.repo.Movie.CountAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count movies", zap.Error(err))
		return nil, fmt.Errorf("count movies: %w", err)
	}

	return response.NewPaginatedResponse(response.MoviesToResponse(movies), q.Page, q.Limit(), total), nil
}

func (s *movieService) findMovie(ctx context.Context, movieID string, includeHidden bool) (*entity.Movie, error) {
	id, err := parseID("movie", movieID)
	if err != nil {
		return nil, err
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find movie", zap.Error(err), zap.String("movie_id", movieID))
		return nil, fmt.Errorf("get movie: %w", err)
	}
	if movie == nil || (movie.Hidden && !includeHidden) {
		return nil, fmt.Errorf("movie %s not found", movieID)
	}
	return movie, nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID string, includeHidden bool) (*response.MovieDetailResponse, error) {
	movie, err := s.findMovie(ctx, movieID, includeHidden)
	if err != nil {
		return nil, err
	}
	return s.buildDetail(ctx, movie)
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create movie validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	directorID, err := s.resolveDirector(ctx, req.DirectorID)
	if err != nil {
		return nil, err
	}

	movie := &entity.Movie{
		Base:            newBase(),
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		Year:            req.Year,
		Genres:          normalizeGenres(req.Genres),
		DurationMinutes: req.DurationMinutes,
		Status:          entity.MovieStatus(req.Status),
		Hidden:          req.Hidden,
		PosterURL:       req.PosterURL,
		TrailerURL:      req.TrailerURL,
		DirectorID:      directorID,
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		s.log.Error("Failed to create movie", zap.Error(err), zap.String("title", movie.Title))
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title),
	)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, movieID string, req *request.MovieUpdateRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update movie validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	movie, err := s.findMovie(ctx, movieID, true)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		movie.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		movie.Description = req.Description
	}
	if req.Year != nil {
		movie.Year = *req.Year
	}
	if req.Genres != nil {
		movie.Genres = normalizeGenres(req.Genres)
	}
	if req.DurationMinutes != nil {
		movie.DurationMinutes = *req.DurationMinutes
	}
	if req.Status != nil {
		movie.Status = entity.MovieStatus(*req.Status)
	}
	if req.PosterURL != nil {
		movie.PosterURL = req.PosterURL
	}
	if req.TrailerURL != nil {
		movie.TrailerURL = req.TrailerURL
	}
	if req.DirectorID != nil {
		directorID, err := s.resolveDirector(ctx, req.DirectorID)
		if err != nil {
			return nil, err
		}
		movie.DirectorID = directorID
	}
	movie.UpdatedAt = time.Now()

	if err := s.repo.Movie.Update(ctx, movie); err != nil {
		s.log.Error("Failed to update movie", zap.Error(err), zap.String("movie_id", movieID))
		return nil, fmt.Errorf("update movie: %w", err)
	}

	s.log.Info("Movie updated", zap.String("movie_id", movieID))

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) SetVisibility(ctx context.Context, movieID string, req *request.VisibilityRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	movie, err := s.findMovie(ctx, movieID, true)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Movie.SetHidden(ctx, movie.ID, *req.Hidden); err != nil {
		return nil, fmt.Errorf("set movie visibility: %w", err)
	}
	movie.Hidden = *req.Hidden

	s.log.Info("Movie visibility changed",
		zap.String("movie_id", movieID),
		zap.Bool("hidden", movie.Hidden),
	)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) ReplaceCast(ctx context.Context, movieID string, req *request.MovieCastRequest) (*response.MovieDetailResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	movie, err := s.findMovie(ctx, movieID, true)
	if err != nil {
		return nil, err
	}

	links := make([]*entity.MovieCast, 0, len(req.Cast))
	ids := make([]uuid.UUID, 0, len(req.Cast))
	seen := make(map[uuid.UUID]bool, len(req.Cast))
	for i, entry := range req.Cast {
		id, err := parseID("cast member", entry.CastMemberID)
		if err != nil {
			return nil, err
		}
		if seen[id] {
			return nil, fmt.Errorf("invalid cast: cast member %s listed twice", id)
		}
		seen[id] = true
		ids = append(ids, id)
		links = append(links, &entity.MovieCast{
			MovieID:      movie.ID,
			CastMemberID: id,
			Character:    entry.Character,
			BillingOrder: i + 1,
		})
	}

	if len(ids) > 0 {
		members, err := s.repo.CastMember.FindByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("find cast members: %w", err)
		}
		if len(members) != len(ids) {
			return nil, fmt.Errorf("cast member not found")
		}
	}

	if err := s.repo.Movie.ReplaceCast(ctx, movie.ID, links); err != nil {
		s.log.Error("Failed to replace cast", zap.Error(err), zap.String("movie_id", movieID))
		return nil, fmt.Errorf("replace cast: %w", err)
	}

	s.log.Info("Movie cast replaced",
		zap.String("movie_id", movieID),
		zap.Int("cast_size", len(links)),
	)

	return s.buildDetail(ctx, movie)
}

func (s *movieService) DeleteMovie(ctx context.Context, movieID string) error {
	movie, err := s.findMovie(ctx, movieID, true)
	if err != nil {
		return err
	}

	if err := s.repo.Movie.DeleteCascade(ctx, movie.ID); err != nil {
		s.log.Error("Failed to delete movie", zap.Error(err), zap.String("movie_id", movieID))
		return fmt.Errorf("delete movie: %w", err)
	}

	s.log.Info("Movie deleted", zap.String("movie_id", movieID), zap.String("title", movie.Title))
	return nil
}

// ==================== HELPER METHODS ====================

func (s *movieService) resolveDirector(ctx context.Context, raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	id, err := parseID("director", *raw)
	if err != nil {
		return nil, err
	}

	director, err := s.repo.Director.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find director: %w", err)
	}
	if director == nil {
		return nil, fmt.Errorf("director %s not found", *raw)
	}
	return &id, nil
}

func (s *movieService) buildDetail(ctx context.Context, movie *entity.Movie) (*response.MovieDetailResponse, error) {
	var director *entity.Director
	if movie.DirectorID != nil {
		d, err := s.repo.Director.FindByID(ctx, *movie.DirectorID)
		if err != nil {
			s.log.Warn("Failed to load director", zap.Error(err), zap.String("movie_id", movie.ID.String()))
		}
		director = d
	}

	cast, err := s.repo.Movie.FindCast(ctx, movie.ID)
	if err != nil {
		return nil, fmt.Errorf("get cast: %w", err)
	}

	stats, err := s.repo.Review.GetMovieReviewStats(ctx, movie.ID)
	if err != nil {
		return nil, fmt.Errorf("get review stats: %w", err)
	}

	resp := response.MovieToDetailResponse(movie, director, cast, stats)
	return &resp, nil
}

func normalizeGenres(genres []string) []string {
	out := make([]string, 0, len(genres))
	seen := make(map[string]bool, len(genres))
	for _, g := range genres {
		g = strings.TrimSpace(g)
		key := strings.ToLower(g)
		if g == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, g)
	}
	return out
}
