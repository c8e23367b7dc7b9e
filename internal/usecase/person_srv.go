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

	"go.uber.org/zap"
)

// SearchQuery is a paginated listing with an optional name search.
type SearchQuery struct {
	request.PaginatedRequest
	Search *string
}

type DirectorService interface {
	GetDirectors(ctx context.Context, q *SearchQuery) (*response.PaginatedResponse[response.DirectorResponse], error)
	GetDirectorByID(ctx context.Context, id string, includeHidden bool) (*response.DirectorDetailResponse, error)
	CreateDirector(ctx context.Context, req *request.DirectorRequest) (*response.DirectorResponse, error)
	UpdateDirector(ctx context.Context, id string, req *request.DirectorRequest) (*response.DirectorResponse, error)
	DeleteDirector(ctx context.Context, id string) error
}

type CastMemberService interface {
	GetCastMembers(ctx context.Context, q *SearchQuery) (*response.PaginatedResponse[response.CastMemberResponse], error)
	GetCastMemberByID(ctx context.Context, id string) (*response.CastMemberDetailResponse, error)
	CreateCastMember(ctx context.Context, req *request.CastMemberRequest) (*response.CastMemberResponse, error)
	UpdateCastMember(ctx context.Context, id string, req *request.CastMemberRequest) (*response.CastMemberResponse, error)
	DeleteCastMember(ctx context.Context, id string) error
}

type directorService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewDirectorService(repo *repository.Repository, log *zap.Logger) DirectorService {
	return &directorService{
		repo: repo,
		log:  log.With(zap.String("service", "director")),
	}
}

func requiredName(name *string) (string, error) {
	if name == nil || strings.TrimSpace(*name) == "" {
		return "", fmt.Errorf("validation failed: name is required")
	}
	return strings.TrimSpace(*name), nil
}

func (s *directorService) GetDirectors(ctx context.Context, q *SearchQuery) (*response.PaginatedResponse[response.DirectorResponse], error) {
	directors, err := s.repo.Director.FindAll(ctx, q.Search, q.Limit(), q.Offset())
	if err != nil {
		s.log.Error("Failed to get directors", zap.Error(err))
		return nil, fmt.Errorf("get directors: %w", err)
	}

	total, err := s.repo.Director.CountAll(ctx, q.Search)
	if err != nil {
		return nil, fmt.Errorf("count directors: %w", err)
	}

	return response.NewPaginatedResponse(response.DirectorsToResponse(directors), q.Page, q.Limit(), total), nil
}

func (s *directorService) find(ctx context.Context, id string) (*entity.Director, error) {
	directorID, err := parseID("director", id)
	if err != nil {
		return nil, err
	}

	director, err := s.repo.Director.FindByID(ctx, directorID)
	if err != nil {
		return nil, fmt.Errorf("get director: %w", err)
	}
	if director == nil {
		return nil, fmt.Errorf("director %s not found", id)
	}
	return director, nil
}

func (s *directorService) GetDirectorByID(ctx context.Context, id string, includeHidden bool) (*response.DirectorDetailResponse, error) {
	director, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	movies, err := s.repo.Movie.FindByDirectorID(ctx, director.ID)
	if err != nil {
		return nil, fmt.Errorf("get director movies: %w", err)
	}

	if !includeHidden {
		visible := movies[:0]
		for _, m := range movies {
			if !m.Hidden {
				visible = append(visible, m)
			}
		}
		movies = visible
	}

	resp := response.DirectorToDetailResponse(director, movies)
	return &resp, nil
}

func (s *directorService) CreateDirector(ctx context.Context, req *request.DirectorRequest) (*response.DirectorResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	name, err := requiredName(req.Name)
	if err != nil {
		return nil, err
	}
	birthDate, err := parseOptionalDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	director := &entity.Director{
		Base:        newBase(),
		Name:        name,
		Bio:         req.Bio,
		BirthDate:   birthDate,
		Nationality: req.Nationality,
		PhotoURL:    req.PhotoURL,
	}

	if err := s.repo.Director.Create(ctx, director); err != nil {
		return nil, fmt.Errorf("create director: %w", err)
	}

	s.log.Info("Director created", zap.String("director_id", director.ID.String()))

	resp := response.DirectorToResponse(director)
	return &resp, nil
}

func (s *directorService) UpdateDirector(ctx context.Context, id string, req *request.DirectorRequest) (*response.DirectorResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	director, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if director.Name, err = requiredName(req.Name); err != nil {
			return nil, err
		}
	}
	if req.Bio != nil {
		director.Bio = req.Bio
	}
	if req.BirthDate != nil {
		if director.BirthDate, err = parseOptionalDate(req.BirthDate); err != nil {
			return nil, err
		}
	}
	if req.Nationality != nil {
		director.Nationality = req.Nationality
	}
	if req.PhotoURL != nil {
		director.PhotoURL = req.PhotoURL
	}
	director.UpdatedAt = time.Now()

	if err := s.repo.Director.Update(ctx, director); err != nil {
		return nil, fmt.Errorf("update director: %w", err)
	}

	resp := response.DirectorToResponse(director)
	return &resp, nil
}

func (s *directorService) DeleteDirector(ctx context.Context, id string) error {
	director, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.repo.Movie.CountByDirectorID(ctx, director.ID)
	if err != nil {
		return fmt.Errorf("count director movies: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("director cannot be deleted while %d movie(s) reference it", count)
	}

	if err := s.repo.Director.Delete(ctx, director.ID); err != nil {
		return fmt.Errorf("delete director: %w", err)
	}
	return nil
}

type castMemberService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCastMemberService(repo *repository.Repository, log *zap.Logger) CastMemberService {
	return &castMemberService{
		repo: repo,
		log:  log.With(zap.String("service", "cast_member")),
	}
}

func (s *castMemberService) GetCastMembers(ctx context.Context, q *SearchQuery) (*response.PaginatedResponse[response.CastMemberResponse], error) {
	members, err := s.repo.CastMember.FindAll(ctx, q.Search, q.Limit(), q.Offset())
	if err != nil {
		s.log.Error("Failed to get cast members", zap.Error(err))
		return nil, fmt.Errorf("get cast members: %w", err)
	}

	total, err := s.repo.CastMember.CountAll(ctx, q.Search)
	if err != nil {
		return nil, fmt.Errorf("count cast members: %w", err)
	}

	return response.NewPaginatedResponse(response.CastMembersToResponse(members), q.Page, q.Limit(), total), nil
}

func (s *castMemberService) find(ctx context.Context, id string) (*entity.CastMember, error) {
	memberID, err := parseID("cast member", id)
	if err != nil {
		return nil, err
	}

	member, err := s.repo.CastMember.FindByID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("get cast member: %w", err)
	}
	if member == nil {
		return nil, fmt.Errorf("cast member %s not found", id)
	}
	return member, nil
}

func (s *castMemberService) GetCastMemberByID(ctx context.Context, id string) (*response.CastMemberDetailResponse, error) {
	member, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	films, err := s.repo.CastMember.FindFilmography(ctx, member.ID)
	if err != nil {
		return nil, fmt.Errorf("get filmography: %w", err)
	}

	resp := response.CastMemberToDetailResponse(member, films)
	return &resp, nil
}

func (s *castMemberService) CreateCastMember(ctx context.Context, req *request.CastMemberRequest) (*response.CastMemberResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	name, err := requiredName(req.Name)
	if err != nil {
		return nil, err
	}
	birthDate, err := parseOptionalDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	member := &entity.CastMember{
		Base:      newBase(),
		Name:      name,
		Bio:       req.Bio,
		BirthDate: birthDate,
		PhotoURL:  req.PhotoURL,
	}

	if err := s.repo.CastMember.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("create cast member: %w", err)
	}

	s.log.Info("Cast member created", zap.String("cast_member_id", member.ID.String()))

	resp := response.CastMemberToResponse(member)
	return &resp, nil
}

func (s *castMemberService) UpdateCastMember(ctx context.Context, id string, req *request.CastMemberRequest) (*response.CastMemberResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	member, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if member.Name, err = requiredName(req.Name); err != nil {
			return nil, err
		}
	}
	if req.Bio != nil {
		member.Bio = req.Bio
	}
	if req.BirthDate != nil {
		if member.BirthDate, err = parseOptionalDate(req.BirthDate); err != nil {
			return nil, err
		}
	}
	if req.PhotoURL != nil {
		member.PhotoURL = req.PhotoURL
	}
	member.UpdatedAt = time.Now()

	if err := s.repo.CastMember.Update(ctx, member); err != nil {
		return nil, fmt.Errorf("update cast member: %w", err)
	}

	resp := response.CastMemberToResponse(member)
	return &resp, nil
}

func (s *castMemberService) DeleteCastMember(ctx context.Context, id string) error {
	member, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.CastMember.Delete(ctx, member.ID); err != nil {
		return fmt.Errorf("delete cast member: %w", err)
	}

	s.log.Info("Cast member deleted", zap.String("cast_member_id", member.ID.String()))
	return nil
}
