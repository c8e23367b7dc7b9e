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

type ReviewService interface {
	// Public endpoints
	GetMovieReviews(ctx context.Context, movieID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	GetMovieReviewStats(ctx context.Context, movieID string) (*response.MovieReviewStats, error)
	GetReplies(ctx context.Context, reviewID string) ([]response.ReplyResponse, error)

	// Authenticated
	CreateReview(ctx context.Context, userID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	GetUserReviews(ctx context.Context, userID uuid.UUID) ([]response.ReviewResponse, error)
	UpdateReview(ctx context.Context, userID uuid.UUID, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, userID uuid.UUID, reviewID string) error
	ToggleLike(ctx context.Context, userID uuid.UUID, reviewID string) (*response.LikeResponse, error)
	CreateReply(ctx context.Context, userID uuid.UUID, reviewID string, req *request.ReplyRequest) (*response.ReplyResponse, error)
	UpdateReply(ctx context.Context, userID uuid.UUID, replyID string, req *request.ReplyRequest) (*response.ReplyResponse, error)
	DeleteReply(ctx context.Context, userID uuid.UUID, replyID string) error
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) GetMovieReviews(ctx context.Context, movieID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	movieUUID, err := parseID("movie", movieID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.FindByMovieID(ctx, movieUUID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get movie reviews",
			zap.Error(err),
			zap.String("movie_id", movieID),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get movie reviews: %w", err)
	}

	total, err := s.repo.Review.CountByMovieID(ctx, movieUUID)
	if err != nil {
		s.log.Error("Failed to count movie reviews", zap.Error(err))
		return nil, fmt.Errorf("count movie reviews: %w", err)
	}

	return response.NewPaginatedResponse(response.ReviewsWithAuthorToResponse(reviews), req.Page, req.Limit(), total), nil
}

func (s *reviewService) GetMovieReviewStats(ctx context.Context, movieID string) (*response.MovieReviewStats, error) {
	movieUUID, err := parseID("movie", movieID)
	if err != nil {
		return nil, err
	}

	stats, err := s.repo.Review.GetMovieReviewStats(ctx, movieUUID)
	if err != nil {
		s.log.Error("Failed to get movie review stats", zap.Error(err), zap.String("movie_id", movieID))
		return nil, fmt.Errorf("get movie review stats: %w", err)
	}

	resp := response.ReviewStatsToResponse(stats)
	return &resp, nil
}

func (s *reviewService) CreateReview(ctx context.Context, userID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	movieID, err := parseID("movie", req.MovieID)
	if err != nil {
		return nil, err
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}
	if movie == nil || movie.Hidden {
		return nil, fmt.Errorf("movie %s not found", req.MovieID)
	}

	existing, err := s.repo.Review.FindByUserAndMovie(ctx, userID, movieID)
	if err != nil {
		s.log.Error("Failed to check existing review", zap.Error(err))
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("user already reviewed this movie")
	}

	review := &entity.Review{
		Base:    newBase(),
		UserID:  userID,
		MovieID: movieID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		if database.IsUniqueViolation(err, repository.ReviewUserMovieConstraint) {
			return nil, fmt.Errorf("user already reviewed this movie")
		}
		s.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("movie_id", req.MovieID),
		)
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.updateMovieRating(ctx, movieID)

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("movie_id", req.MovieID),
		zap.Int("rating", req.Rating),
	)

	return s.buildReviewResponse(ctx, review), nil
}

func (s *reviewService) GetUserReviews(ctx context.Context, userID uuid.UUID) ([]response.ReviewResponse, error) {
	reviews, err := s.repo.Review.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to get user reviews", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("get user reviews: %w", err)
	}
	return response.ReviewsWithAuthorToResponse(reviews), nil
}

func (s *reviewService) findOwnReview(ctx context.Context, userID uuid.UUID, reviewID string) (*entity.Review, error) {
	review, err := s.findReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != userID {
		return nil, fmt.Errorf("forbidden: review belongs to another user")
	}
	return review, nil
}

func (s *reviewService) findReview(ctx context.Context, reviewID string) (*entity.Review, error) {
	id, err := parseID("review", reviewID)
	if err != nil {
		return nil, err
	}

	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}
	if review == nil {
		return nil, fmt.Errorf("review %s not found", reviewID)
	}
	return review, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, userID uuid.UUID, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	review, err := s.findOwnReview(ctx, userID, reviewID)
	if err != nil {
		return nil, err
	}

	updated := false
	ratingChanged := false
	if req.Rating != nil && *req.Rating != review.Rating {
		review.Rating = *req.Rating
		updated = true
		ratingChanged = true
	}
	if req.Comment != nil {
		review.Comment = req.Comment
		updated = true
	}

	if !updated {
		return s.buildReviewResponse(ctx, review), nil
	}
	review.UpdatedAt = time.Now()

	if err := s.repo.Review.Update(ctx, review); err != nil {
		s.log.Error("Failed to update review", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("update review: %w", err)
	}

	if ratingChanged {
		s.updateMovieRating(ctx, review.MovieID)
	}

	s.log.Info("Review updated",
		zap.String("review_id", reviewID),
		zap.String("user_id", userID.String()),
	)

	return s.buildReviewResponse(ctx, review), nil
}

func (s *reviewService) DeleteReview(ctx context.Context, userID uuid.UUID, reviewID string) error {
	review, err := s.findOwnReview(ctx, userID, reviewID)
	if err != nil {
		return err
	}

	if err := s.repo.Review.DeleteCascade(ctx, review.ID); err != nil {
		s.log.Error("Failed to delete review", zap.Error(err), zap.String("review_id", reviewID))
		return fmt.Errorf("delete review: %w", err)
	}

	s.updateMovieRating(ctx, review.MovieID)

	s.log.Info("Review deleted",
		zap.String("review_id", reviewID),
		zap.String("user_id", userID.String()),
		zap.String("movie_id", review.MovieID.String()),
	)
	return nil
}

func (s *reviewService) ToggleLike(ctx context.Context, userID uuid.UUID, reviewID string) (*response.LikeResponse, error) {
	review, err := s.findReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	liked, count, err := s.repo.ReviewLike.Toggle(ctx, review.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("toggle like: %w", err)
	}

	return &response.LikeResponse{
		ReviewID:  review.ID.String(),
		Liked:     liked,
		LikeCount: count,
	}, nil
}

func (s *reviewService) GetReplies(ctx context.Context, reviewID string) ([]response.ReplyResponse, error) {
	review, err := s.findReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	replies, err := s.repo.Reply.FindByReviewID(ctx, review.ID)
	if err != nil {
		return nil, fmt.Errorf("get replies: %w", err)
	}
	return response.RepliesToResponse(replies), nil
}

func (s *reviewService) CreateReply(ctx context.Context, userID uuid.UUID, reviewID string, req *request.ReplyRequest) (*response.ReplyResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	review, err := s.findReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	reply := &entity.Reply{
		Base:     newBase(),
		ReviewID: review.ID,
		UserID:   userID,
		Comment:  req.Comment,
	}

	if err := s.repo.Reply.Create(ctx, reply); err != nil {
		return nil, fmt.Errorf("create reply: %w", err)
	}

	s.log.Info("Reply created",
		zap.String("reply_id", reply.ID.String()),
		zap.String("review_id", reviewID),
	)

	resp := response.ReplyToResponse(reply, s.username(ctx, userID))
	return &resp, nil
}

func (s *reviewService) findOwnReply(ctx context.Context, userID uuid.UUID, replyID string) (*entity.Reply, error) {
	id, err := parseID("reply", replyID)
	if err != nil {
		return nil, err
	}

	reply, err := s.repo.Reply.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get reply: %w", err)
	}
	if reply == nil {
		return nil, fmt.Errorf("reply %s not found", replyID)
	}
	if reply.UserID != userID {
		return nil, fmt.Errorf("forbidden: reply belongs to another user")
	}
	return reply, nil
}

func (s *reviewService) UpdateReply(ctx context.Context, userID uuid.UUID, replyID string, req *request.ReplyRequest) (*response.ReplyResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	reply, err := s.findOwnReply(ctx, userID, replyID)
	if err != nil {
		return nil, err
	}

	reply.Comment = req.Comment
	reply.UpdatedAt = time.Now()
	if err := s.repo.Reply.Update(ctx, reply); err != nil {
		return nil, fmt.Errorf("update reply: %w", err)
	}

	resp := response.ReplyToResponse(reply, s.username(ctx, userID))
	return &resp, nil
}

func (s *reviewService) DeleteReply(ctx context.Context, userID uuid.UUID, replyID string) error {
	reply, err := s.findOwnReply(ctx, userID, replyID)
	if err != nil {
		return err
	}

	if err := s.repo.Reply.DeleteCascade(ctx, reply.ID); err != nil {
		return fmt.Errorf("delete reply: %w", err)
	}

	s.log.Info("Reply deleted", zap.String("reply_id", replyID))
	return nil
}

// ==================== HELPER METHODS ====================

func (s *reviewService) updateMovieRating(ctx context.Context, movieID uuid.UUID) {
	if err := refreshMovieRating(ctx, s.repo, movieID); err != nil {
		s.log.Warn("Failed to update movie rating",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
	}
}

func (s *reviewService) username(ctx context.Context, userID uuid.UUID) string {
	user, _ := s.repo.User.FindByID(ctx, userID)
	if user == nil {
		return ""
	}
	return user.Username
}

func (s *reviewService) buildReviewResponse(ctx context.Context, review *entity.Review) *response.ReviewResponse {
	resp := response.ReviewToResponse(review, s.username(ctx, review.UserID))
	return &resp
}
