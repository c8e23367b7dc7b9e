package response

import (
	"time"

	"github.com/google/uuid"

	"cinema-ticketing/internal/data/entity"
)

type ReviewResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Username   string    `json:"username,omitempty"`
	MovieID    string    `json:"movie_id"`
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment,omitempty"`
	LikeCount  int       `json:"like_count"`
	ReplyCount int       `json:"reply_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type MovieReviewStats struct {
	AverageRating float64       `json:"average_rating"`
	ReviewCount   int64         `json:"review_count"`
	Distribution  map[int]int64 `json:"distribution"`
}

type LikeResponse struct {
	ReviewID  string `json:"review_id"`
	Liked     bool   `json:"liked"`
	LikeCount int64  `json:"like_count"`
}

type ReplyResponse struct {
	ID        string    `json:"id"`
	ReviewID  string    `json:"review_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ReportResponse struct {
	ID          string              `json:"id"`
	ContentType entity.ContentType  `json:"content_type"`
	ContentID   *string             `json:"content_id,omitempty"`
	ReporterID  string              `json:"reporter_id"`
	Reason      string              `json:"reason"`
	Status      entity.ReportStatus `json:"status"`
	ResolvedBy  *string             `json:"resolved_by,omitempty"`
	ResolvedAt  *time.Time          `json:"resolved_at,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

type StatsResponse struct {
	TotalMovies    int64   `json:"total_movies"`
	TotalUsers     int64   `json:"total_users"`
	TotalScreens   int64   `json:"total_screens"`
	TotalShowtimes int64   `json:"total_showtimes"`
	ActiveTickets  int64   `json:"active_tickets"`
	SoldTickets    int64   `json:"sold_tickets"`
	Revenue        float64 `json:"revenue"`
	PendingReports int64   `json:"pending_reports"`
}

// Helper converters
func ReviewToResponse(review *entity.Review, username string) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID.String(),
		UserID:    review.UserID.String(),
		Username:  username,
		MovieID:   review.MovieID.String(),
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}
}

func ReviewsWithAuthorToResponse(list []*entity.ReviewWithAuthor) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(list))
	for _, r := range list {
		resp := ReviewToResponse(&r.Review, r.Username)
		resp.LikeCount = r.LikeCount
		resp.ReplyCount = r.ReplyCount
		out = append(out, resp)
	}
	return out
}

func ReviewStatsToResponse(stats *entity.ReviewStats) MovieReviewStats {
	resp := MovieReviewStats{Distribution: map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
	if stats == nil {
		return resp
	}
	resp.AverageRating = stats.AverageRating
	resp.ReviewCount = stats.TotalReviews
	for k, v := range stats.Distribution {
		resp.Distribution[k] = v
	}
	return resp
}

func ReplyToResponse(r *entity.Reply, username string) ReplyResponse {
	return ReplyResponse{
		ID:        r.ID.String(),
		ReviewID:  r.ReviewID.String(),
		UserID:    r.UserID.String(),
		Username:  username,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func RepliesToResponse(list []*entity.ReplyWithAuthor) []ReplyResponse {
	out := make([]ReplyResponse, 0, len(list))
	for _, r := range list {
		out = append(out, ReplyToResponse(&r.Reply, r.Username))
	}
	return out
}

func ReportToResponse(r *entity.ReportedContent) ReportResponse {
	resp := ReportResponse{
		ID:          r.ID.String(),
		ContentType: r.ContentType,
		ReporterID:  r.ReporterID.String(),
		Reason:      r.Reason,
		Status:      r.Status,
		ResolvedAt:  r.ResolvedAt,
		CreatedAt:   r.CreatedAt,
	}
	if id := r.ContentID(); id != uuid.Nil {
		s := id.String()
		resp.ContentID = &s
	}
	if r.ResolvedBy != nil {
		s := r.ResolvedBy.String()
		resp.ResolvedBy = &s
	}
	return resp
}

func ReportsToResponse(list []*entity.ReportedContent) []ReportResponse {
	out := make([]ReportResponse, 0, len(list))
	for _, r := range list {
		out = append(out, ReportToResponse(r))
	}
	return out
}

func StatsToResponse(s *entity.Stats) StatsResponse {
	return StatsResponse{
		TotalMovies:    s.TotalMovies,
		TotalUsers:     s.TotalUsers,
		TotalScreens:   s.TotalScreens,
		TotalShowtimes: s.TotalShowtimes,
		ActiveTickets:  s.ActiveTickets,
		SoldTickets:    s.SoldTickets,
		Revenue:        s.Revenue,
		PendingReports: s.PendingReports,
	}
}
