package wire

import (
	"net/http"

	"cinema-ticketing/internal/adaptor"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	moderationHandler *adaptor.ModerationHandler,
	repo *repository.Repository,
	cached func(http.Handler) http.Handler,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(cached)

		r.Get("/api/movies/{id}/reviews", reviewHandler.GetMovieReviews)
		r.Get("/api/movies/{id}/review-stats", reviewHandler.GetMovieReviewStats)
		r.Get("/api/reviews/{id}/replies", reviewHandler.GetReplies)
	})

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		r.Post("/api/reviews", reviewHandler.CreateReview)
		r.Put("/api/reviews/{id}", reviewHandler.UpdateReview)
		r.Delete("/api/reviews/{id}", reviewHandler.DeleteReview)
		r.Post("/api/reviews/{id}/like", reviewHandler.ToggleLike)
		r.Get("/api/user/reviews", reviewHandler.GetUserReviews)

		r.Post("/api/reviews/{id}/replies", reviewHandler.CreateReply)
		r.Put("/api/replies/{id}", reviewHandler.UpdateReply)
		r.Delete("/api/replies/{id}", reviewHandler.DeleteReply)

		r.Post("/api/reports", moderationHandler.ReportContent)
		r.Delete("/api/reports/{id}", moderationHandler.WithdrawReport)
	})

	// ==================== STAFF ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Staff(log))

		r.Get("/api/admin/reports", moderationHandler.GetReports)
		r.Patch("/api/admin/reports/{id}/dismiss", moderationHandler.DismissReport)
		r.Delete("/api/admin/reports/{id}/content", moderationHandler.RemoveReportedContent)
		r.Get("/api/admin/stats", moderationHandler.GetStats)
	})
}
