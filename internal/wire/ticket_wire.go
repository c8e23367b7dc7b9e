package wire

import (
	"net/http"

	"cinema-ticketing/internal/adaptor"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTicket(
	r chi.Router,
	ticketHandler *adaptor.TicketHandler,
	promotionHandler *adaptor.PromotionHandler,
	repo *repository.Repository,
	cached func(http.Handler) http.Handler,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.With(cached).Get("/api/promotions", promotionHandler.GetActivePromotions)
	r.Post("/api/promotions/validate", promotionHandler.ValidatePromotion)

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		r.Post("/api/tickets", ticketHandler.CreateTicket)
		r.Get("/api/tickets/{id}", ticketHandler.GetTicketByID)
		r.Delete("/api/tickets/{id}", ticketHandler.CancelTicket)
		r.Get("/api/user/tickets", ticketHandler.GetUserTickets)

		r.Post("/api/receipts", ticketHandler.CreateReceipt)
		r.Get("/api/receipts/{id}", ticketHandler.GetReceiptByID)
		r.Delete("/api/receipts/{id}", ticketHandler.DeleteReceipt)
		r.Get("/api/user/receipts", ticketHandler.GetUserReceipts)
	})

	// ==================== STAFF ROUTES ====================
	r.Route("/api/admin/tickets", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Staff(log))

		r.Get("/", ticketHandler.GetAllTickets)
		r.Patch("/{id}/status", ticketHandler.UpdateTicketStatus)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/promotions", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		r.Get("/", promotionHandler.GetAllPromotions)
		r.Post("/", promotionHandler.CreatePromotion)
		r.Get("/{id}", promotionHandler.GetPromotionByID)
		r.Put("/{id}", promotionHandler.UpdatePromotion)
		r.Delete("/{id}", promotionHandler.DeletePromotion)
	})
}
