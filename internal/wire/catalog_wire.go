package wire

import (
	"net/http"

	"cinema-ticketing/internal/adaptor"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCatalog(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	personHandler *adaptor.PersonHandler,
	screenHandler *adaptor.ScreenHandler,
	repo *repository.Repository,
	cached func(http.Handler) http.Handler,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(cached)

		r.Get("/api/movies", movieHandler.GetMovies)
		r.Get("/api/movies/{id}", movieHandler.GetMovieByID)

		r.Get("/api/directors", personHandler.GetDirectors)
		r.Get("/api/directors/{id}", personHandler.GetDirectorByID)

		r.Get("/api/cast-members", personHandler.GetCastMembers)
		r.Get("/api/cast-members/{id}", personHandler.GetCastMemberByID)

		r.Get("/api/screens", screenHandler.GetScreens)
		r.Get("/api/screens/{id}", screenHandler.GetScreenByID)
		r.Get("/api/screens/{id}/seats", screenHandler.GetScreenSeats)
	})

	// ==================== ADMIN ROUTES ====================
	admin := func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))
	}

	r.Route("/api/admin/movies", func(r chi.Router) {
		admin(r)

		r.Get("/", movieHandler.AdminGetMovies)
		r.Post("/", movieHandler.CreateMovie)
		r.Get("/{id}", movieHandler.AdminGetMovieByID)
		r.Put("/{id}", movieHandler.UpdateMovie)
		r.Delete("/{id}", movieHandler.DeleteMovie)
		r.Put("/{id}/cast", movieHandler.ReplaceCast)
		r.Patch("/{id}/visibility", movieHandler.SetVisibility)
	})

	r.Route("/api/admin/directors", func(r chi.Router) {
		admin(r)

		r.Post("/", personHandler.CreateDirector)
		r.Put("/{id}", personHandler.UpdateDirector)
		r.Delete("/{id}", personHandler.DeleteDirector)
	})

	r.Route("/api/admin/cast-members", func(r chi.Router) {
		admin(r)

		r.Post("/", personHandler.CreateCastMember)
		r.Put("/{id}", personHandler.UpdateCastMember)
		r.Delete("/{id}", personHandler.DeleteCastMember)
	})

	r.Route("/api/admin/screens", func(r chi.Router) {
		admin(r)

		r.Post("/", screenHandler.CreateScreen)
		r.Put("/{id}", screenHandler.UpdateScreen)
		r.Delete("/{id}", screenHandler.DeleteScreen)
	})

	r.Route("/api/admin/seats", func(r chi.Router) {
		admin(r)

		r.Patch("/{id}/availability", screenHandler.SetSeatAvailability)
	})
}
