// internal/wire/wire.go
package wire

import (
	"net/http"

	"cinema-ticketing/internal/adaptor"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/cache"
	"cinema-ticketing/pkg/events"
	"cinema-ticketing/pkg/mailer"
	"cinema-ticketing/pkg/middleware"
	"cinema-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the wired router.
type App struct {
	Router *chi.Mux
}

// Deps are the optional infrastructure clients; a nil Cache disables response caching.
type Deps struct {
	Cache     cache.Store
	Mailer    mailer.Mailer
	Publisher events.Publisher
}

// Wiring builds services, handlers and routes.
func Wiring(repo *repository.Repository, config *utils.Config, deps Deps, logger *zap.Logger) *App {
	if deps.Mailer == nil {
		deps.Mailer = mailer.NewLogMailer(logger)
	}
	if deps.Publisher == nil {
		deps.Publisher = events.NewNoopPublisher(logger)
	}

	service := usecase.NewService(repo, config, deps.Mailer, deps.Publisher, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, deps.Cache, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	store cache.Store,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())
	r.Use(cache.Invalidate(store, logger))

	cached := cache.Responses(store, config.Redis.CacheTTL, logger)

	wireAuth(r, handler.Auth, handler.Seed, repo, logger)
	wireUser(r, handler.User, repo, logger)
	wireCatalog(r, handler.Movie, handler.Person, handler.Screen, repo, cached, logger)
	wireShowtime(r, handler.Showtime, repo, cached, logger)
	wireTicket(r, handler.Ticket, handler.Promotion, repo, cached, logger)
	wireReview(r, handler.Review, handler.Moderation, repo, cached, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
