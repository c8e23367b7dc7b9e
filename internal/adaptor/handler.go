package adaptor

import (
	"cinema-ticketing/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth       *AuthHandler
	User       *UserHandler
	Movie      *MovieHandler
	Person     *PersonHandler
	Screen     *ScreenHandler
	Showtime   *ShowtimeHandler
	Ticket     *TicketHandler
	Promotion  *PromotionHandler
	Review     *ReviewHandler
	Moderation *ModerationHandler
	Seed       *SeedHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(service.Auth, log),
		User:       NewUserHandler(service.User, log),
		Movie:      NewMovieHandler(service.Movie, log),
		Person:     NewPersonHandler(service.Director, service.CastMember, log),
		Screen:     NewScreenHandler(service.Screen, log),
		Showtime:   NewShowtimeHandler(service.Showtime, log),
		Ticket:     NewTicketHandler(service.Ticket, service.Receipt, log),
		Promotion:  NewPromotionHandler(service.Promotion, log),
		Review:     NewReviewHandler(service.Review, log),
		Moderation: NewModerationHandler(service.Moderation, service.Stats, log),
		Seed:       NewSeedHandler(service.Seed, log),
	}
}
