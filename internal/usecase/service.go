package usecase

import (
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/pkg/events"
	"cinema-ticketing/pkg/mailer"
	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth       AuthService
	User       UserService
	Movie      MovieService
	Director   DirectorService
	CastMember CastMemberService
	Screen     ScreenService
	Showtime   ShowtimeService
	Ticket     TicketService
	Receipt    ReceiptService
	Promotion  PromotionService
	Review     ReviewService
	Moderation ModerationService
	Stats      StatsService
	Seed       SeedService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	mail mailer.Mailer,
	publisher events.Publisher,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:       NewAuthService(repo, config, log),
		User:       NewUserService(repo, log),
		Movie:      NewMovieService(repo, log),
		Director:   NewDirectorService(repo, log),
		CastMember: NewCastMemberService(repo, log),
		Screen:     NewScreenService(repo, log),
		Showtime:   NewShowtimeService(repo, log),
		Ticket:     NewTicketService(repo, publisher, log),
		Receipt:    NewReceiptService(repo, mail, publisher, log),
		Promotion:  NewPromotionService(repo, log),
		Review:     NewReviewService(repo, log),
		Moderation: NewModerationService(repo, log),
		Stats:      NewStatsService(repo, log),
		Seed:       NewSeedService(repo, config, log),
	}
}
