package repository

import (
	"cinema-ticketing/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User       UserRepository
	Session    SessionRepository
	Preference PreferenceRepository
	Movie      MovieRepository
	Director   DirectorRepository
	CastMember CastMemberRepository
	Screen     ScreenRepository
	Seat       SeatRepository
	Showtime   ShowtimeRepository
	Ticket     TicketRepository
	Receipt    ReceiptRepository
	Promotion  PromotionRepository
	Review     ReviewRepository
	ReviewLike ReviewLikeRepository
	Reply      ReplyRepository
	Report     ReportRepository
	Stats      StatsRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:       NewUserRepository(db, log),
		Session:    NewSessionRepository(db, log),
		Preference: NewPreferenceRepository(db, log),
		Movie:      NewMovieRepository(db, log),
		Director:   NewDirectorRepository(db, log),
		CastMember: NewCastMemberRepository(db, log),
		Screen:     NewScreenRepository(db, log),
		Seat:       NewSeatRepository(db, log),
		Showtime:   NewShowtimeRepository(db, log),
		Ticket:     NewTicketRepository(db, log),
		Receipt:    NewReceiptRepository(db, log),
		Promotion:  NewPromotionRepository(db, log),
		Review:     NewReviewRepository(db, log),
		ReviewLike: NewReviewLikeRepository(db, log),
		Reply:      NewReplyRepository(db, log),
		Report:     NewReportRepository(db, log),
		Stats:      NewStatsRepository(db, log),
	}
}
