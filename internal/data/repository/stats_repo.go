package repository

import (
	"context"
	"fmt"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"

	"go.uber.org/zap"
)

type StatsRepository interface {
	Get(ctx context.Context) (*entity.Stats, error)
}

type statsRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewStatsRepository(db database.PgxIface, log *zap.Logger) StatsRepository {
	return &statsRepository{
		db:  db,
		log: log.With(zap.String("repository", "stats")),
	}
}

func (r *statsRepository) Get(ctx context.Context) (*entity.Stats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM movies),
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM screens),
			(SELECT COUNT(*) FROM showtimes),
			(SELECT COUNT(*) FROM tickets WHERE status IN ('reserved', 'paid')),
			(SELECT COUNT(*) FROM tickets WHERE status IN ('paid', 'used')),
			(SELECT COALESCE(SUM(total_price), 0) FROM receipts),
			(SELECT COUNT(*) FROM reported_contents WHERE status = 'PENDING')
	`

	var stats entity.Stats
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.TotalMovies,
		&stats.TotalUsers,
		&stats.TotalScreens,
		&stats.TotalShowtimes,
		&stats.ActiveTickets,
		&stats.SoldTickets,
		&stats.Revenue,
		&stats.PendingReports,
	)
	if err != nil {
		r.log.Error("Failed to load stats", zap.Error(err))
		return nil, fmt.Errorf("load stats: %w", err)
	}
	return &stats, nil
}
