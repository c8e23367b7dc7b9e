package usecase

import (
	"context"
	"fmt"

	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/response"

	"go.uber.org/zap"
)

type StatsService interface {
	GetStats(ctx context.Context) (*response.StatsResponse, error)
}

type statsService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewStatsService(repo *repository.Repository, log *zap.Logger) StatsService {
	return &statsService{
		repo: repo,
		log:  log.With(zap.String("service", "stats")),
	}
}

func (s *statsService) GetStats(ctx context.Context) (*response.StatsResponse, error) {
	stats, err := s.repo.Stats.Get(ctx)
	if err != nil {
		s.log.Error("Failed to get stats", zap.Error(err))
		return nil, fmt.Errorf("get stats: %w", err)
	}

	resp := response.StatsToResponse(stats)
	return &resp, nil
}
