package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/betfinder/internal/domain/competition"
)

// CatalogService serves lookup data that changes only when new data is imported.
type CatalogService struct {
	competitionRepo competition.Repository
	overviewRepo    competition.OverviewRepository
}

func NewCatalogService(competitionRepo competition.Repository, overviewRepo competition.OverviewRepository) *CatalogService {
	return &CatalogService{
		competitionRepo: competitionRepo,
		overviewRepo:    overviewRepo,
	}
}

func (s *CatalogService) ListCompetitions(ctx context.Context) ([]competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListCompetitions")
	defer span.End()

	items, err := s.competitionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}
	return items, nil
}

func (s *CatalogService) Overview(ctx context.Context) (competition.Overview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.Overview")
	defer span.End()

	overview, err := s.overviewRepo.Overview(ctx)
	if err != nil {
		return competition.Overview{}, fmt.Errorf("database overview: %w", err)
	}
	return overview, nil
}
