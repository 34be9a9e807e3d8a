package usecase

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/betfinder/internal/domain/match"
	"github.com/riskibarqy/betfinder/internal/domain/stats"
)

const defaultMatchListMaxRows = 500

type MatchListInput struct {
	Filter     match.Filter
	Thresholds stats.MatchThresholds
}

type MatchService struct {
	matchRepo match.Repository
	stats     *StatsService
	maxRows   int
}

func NewMatchService(matchRepo match.Repository, statsService *StatsService, maxRows int) *MatchService {
	if maxRows <= 0 {
		maxRows = defaultMatchListMaxRows
	}
	return &MatchService{
		matchRepo: matchRepo,
		stats:     statsService,
		maxRows:   maxRows,
	}
}

// List returns matches newest first, each with both sides' windows. Thresholds are
// applied after enrichment and only ever shrink the page read from storage.
func (s *MatchService) List(ctx context.Context, input MatchListInput) ([]EnrichedMatch, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.List")
	defer span.End()

	filter := input.Filter
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}
	if filter.Status != "" {
		status, ok := match.ParseStatus(string(filter.Status))
		if !ok {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, filter.Status)
		}
		filter.Status = status
	}
	if err := validateThresholds(input.Thresholds); err != nil {
		return nil, err
	}
	if filter.Limit <= 0 || filter.Limit > s.maxRows {
		filter.Limit = s.maxRows
	}

	items, err := s.matchRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	enriched, err := s.stats.Enrich(ctx, items)
	if err != nil {
		return nil, fmt.Errorf("enrich matches: %w", err)
	}

	if input.Thresholds.IsEmpty() {
		return enriched, nil
	}

	out := enriched[:0]
	for _, item := range enriched {
		if input.Thresholds.Allows(item.HomeStats, item.AwayStats) {
			out = append(out, item)
		}
	}
	span.SetAttributes(
		attribute.Int("match.fetched", len(enriched)),
		attribute.Int("match.returned", len(out)),
	)
	return out, nil
}

func (s *MatchService) Get(ctx context.Context, matchID int64) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Get", attribute.Int64("match.id", matchID))
	defer span.End()

	if matchID <= 0 {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%d", ErrNotFound, matchID)
	}
	return item, nil
}

func validateThresholds(t stats.MatchThresholds) error {
	for side, values := range map[string]stats.Thresholds{"home": t.Home, "away": t.Away} {
		for outcome, minimum := range values {
			if minimum < 0 || minimum > 100 {
				return fmt.Errorf("%w: %s %s minimum must be between 0 and 100", ErrInvalidInput, side, outcome)
			}
		}
	}
	return nil
}
