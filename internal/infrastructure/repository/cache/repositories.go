package cache

import (
	"context"

	"github.com/riskibarqy/betfinder/internal/domain/competition"
	basecache "github.com/riskibarqy/betfinder/internal/platform/cache"
)

const (
	competitionListKey = "competition:list"
	overviewKey        = "competition:overview"
)

// CompetitionRepository caches the competition list and the table counts.
// Both only change when new data is imported.
type CompetitionRepository struct {
	next     competition.Repository
	overview competition.OverviewRepository
	cache    *basecache.Store
}

func NewCompetitionRepository(next competition.Repository, overview competition.OverviewRepository, cache *basecache.Store) *CompetitionRepository {
	return &CompetitionRepository{next: next, overview: overview, cache: cache}
}

func (r *CompetitionRepository) List(ctx context.Context) ([]competition.Competition, error) {
	items, err := basecache.Load(ctx, r.cache, competitionListKey, func(ctx context.Context) ([]competition.Competition, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]competition.Competition(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]competition.Competition(nil), items...), nil
}

func (r *CompetitionRepository) Overview(ctx context.Context) (competition.Overview, error) {
	return basecache.Load(ctx, r.cache, overviewKey, r.overview.Overview)
}
