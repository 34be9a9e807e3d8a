package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/panics"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/betfinder/internal/domain/match"
	"github.com/riskibarqy/betfinder/internal/domain/stats"
	"github.com/riskibarqy/betfinder/internal/platform/logging"
)

const (
	defaultStatsWindowSize  = 20
	defaultStatsConcurrency = 8
)

type StatsConfig struct {
	WindowSize  int
	Concurrency int
}

// EnrichedMatch is a match with both sides' windows as of its kickoff.
type EnrichedMatch struct {
	match.Match
	HomeStats stats.Window
	AwayStats stats.Window
}

type StatsService struct {
	repo   stats.Repository
	cfg    StatsConfig
	logger *logging.Logger
}

func NewStatsService(repo stats.Repository, cfg StatsConfig, logger *logging.Logger) *StatsService {
	if cfg.WindowSize <= 0 {
		cfg.WindowSize = defaultStatsWindowSize
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultStatsConcurrency
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &StatsService{
		repo:   repo,
		cfg:    cfg,
		logger: logger,
	}
}

// Window aggregates the team's last WindowSize finished matches in role that kicked off before cutoff.
func (s *StatsService) Window(ctx context.Context, teamID int64, role stats.Role, cutoff time.Time) (stats.Window, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Window",
		attribute.Int64("team.id", teamID),
		attribute.String("stats.role", string(role)),
	)
	defer span.End()

	if teamID <= 0 {
		return stats.Window{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if role != stats.RoleHome && role != stats.RoleAway {
		return stats.Window{}, fmt.Errorf("%w: %w", ErrInvalidInput, stats.ErrUnknownRole)
	}
	if cutoff.IsZero() {
		return stats.Window{}, fmt.Errorf("%w: cutoff is required", ErrInvalidInput)
	}

	results, err := s.repo.RecentResults(ctx, stats.Query{
		TeamID: teamID,
		Role:   role,
		Before: &cutoff,
		Limit:  s.cfg.WindowSize,
	})
	if err != nil {
		return stats.Window{}, fmt.Errorf("%w: team=%d role=%s: %w", ErrStatsComputation, teamID, role, err)
	}

	return stats.Compute(role, results), nil
}

// History lists the finished matches behind one outcome, newest first.
func (s *StatsService) History(ctx context.Context, teamID int64, role stats.Role, outcome stats.Outcome) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.History",
		attribute.Int64("team.id", teamID),
		attribute.String("stats.role", string(role)),
		attribute.String("stats.outcome", string(outcome)),
	)
	defer span.End()

	if teamID <= 0 {
		return nil, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if role != stats.RoleHome && role != stats.RoleAway {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, stats.ErrUnknownRole)
	}

	items, err := s.repo.History(ctx, stats.Query{
		TeamID:  teamID,
		Role:    role,
		Outcome: outcome,
		Limit:   s.cfg.WindowSize,
	})
	if err != nil {
		return nil, fmt.Errorf("team history: %w", err)
	}
	return items, nil
}

// Enrich computes home and away windows for every match concurrently.
// A failed or panicking side is logged and left as a zero window.
func (s *StatsService) Enrich(ctx context.Context, matches []match.Match) ([]EnrichedMatch, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Enrich", attribute.Int("match.count", len(matches)))
	defer span.End()

	out := make([]EnrichedMatch, len(matches))
	for i, item := range matches {
		out[i] = EnrichedMatch{Match: item}
	}
	if len(matches) == 0 {
		return out, nil
	}

	workerCount := min(s.cfg.Concurrency, len(matches)*2)
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create stats worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i := range out {
		item := &out[i]
		sides := []struct {
			role   stats.Role
			teamID int64
			target *stats.Window
		}{
			{role: stats.RoleHome, teamID: item.HomeTeam.ID, target: &item.HomeStats},
			{role: stats.RoleAway, teamID: item.AwayTeam.ID, target: &item.AwayStats},
		}

		for _, side := range sides {
			if side.teamID <= 0 {
				continue
			}

			task := func() {
				defer workers.Done()
				*side.target = s.safeWindow(ctx, item.ID, side.teamID, side.role, item.KickoffAt)
			}

			workers.Add(1)
			if err := pool.Submit(task); err != nil {
				s.logger.WarnContext(ctx, "stats pool rejected task, running inline", "match_id", item.ID, "error", err)
				task()
			}
		}
	}

	workers.Wait()
	return out, nil
}

func (s *StatsService) safeWindow(ctx context.Context, matchID, teamID int64, role stats.Role, cutoff time.Time) stats.Window {
	var (
		window  stats.Window
		err     error
		catcher panics.Catcher
	)

	catcher.Try(func() {
		window, err = s.Window(ctx, teamID, role, cutoff)
	})
	if recovered := catcher.Recovered(); recovered != nil {
		err = fmt.Errorf("%w: %w", ErrStatsComputation, recovered.AsError())
	}
	if err != nil {
		s.logger.WarnContext(ctx, "stats window failed, using empty window",
			"match_id", matchID,
			"team_id", teamID,
			"role", string(role),
			"error", err,
		)
		return stats.Window{}
	}
	return window
}
