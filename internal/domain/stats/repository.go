package stats

import (
	"context"
	"time"

	"github.com/riskibarqy/betfinder/internal/domain/match"
)

// Query selects a team's finished matches in one role, newest first.
type Query struct {
	TeamID  int64
	Role    Role
	Outcome Outcome
	Before  *time.Time
	Limit   int
}

type Repository interface {
	// RecentResults returns full-time scores of finished matches with both scores recorded
	// and kickoff strictly before q.Before. q.Outcome is ignored.
	RecentResults(ctx context.Context, q Query) ([]Result, error)
	// History returns the matches behind an outcome, e.g. the home wins of a team.
	History(ctx context.Context, q Query) ([]match.Match, error)
}
