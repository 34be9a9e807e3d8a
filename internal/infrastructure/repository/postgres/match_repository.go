package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/betfinder/internal/domain/match"
	qb "github.com/riskibarqy/betfinder/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) List(ctx context.Context, filter match.Filter) ([]match.Match, error) {
	query, args, err := buildMatchListQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID int64) (match.Match, bool, error) {
	query, args, err := selectMatches().
		Where(qb.Eq("m.id", matchID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build select match by id query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("select match by id: %w", err)
	}
	return row.toDomain(), true, nil
}

func selectMatches() *qb.SelectBuilder {
	return qb.Select(matchColumns...).
		From("matches m").
		LeftJoin("teams ht", "m.home_team_id = ht.id").
		LeftJoin("teams at", "m.away_team_id = at.id").
		LeftJoin("competitions c", "m.competition_id = c.id")
}

func buildMatchListQuery(filter match.Filter) (string, []any, error) {
	conditions := make([]qb.Condition, 0, 5)

	from, until := filter.KickoffRange()
	if from != nil {
		conditions = append(conditions, qb.Gte("m.utc_date", *from))
	}
	if until != nil {
		conditions = append(conditions, qb.Lt("m.utc_date", *until))
	}
	if filter.CompetitionID != nil {
		conditions = append(conditions, qb.Eq("m.competition_id", *filter.CompetitionID))
	}
	if filter.TeamID != nil {
		conditions = append(conditions, qb.Or(
			qb.Eq("m.home_team_id", *filter.TeamID),
			qb.Eq("m.away_team_id", *filter.TeamID),
		))
	}
	if filter.Status != "" {
		conditions = append(conditions, qb.Eq("m.status", string(filter.Status)))
	}

	return selectMatches().
		Where(conditions...).
		OrderBy("m.utc_date DESC", "m.id DESC").
		Limit(filter.Limit).
		ToSQL()
}
