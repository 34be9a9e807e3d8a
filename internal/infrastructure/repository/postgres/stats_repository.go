package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/betfinder/internal/domain/match"
	"github.com/riskibarqy/betfinder/internal/domain/stats"
	qb "github.com/riskibarqy/betfinder/internal/platform/querybuilder"
)

type StatsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

type resultTableModel struct {
	FullTimeHome int `db:"full_time_home"`
	FullTimeAway int `db:"full_time_away"`
}

type historyTableModel struct {
	ID                int64          `db:"id"`
	UTCDate           time.Time      `db:"utc_date"`
	Matchday          sql.NullInt32  `db:"matchday"`
	HomeTeamID        sql.NullInt64  `db:"home_team_id"`
	HomeTeamName      sql.NullString `db:"home_team_name"`
	AwayTeamID        sql.NullInt64  `db:"away_team_id"`
	AwayTeamName      sql.NullString `db:"away_team_name"`
	FullTimeHome      sql.NullInt32  `db:"full_time_home"`
	FullTimeAway      sql.NullInt32  `db:"full_time_away"`
	Venue             sql.NullString `db:"venue"`
	CompetitionName   sql.NullString `db:"competition_name"`
	CompetitionEmblem sql.NullString `db:"competition_emblem"`
}

func (r *StatsRepository) RecentResults(ctx context.Context, q stats.Query) ([]stats.Result, error) {
	query, args, err := buildRecentResultsQuery(q)
	if err != nil {
		return nil, fmt.Errorf("build select recent results query: %w", err)
	}

	var rows []resultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select recent results: %w", err)
	}

	out := make([]stats.Result, 0, len(rows))
	for _, row := range rows {
		out = append(out, stats.Result{Home: row.FullTimeHome, Away: row.FullTimeAway})
	}
	return out, nil
}

func (r *StatsRepository) History(ctx context.Context, q stats.Query) ([]match.Match, error) {
	query, args, err := buildHistoryQuery(q)
	if err != nil {
		return nil, fmt.Errorf("build select team history query: %w", err)
	}

	var rows []historyTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team history: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		item := match.Match{
			ID:        row.ID,
			KickoffAt: row.UTCDate.UTC(),
			Status:    match.StatusFinished,
			Matchday:  nullInt32ToIntPtr(row.Matchday),
			Venue:     row.Venue.String,
			Competition: match.CompetitionRef{
				Name:   row.CompetitionName.String,
				Emblem: row.CompetitionEmblem.String,
			},
			FullTime: match.Score{
				Home: nullInt32ToIntPtr(row.FullTimeHome),
				Away: nullInt32ToIntPtr(row.FullTimeAway),
			},
		}
		item.HomeTeam.ID = nullInt64ToInt64(row.HomeTeamID)
		item.HomeTeam.Name = row.HomeTeamName.String
		item.AwayTeam.ID = nullInt64ToInt64(row.AwayTeamID)
		item.AwayTeam.Name = row.AwayTeamName.String
		out = append(out, item)
	}
	return out, nil
}

func buildRecentResultsQuery(q stats.Query) (string, []any, error) {
	column, err := roleColumn(q.Role)
	if err != nil {
		return "", nil, err
	}

	conditions := []qb.Condition{
		qb.Eq(column, q.TeamID),
		qb.Eq("status", string(match.StatusFinished)),
		qb.IsNotNull("full_time_home"),
		qb.IsNotNull("full_time_away"),
	}
	if q.Before != nil {
		conditions = append(conditions, qb.Lt("utc_date", *q.Before))
	}

	return qb.Select("full_time_home", "full_time_away").
		From("matches").
		Where(conditions...).
		OrderBy("utc_date DESC", "id DESC").
		Limit(q.Limit).
		ToSQL()
}

func buildHistoryQuery(q stats.Query) (string, []any, error) {
	column, err := roleColumn(q.Role)
	if err != nil {
		return "", nil, err
	}

	conditions := []qb.Condition{
		qb.Eq("m."+column, q.TeamID),
		qb.Eq("m.status", string(match.StatusFinished)),
		qb.IsNotNull("m.full_time_home"),
		qb.IsNotNull("m.full_time_away"),
	}
	if predicate := outcomePredicate(q.Role, q.Outcome); predicate != "" {
		conditions = append(conditions, qb.Expr(predicate))
	}
	if q.Before != nil {
		conditions = append(conditions, qb.Lt("m.utc_date", *q.Before))
	}

	return qb.Select(
		"m.id",
		"m.utc_date",
		"m.matchday",
		"m.home_team_id",
		"m.home_team_name",
		"m.away_team_id",
		"m.away_team_name",
		"m.full_time_home",
		"m.full_time_away",
		"m.venue",
		"c.name AS competition_name",
		"c.emblem AS competition_emblem",
	).
		From("matches m").
		LeftJoin("competitions c", "m.competition_id = c.id").
		Where(conditions...).
		OrderBy("m.utc_date DESC", "m.id DESC").
		Limit(q.Limit).
		ToSQL()
}

func roleColumn(role stats.Role) (string, error) {
	switch role {
	case stats.RoleHome:
		return "home_team_id", nil
	case stats.RoleAway:
		return "away_team_id", nil
	default:
		return "", fmt.Errorf("unsupported role %q", role)
	}
}

// outcomePredicate mirrors stats.Outcome.Holds in SQL.
func outcomePredicate(role stats.Role, outcome stats.Outcome) string {
	own, other := "m.full_time_home", "m.full_time_away"
	if role == stats.RoleAway {
		own, other = other, own
	}

	switch outcome {
	case stats.OutcomeBothScore:
		return "m.full_time_home > 0 AND m.full_time_away > 0"
	case stats.OutcomeNotBothScore:
		return "(m.full_time_home = 0 OR m.full_time_away = 0)"
	case stats.OutcomeOver25:
		return "(m.full_time_home + m.full_time_away) > 2"
	case stats.OutcomeUnder25:
		return "(m.full_time_home + m.full_time_away) < 3"
	case stats.OutcomeWin:
		return own + " > " + other
	case stats.OutcomeDraw:
		return own + " = " + other
	case stats.OutcomeLoss:
		return own + " < " + other
	default:
		return ""
	}
}
