package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/betfinder/internal/domain/competition"
	qb "github.com/riskibarqy/betfinder/internal/platform/querybuilder"
)

type CompetitionRepository struct {
	db *sqlx.DB
}

func NewCompetitionRepository(db *sqlx.DB) *CompetitionRepository {
	return &CompetitionRepository{db: db}
}

type competitionTableModel struct {
	ID       int64          `db:"id"`
	Name     string         `db:"name"`
	Code     sql.NullString `db:"code"`
	Type     sql.NullString `db:"type"`
	Emblem   sql.NullString `db:"emblem"`
	AreaName sql.NullString `db:"area_name"`
	AreaCode sql.NullString `db:"area_code"`
}

type overviewTableModel struct {
	Competitions int64 `db:"competitions"`
	Teams        int64 `db:"teams"`
	Matches      int64 `db:"matches"`
	Standings    int64 `db:"standings"`
	TopScorers   int64 `db:"top_scorers"`
}

const overviewQuery = `SELECT
	(SELECT COUNT(*) FROM competitions) AS competitions,
	(SELECT COUNT(*) FROM teams) AS teams,
	(SELECT COUNT(*) FROM matches) AS matches,
	(SELECT COUNT(*) FROM standings) AS standings,
	(SELECT COUNT(*) FROM top_scorers) AS top_scorers`

func (r *CompetitionRepository) List(ctx context.Context) ([]competition.Competition, error) {
	query, args, err := qb.Select("id", "name", "code", "type", "emblem", "area_name", "area_code").
		From("competitions").
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select competitions query: %w", err)
	}

	var rows []competitionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select competitions: %w", err)
	}

	out := make([]competition.Competition, 0, len(rows))
	for _, row := range rows {
		out = append(out, competition.Competition{
			ID:       row.ID,
			Name:     row.Name,
			Code:     row.Code.String,
			Type:     row.Type.String,
			Emblem:   row.Emblem.String,
			AreaName: row.AreaName.String,
			AreaCode: row.AreaCode.String,
		})
	}
	return out, nil
}

func (r *CompetitionRepository) Overview(ctx context.Context) (competition.Overview, error) {
	var row overviewTableModel
	if err := r.db.GetContext(ctx, &row, overviewQuery); err != nil {
		return competition.Overview{}, fmt.Errorf("select database overview: %w", err)
	}

	return competition.Overview{
		Competitions: row.Competitions,
		Teams:        row.Teams,
		Matches:      row.Matches,
		Standings:    row.Standings,
		TopScorers:   row.TopScorers,
	}, nil
}
