package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/betfinder/internal/domain/assistant"
	"github.com/riskibarqy/betfinder/internal/domain/match"
)

// AssistantQueryRunner executes generated SQL. Column names follow the aliases the
// translator is instructed to use, with the plain table column names as fallback.
type AssistantQueryRunner struct {
	db *sqlx.DB
}

func NewAssistantQueryRunner(db *sqlx.DB) *AssistantQueryRunner {
	return &AssistantQueryRunner{db: db}
}

func (r *AssistantQueryRunner) Run(ctx context.Context, query string) ([]match.Match, error) {
	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, wrapRunError(err)
	}
	defer rows.Close()

	out := make([]match.Match, 0)
	for rows.Next() {
		row := make(map[string]any)
		if err := rows.MapScan(row); err != nil {
			return nil, wrapRunError(err)
		}
		out = append(out, matchFromRow(row))
	}
	if err := rows.Err(); err != nil {
		return nil, wrapRunError(err)
	}
	return out, nil
}

func wrapRunError(err error) error {
	if isQueryCanceled(err) {
		return fmt.Errorf("%w: %w", assistant.ErrQueryCanceled, err)
	}
	return fmt.Errorf("run generated query: %w", err)
}

func matchFromRow(row map[string]any) match.Match {
	out := match.Match{
		ID:       rowInt64(row, "id"),
		Status:   match.Status(rowString(row, "status")),
		Matchday: rowIntPtr(row, "matchday"),
		Stage:    rowString(row, "stage"),
		Group:    rowString(row, "group_name"),
		Venue:    rowString(row, "venue"),
		Winner:   match.Winner(rowString(row, "winner")),
		Duration: rowString(row, "duration"),
		Competition: match.CompetitionRef{
			ID:     rowInt64(row, "competition_id"),
			Name:   rowString(row, "comp_name", "competition_name"),
			Code:   rowString(row, "comp_code", "competition_code"),
			Emblem: rowString(row, "emblem", "competition_emblem"),
			Type:   rowString(row, "competition_type"),
		},
		Area: match.Area{
			Name: rowString(row, "area_name", "competition_area_name"),
			Code: rowString(row, "area_code", "competition_area_code"),
		},
		FullTime: match.Score{
			Home: rowIntPtr(row, "full_time_home"),
			Away: rowIntPtr(row, "full_time_away"),
		},
		HalfTime: match.Score{
			Home: rowIntPtr(row, "half_time_home"),
			Away: rowIntPtr(row, "half_time_away"),
		},
		SeasonStartDate: rowTimePtr(row, "season_start_date"),
		LastUpdated:     rowTimePtr(row, "last_updated"),
	}
	if kickoff := rowTimePtr(row, "utc_date"); kickoff != nil {
		out.KickoffAt = *kickoff
	}

	out.HomeTeam.ID = rowInt64(row, "home_team_id")
	out.HomeTeam.Name = rowString(row, "home_team_name")
	out.HomeTeam.Crest = rowString(row, "home_crest", "home_team_crest")
	out.AwayTeam.ID = rowInt64(row, "away_team_id")
	out.AwayTeam.Name = rowString(row, "away_team_name")
	out.AwayTeam.Crest = rowString(row, "away_crest", "away_team_crest")

	if name := rowString(row, "referee_name"); name != "" {
		out.Referee = &match.Referee{Name: name, Nationality: rowString(row, "referee_nationality")}
	}
	return out
}

func rowValue(row map[string]any, keys ...string) (any, bool) {
	for _, key := range keys {
		if value, ok := row[key]; ok && value != nil {
			return value, true
		}
	}
	return nil, false
}

func rowString(row map[string]any, keys ...string) string {
	value, ok := rowValue(row, keys...)
	if !ok {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}

func rowInt64(row map[string]any, keys ...string) int64 {
	value, ok := rowValue(row, keys...)
	if !ok {
		return 0
	}
	switch v := value.(type) {
	case int64:
		return v
	case int32:
		return int64(v)
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case []byte:
		parsed, _ := strconv.ParseInt(strings.TrimSpace(string(v)), 10, 64)
		return parsed
	case string:
		parsed, _ := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return parsed
	default:
		return 0
	}
}

func rowIntPtr(row map[string]any, keys ...string) *int {
	if _, ok := rowValue(row, keys...); !ok {
		return nil
	}
	out := int(rowInt64(row, keys...))
	return &out
}

func rowTimePtr(row map[string]any, keys ...string) *time.Time {
	value, ok := rowValue(row, keys...)
	if !ok {
		return nil
	}

	var parsed time.Time
	switch v := value.(type) {
	case time.Time:
		parsed = v
	case string:
		parsed, ok = parseRowTime(v)
	case []byte:
		parsed, ok = parseRowTime(string(v))
	default:
		ok = false
	}
	if !ok {
		return nil
	}
	parsed = parsed.UTC()
	return &parsed
}

func parseRowTime(value string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07", "2006-01-02 15:04:05", "2006-01-02"} {
		if parsed, err := time.Parse(layout, strings.TrimSpace(value)); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
