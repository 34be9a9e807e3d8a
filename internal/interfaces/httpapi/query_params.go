package httpapi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/riskibarqy/betfinder/internal/domain/match"
	"github.com/riskibarqy/betfinder/internal/domain/stats"
	"github.com/riskibarqy/betfinder/internal/usecase"
)

func parseMatchFilter(query url.Values) (match.Filter, error) {
	var filter match.Filter

	startDate, err := parseDateParam(query, "startDate")
	if err != nil {
		return match.Filter{}, err
	}
	endDate, err := parseDateParam(query, "endDate")
	if err != nil {
		return match.Filter{}, err
	}
	competitionID, err := parseIDParam(query, "competitionId")
	if err != nil {
		return match.Filter{}, err
	}
	teamID, err := parseIDParam(query, "teamId")
	if err != nil {
		return match.Filter{}, err
	}

	filter.StartDate = startDate
	filter.EndDate = endDate
	filter.CompetitionID = competitionID
	filter.TeamID = teamID
	filter.Status = match.Status(strings.TrimSpace(query.Get("status")))

	if raw := strings.TrimSpace(query.Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return match.Filter{}, fmt.Errorf("%w: limit must be a positive integer", usecase.ErrInvalidInput)
		}
		filter.Limit = limit
	}

	return filter, nil
}

// parseThresholds reads the per-side minimums, e.g. homeBothScoreMin=60 or awayLossMin=10.
func parseThresholds(query url.Values) (stats.MatchThresholds, error) {
	var out stats.MatchThresholds

	for _, side := range []stats.Role{stats.RoleHome, stats.RoleAway} {
		values := stats.Thresholds{}
		for _, outcome := range stats.Outcomes {
			name := thresholdParamName(side, outcome)
			raw := strings.TrimSpace(query.Get(name))
			if raw == "" {
				continue
			}
			minimum, err := strconv.Atoi(raw)
			if err != nil || minimum < 0 || minimum > 100 {
				return stats.MatchThresholds{}, fmt.Errorf("%w: %s must be an integer between 0 and 100", usecase.ErrInvalidInput, name)
			}
			values[outcome] = minimum
		}
		if len(values) == 0 {
			continue
		}
		if side == stats.RoleHome {
			out.Home = values
		} else {
			out.Away = values
		}
	}

	return out, nil
}

func thresholdParamName(side stats.Role, outcome stats.Outcome) string {
	name := []rune(string(outcome))
	name[0] = unicode.ToUpper(name[0])
	return string(side) + string(name) + "Min"
}

// parseDateParam accepts a calendar date or an RFC3339 timestamp.
func parseDateParam(query url.Values, name string) (*time.Time, error) {
	raw := strings.TrimSpace(query.Get(name))
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			parsed = parsed.UTC()
			return &parsed, nil
		}
	}
	return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD or RFC3339", usecase.ErrInvalidInput, name)
}

func parseIDParam(query url.Values, name string) (*int64, error) {
	raw := strings.TrimSpace(query.Get(name))
	if raw == "" {
		return nil, nil
	}
	id, err := parsePositiveID(raw, name)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parsePositiveID(raw, name string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return id, nil
}
