package httpapi

import (
	"time"

	"github.com/riskibarqy/betfinder/internal/domain/competition"
	"github.com/riskibarqy/betfinder/internal/domain/match"
	"github.com/riskibarqy/betfinder/internal/domain/stats"
	"github.com/riskibarqy/betfinder/internal/domain/team"
	"github.com/riskibarqy/betfinder/internal/usecase"
)

type assistantQueryRequest struct {
	Question string `json:"question" validate:"required,max=2000"`
}

type assistantReplyDTO struct {
	Type       string     `json:"type"`
	Message    string     `json:"message"`
	Matches    []matchDTO `json:"matches"`
	TotalCount int        `json:"totalCount"`
	SQL        string     `json:"sql,omitempty"`
	Intent     string     `json:"intent,omitempty"`
}

type matchListDTO struct {
	Count   int        `json:"count"`
	Matches []matchDTO `json:"matches"`
}

type teamRefDTO struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	ShortName  string `json:"shortName,omitempty"`
	TLA        string `json:"tla,omitempty"`
	Crest      string `json:"crest,omitempty"`
	Address    string `json:"address,omitempty"`
	Website    string `json:"website,omitempty"`
	Founded    *int   `json:"founded,omitempty"`
	ClubColors string `json:"clubColors,omitempty"`
	Venue      string `json:"venue,omitempty"`
}

type competitionRefDTO struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Code   string `json:"code,omitempty"`
	Emblem string `json:"emblem,omitempty"`
	Type   string `json:"type,omitempty"`
}

type areaDTO struct {
	Name string `json:"name,omitempty"`
	Code string `json:"code,omitempty"`
}

type scorePairDTO struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type scoreDTO struct {
	Winner   string       `json:"winner,omitempty"`
	Duration string       `json:"duration,omitempty"`
	FullTime scorePairDTO `json:"fullTime"`
	HalfTime scorePairDTO `json:"halfTime"`
}

type refereeDTO struct {
	Name        string `json:"name"`
	Nationality string `json:"nationality,omitempty"`
}

type windowDTO struct {
	TotalGames         int `json:"totalGames"`
	BothTeamsScored    int `json:"bothTeamsScored"`
	NotBothTeamsScored int `json:"notBothTeamsScored"`
	Over25             int `json:"over25"`
	Under25            int `json:"under25"`
	Wins               int `json:"wins"`
	Draws              int `json:"draws"`
	Losses             int `json:"losses"`
}

type matchDTO struct {
	ID              int64             `json:"id"`
	UTCDate         string            `json:"utcDate"`
	Status          string            `json:"status"`
	Matchday        *int              `json:"matchday,omitempty"`
	Stage           string            `json:"stage,omitempty"`
	Group           string            `json:"group,omitempty"`
	Venue           string            `json:"venue,omitempty"`
	Competition     competitionRefDTO `json:"competition"`
	Area            areaDTO           `json:"area"`
	HomeTeam        teamRefDTO        `json:"homeTeam"`
	AwayTeam        teamRefDTO        `json:"awayTeam"`
	Score           scoreDTO          `json:"score"`
	Referee         *refereeDTO       `json:"referee,omitempty"`
	SeasonStartDate string            `json:"seasonStartDate,omitempty"`
	LastUpdated     string            `json:"lastUpdated,omitempty"`
	HomeStats       *windowDTO        `json:"homeStats,omitempty"`
	AwayStats       *windowDTO        `json:"awayStats,omitempty"`
}

type teamStatsDTO struct {
	TeamID int64     `json:"teamId"`
	Role   string    `json:"role"`
	Before string    `json:"before"`
	Stats  windowDTO `json:"stats"`
}

type teamHistoryDTO struct {
	TeamID   int64      `json:"teamId"`
	Location string     `json:"location"`
	Type     string     `json:"type,omitempty"`
	Count    int        `json:"count"`
	Matches  []matchDTO `json:"matches"`
}

type competitionDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code,omitempty"`
	Type     string `json:"type,omitempty"`
	Emblem   string `json:"emblem,omitempty"`
	AreaName string `json:"areaName,omitempty"`
	AreaCode string `json:"areaCode,omitempty"`
}

type overviewDTO struct {
	Competitions int64 `json:"competitions"`
	Teams        int64 `json:"teams"`
	Matches      int64 `json:"matches"`
	Standings    int64 `json:"standings"`
	TopScorers   int64 `json:"topScorers"`
}

func matchToDTO(item match.Match) matchDTO {
	out := matchDTO{
		ID:       item.ID,
		UTCDate:  formatTime(item.KickoffAt),
		Status:   string(item.Status),
		Matchday: item.Matchday,
		Stage:    item.Stage,
		Group:    item.Group,
		Venue:    item.Venue,
		Competition: competitionRefDTO{
			ID:     item.Competition.ID,
			Name:   item.Competition.Name,
			Code:   item.Competition.Code,
			Emblem: item.Competition.Emblem,
			Type:   item.Competition.Type,
		},
		Area:     areaDTO{Name: item.Area.Name, Code: item.Area.Code},
		HomeTeam: teamToDTO(item.HomeTeam),
		AwayTeam: teamToDTO(item.AwayTeam),
		Score: scoreDTO{
			Winner:   string(item.Winner),
			Duration: item.Duration,
			FullTime: scorePairDTO{Home: item.FullTime.Home, Away: item.FullTime.Away},
			HalfTime: scorePairDTO{Home: item.HalfTime.Home, Away: item.HalfTime.Away},
		},
	}
	if item.Referee != nil {
		out.Referee = &refereeDTO{Name: item.Referee.Name, Nationality: item.Referee.Nationality}
	}
	if item.SeasonStartDate != nil {
		out.SeasonStartDate = item.SeasonStartDate.UTC().Format(time.DateOnly)
	}
	if item.LastUpdated != nil {
		out.LastUpdated = formatTime(*item.LastUpdated)
	}
	return out
}

func matchesToDTO(items []match.Match) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchToDTO(item))
	}
	return out
}

// enrichedMatchesToDTO drops a side's stats when it has no finished matches in the window.
func enrichedMatchesToDTO(items []usecase.EnrichedMatch) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		dto := matchToDTO(item.Match)
		if item.HomeStats.HasSample() {
			home := windowToDTO(item.HomeStats)
			dto.HomeStats = &home
		}
		if item.AwayStats.HasSample() {
			away := windowToDTO(item.AwayStats)
			dto.AwayStats = &away
		}
		out = append(out, dto)
	}
	return out
}

func teamToDTO(item team.Team) teamRefDTO {
	return teamRefDTO{
		ID:         item.ID,
		Name:       item.Name,
		ShortName:  item.ShortName,
		TLA:        item.TLA,
		Crest:      item.Crest,
		Address:    item.Address,
		Website:    item.Website,
		Founded:    item.Founded,
		ClubColors: item.ClubColors,
		Venue:      item.Venue,
	}
}

func windowToDTO(w stats.Window) windowDTO {
	return windowDTO{
		TotalGames:         w.TotalGames,
		BothTeamsScored:    w.BothTeamsScored,
		NotBothTeamsScored: w.NotBothTeamsScored,
		Over25:             w.Over25,
		Under25:            w.Under25,
		Wins:               w.Wins,
		Draws:              w.Draws,
		Losses:             w.Losses,
	}
}

func competitionsToDTO(items []competition.Competition) []competitionDTO {
	out := make([]competitionDTO, 0, len(items))
	for _, item := range items {
		out = append(out, competitionDTO{
			ID:       item.ID,
			Name:     item.Name,
			Code:     item.Code,
			Type:     item.Type,
			Emblem:   item.Emblem,
			AreaName: item.AreaName,
			AreaCode: item.AreaCode,
		})
	}
	return out
}

func overviewToDTO(o competition.Overview) overviewDTO {
	return overviewDTO{
		Competitions: o.Competitions,
		Teams:        o.Teams,
		Matches:      o.Matches,
		Standings:    o.Standings,
		TopScorers:   o.TopScorers,
	}
}

func assistantResultToDTO(result usecase.AssistantResult) assistantReplyDTO {
	return assistantReplyDTO{
		Type:       result.Type,
		Message:    result.Message,
		Matches:    enrichedMatchesToDTO(result.Matches),
		TotalCount: result.TotalCount,
		SQL:        result.SQL,
		Intent:     result.Intent.Intent,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
