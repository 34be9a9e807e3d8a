package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/betfinder/internal/domain/match"
	"github.com/riskibarqy/betfinder/internal/domain/team"
)

var matchColumns = []string{
	"m.id",
	"m.utc_date",
	"m.status",
	"m.matchday",
	"m.stage",
	"m.group_name",
	"m.winner",
	"m.duration",
	"m.venue",
	"m.season_start_date",
	"m.last_updated",
	"m.referee_name",
	"m.referee_nationality",
	"m.full_time_home",
	"m.full_time_away",
	"m.half_time_home",
	"m.half_time_away",
	"m.home_team_id",
	"m.home_team_name",
	"ht.short_name AS home_team_short_name",
	"ht.tla AS home_team_tla",
	"ht.crest AS home_team_crest",
	"ht.address AS home_team_address",
	"ht.website AS home_team_website",
	"ht.founded AS home_team_founded",
	"ht.club_colors AS home_team_colors",
	"ht.venue AS home_team_venue",
	"ht.area_name AS home_team_area",
	"m.away_team_id",
	"m.away_team_name",
	"at.short_name AS away_team_short_name",
	"at.tla AS away_team_tla",
	"at.crest AS away_team_crest",
	"at.address AS away_team_address",
	"at.website AS away_team_website",
	"at.founded AS away_team_founded",
	"at.club_colors AS away_team_colors",
	"at.venue AS away_team_venue",
	"at.area_name AS away_team_area",
	"m.competition_id",
	"c.name AS competition_name",
	"c.code AS competition_code",
	"c.emblem AS competition_emblem",
	"c.type AS competition_type",
	"c.area_name AS competition_area_name",
	"c.area_code AS competition_area_code",
}

type matchTableModel struct {
	ID                 int64          `db:"id"`
	UTCDate            time.Time      `db:"utc_date"`
	Status             sql.NullString `db:"status"`
	Matchday           sql.NullInt32  `db:"matchday"`
	Stage              sql.NullString `db:"stage"`
	GroupName          sql.NullString `db:"group_name"`
	Winner             sql.NullString `db:"winner"`
	Duration           sql.NullString `db:"duration"`
	Venue              sql.NullString `db:"venue"`
	SeasonStartDate    sql.NullTime   `db:"season_start_date"`
	LastUpdated        sql.NullTime   `db:"last_updated"`
	RefereeName        sql.NullString `db:"referee_name"`
	RefereeNationality sql.NullString `db:"referee_nationality"`
	FullTimeHome       sql.NullInt32  `db:"full_time_home"`
	FullTimeAway       sql.NullInt32  `db:"full_time_away"`
	HalfTimeHome       sql.NullInt32  `db:"half_time_home"`
	HalfTimeAway       sql.NullInt32  `db:"half_time_away"`

	HomeTeamID        sql.NullInt64  `db:"home_team_id"`
	HomeTeamName      sql.NullString `db:"home_team_name"`
	HomeTeamShortName sql.NullString `db:"home_team_short_name"`
	HomeTeamTLA       sql.NullString `db:"home_team_tla"`
	HomeTeamCrest     sql.NullString `db:"home_team_crest"`
	HomeTeamAddress   sql.NullString `db:"home_team_address"`
	HomeTeamWebsite   sql.NullString `db:"home_team_website"`
	HomeTeamFounded   sql.NullInt32  `db:"home_team_founded"`
	HomeTeamColors    sql.NullString `db:"home_team_colors"`
	HomeTeamVenue     sql.NullString `db:"home_team_venue"`
	HomeTeamArea      sql.NullString `db:"home_team_area"`

	AwayTeamID        sql.NullInt64  `db:"away_team_id"`
	AwayTeamName      sql.NullString `db:"away_team_name"`
	AwayTeamShortName sql.NullString `db:"away_team_short_name"`
	AwayTeamTLA       sql.NullString `db:"away_team_tla"`
	AwayTeamCrest     sql.NullString `db:"away_team_crest"`
	AwayTeamAddress   sql.NullString `db:"away_team_address"`
	AwayTeamWebsite   sql.NullString `db:"away_team_website"`
	AwayTeamFounded   sql.NullInt32  `db:"away_team_founded"`
	AwayTeamColors    sql.NullString `db:"away_team_colors"`
	AwayTeamVenue     sql.NullString `db:"away_team_venue"`
	AwayTeamArea      sql.NullString `db:"away_team_area"`

	CompetitionID       sql.NullInt64  `db:"competition_id"`
	CompetitionName     sql.NullString `db:"competition_name"`
	CompetitionCode     sql.NullString `db:"competition_code"`
	CompetitionEmblem   sql.NullString `db:"competition_emblem"`
	CompetitionType     sql.NullString `db:"competition_type"`
	CompetitionAreaName sql.NullString `db:"competition_area_name"`
	CompetitionAreaCode sql.NullString `db:"competition_area_code"`
}

func (row matchTableModel) toDomain() match.Match {
	out := match.Match{
		ID: row.ID,
		Competition: match.CompetitionRef{
			ID:     nullInt64ToInt64(row.CompetitionID),
			Name:   row.CompetitionName.String,
			Code:   row.CompetitionCode.String,
			Emblem: row.CompetitionEmblem.String,
			Type:   row.CompetitionType.String,
		},
		Area: match.Area{
			Name: row.CompetitionAreaName.String,
			Code: row.CompetitionAreaCode.String,
		},
		HomeTeam: team.Team{
			ID:         nullInt64ToInt64(row.HomeTeamID),
			Name:       row.HomeTeamName.String,
			ShortName:  row.HomeTeamShortName.String,
			TLA:        row.HomeTeamTLA.String,
			Crest:      row.HomeTeamCrest.String,
			Address:    row.HomeTeamAddress.String,
			Website:    row.HomeTeamWebsite.String,
			Founded:    nullInt32ToIntPtr(row.HomeTeamFounded),
			ClubColors: row.HomeTeamColors.String,
			Venue:      row.HomeTeamVenue.String,
			Area:       row.HomeTeamArea.String,
		},
		AwayTeam: team.Team{
			ID:         nullInt64ToInt64(row.AwayTeamID),
			Name:       row.AwayTeamName.String,
			ShortName:  row.AwayTeamShortName.String,
			TLA:        row.AwayTeamTLA.String,
			Crest:      row.AwayTeamCrest.String,
			Address:    row.AwayTeamAddress.String,
			Website:    row.AwayTeamWebsite.String,
			Founded:    nullInt32ToIntPtr(row.AwayTeamFounded),
			ClubColors: row.AwayTeamColors.String,
			Venue:      row.AwayTeamVenue.String,
			Area:       row.AwayTeamArea.String,
		},
		KickoffAt:       row.UTCDate.UTC(),
		Status:          match.Status(row.Status.String),
		Matchday:        nullInt32ToIntPtr(row.Matchday),
		Stage:           row.Stage.String,
		Group:           row.GroupName.String,
		Venue:           row.Venue.String,
		Winner:          match.Winner(row.Winner.String),
		Duration:        row.Duration.String,
		FullTime:        match.Score{Home: nullInt32ToIntPtr(row.FullTimeHome), Away: nullInt32ToIntPtr(row.FullTimeAway)},
		HalfTime:        match.Score{Home: nullInt32ToIntPtr(row.HalfTimeHome), Away: nullInt32ToIntPtr(row.HalfTimeAway)},
		SeasonStartDate: nullTimeToPtr(row.SeasonStartDate),
		LastUpdated:     nullTimeToPtr(row.LastUpdated),
	}
	if row.RefereeName.Valid && row.RefereeName.String != "" {
		out.Referee = &match.Referee{
			Name:        row.RefereeName.String,
			Nationality: row.RefereeNationality.String,
		}
	}
	return out
}
