package match

import (
	"strings"
	"time"

	"github.com/riskibarqy/betfinder/internal/domain/team"
)

// Status mirrors the football-data.org match lifecycle.
type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusTimed     Status = "TIMED"
	StatusInPlay    Status = "IN_PLAY"
	StatusPaused    Status = "PAUSED"
	StatusFinished  Status = "FINISHED"
	StatusPostponed Status = "POSTPONED"
	StatusCancelled Status = "CANCELLED"
	StatusSuspended Status = "SUSPENDED"
	StatusAwarded   Status = "AWARDED"
)

var statuses = []Status{
	StatusScheduled,
	StatusTimed,
	StatusInPlay,
	StatusPaused,
	StatusFinished,
	StatusPostponed,
	StatusCancelled,
	StatusSuspended,
	StatusAwarded,
}

func ParseStatus(value string) (Status, bool) {
	candidate := Status(strings.ToUpper(strings.TrimSpace(value)))
	for _, status := range statuses {
		if status == candidate {
			return status, true
		}
	}
	return "", false
}

type Winner string

const (
	WinnerHome Winner = "HOME_TEAM"
	WinnerAway Winner = "AWAY_TEAM"
	WinnerDraw Winner = "DRAW"
)

// Score is a pair of nullable goal counts; both are nil before kickoff.
type Score struct {
	Home *int
	Away *int
}

type CompetitionRef struct {
	ID     int64
	Name   string
	Code   string
	Emblem string
	Type   string
}

type Area struct {
	Name string
	Code string
}

type Referee struct {
	Name        string
	Nationality string
}

// Match is one fixture as stored by the data-sync job.
type Match struct {
	ID              int64
	Competition     CompetitionRef
	Area            Area
	HomeTeam        team.Team
	AwayTeam        team.Team
	KickoffAt       time.Time
	Status          Status
	Matchday        *int
	Stage           string
	Group           string
	Venue           string
	Winner          Winner
	Duration        string
	FullTime        Score
	HalfTime        Score
	Referee         *Referee
	SeasonStartDate *time.Time
	LastUpdated     *time.Time
}
