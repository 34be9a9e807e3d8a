package match

import "time"

// Filter narrows a match listing. Zero values mean "no restriction".
type Filter struct {
	StartDate     *time.Time
	EndDate       *time.Time
	CompetitionID *int64
	TeamID        *int64
	Status        Status
	Limit         int
}

// KickoffRange returns the half-open kickoff interval [from, until).
// StartDate counts from the start of its day and EndDate includes its whole day.
func (f Filter) KickoffRange() (from, until *time.Time) {
	if f.StartDate != nil {
		start := startOfDay(*f.StartDate)
		from = &start
	}
	if f.EndDate != nil {
		end := startOfDay(*f.EndDate).AddDate(0, 0, 1)
		until = &end
	}
	return from, until
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
