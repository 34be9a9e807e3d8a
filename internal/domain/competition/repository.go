package competition

import "context"

type Repository interface {
	List(ctx context.Context) ([]Competition, error)
}

// Overview counts the rows of each table the assistant may query.
type Overview struct {
	Competitions int64
	Teams        int64
	Matches      int64
	Standings    int64
	TopScorers   int64
}

type OverviewRepository interface {
	Overview(ctx context.Context) (Overview, error)
}
