package match

import "context"

// Repository exposes match read operations.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]Match, error)
	GetByID(ctx context.Context, matchID int64) (Match, bool, error)
}
