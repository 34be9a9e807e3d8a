package usecase

import "github.com/cockroachdb/errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrQueryTimeout          = errors.New("query timed out")
	// ErrStatsComputation marks a failed window computation. Enrichment swallows it.
	ErrStatsComputation = errors.New("stats computation failed")
)
