package postgres

import (
	"database/sql"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/lib/pq"
)

// SQLSTATE 57014: statement cancelled by statement_timeout or a cancel request.
const pqQueryCanceled = "57014"

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isQueryCanceled(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqQueryCanceled
	}
	return strings.Contains(strings.ToLower(errorText(err)), "canceling statement due to")
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func nullInt64ToInt64(v sql.NullInt64) int64 {
	if !v.Valid {
		return 0
	}
	return v.Int64
}

func nullInt32ToIntPtr(v sql.NullInt32) *int {
	if !v.Valid {
		return nil
	}
	out := int(v.Int32)
	return &out
}

func nullTimeToPtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	out := v.Time.UTC()
	return &out
}
