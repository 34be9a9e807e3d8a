// Package dsn rewrites PostgreSQL connection strings for lib/pq.
package dsn

import (
	"net/url"
	"strings"
)

const preparedBinaryParam = "disable_prepared_binary_result"

// Normalize adds disable_prepared_binary_result=yes unless the caller set it.
// Both URL and key=value forms are accepted.
func Normalize(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult {
		return raw
	}

	trimmed := strings.TrimSpace(raw)
	if !isURL(trimmed) {
		if trimmed == "" || strings.Contains(trimmed, preparedBinaryParam+"=") {
			return raw
		}
		return trimmed + " " + preparedBinaryParam + "=yes"
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || parsed == nil {
		return raw
	}

	query := parsed.Query()
	if query.Get(preparedBinaryParam) == "" {
		query.Set(preparedBinaryParam, "yes")
		parsed.RawQuery = query.Encode()
	}

	return parsed.String()
}

// DatabaseName is used as the db.name trace attribute.
func DatabaseName(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if isURL(trimmed) {
		parsed, err := url.Parse(trimmed)
		if err == nil && parsed != nil {
			if name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/")); name != "" {
				return name
			}
		}
	}

	for _, token := range strings.Fields(trimmed) {
		if !strings.HasPrefix(token, "dbname=") {
			continue
		}
		name := strings.TrimSpace(strings.TrimPrefix(token, "dbname="))
		name = strings.Trim(name, `"'`)
		if name != "" {
			return name
		}
	}

	return ""
}

func isURL(raw string) bool {
	return strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://")
}
