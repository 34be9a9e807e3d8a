package app

import (
	"strings"
	"unicode/utf8"
)

// maxTracedQueryBytes bounds the db.statement attribute; generated assistant SQL can be long.
const maxTracedQueryBytes = 512

// formatDBQueryForTrace collapses whitespace and cuts the statement on a rune boundary
// so team names such as München survive truncation as valid UTF-8.
func formatDBQueryForTrace(query string) string {
	normalized := strings.Join(strings.Fields(query), " ")
	if len(normalized) <= maxTracedQueryBytes {
		return normalized
	}

	cut := maxTracedQueryBytes
	for cut > 0 && !utf8.RuneStart(normalized[cut]) {
		cut--
	}
	return normalized[:cut] + "..."
}
