// Package sqlguard applies a lexical allow/deny policy to generated SQL before it reaches the database.
//
// The checks are substring based, not a parser. They can over-reject identifiers that contain a
// denied word (created_at contains CREATE) and they do not prove a statement is harmless.
package sqlguard

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

const DefaultLimit = 50

var (
	ErrForbiddenStatement = errors.New("statement must start with SELECT or WITH")
	ErrDangerousOperation = errors.New("dangerous operation")
	ErrInvalidTable       = errors.New("statement references no allowed table")
)

// DeniedKeywords are checked in order; the first hit is reported.
var DeniedKeywords = []string{
	"DROP",
	"DELETE",
	"UPDATE",
	"INSERT",
	"ALTER",
	"CREATE",
	"TRUNCATE",
	"EXEC",
	"EXECUTE",
	"--",
}

var AllowedTables = []string{
	"matches",
	"teams",
	"competitions",
	"standings",
	"top_scorers",
}

// DangerousOperationError names the denied keyword found in a statement.
type DangerousOperationError struct {
	Keyword string
}

func (e *DangerousOperationError) Error() string {
	return "dangerous operation blocked: " + e.Keyword
}

func (e *DangerousOperationError) Is(target error) bool {
	return target == ErrDangerousOperation
}

type Guard struct {
	defaultLimit int
}

func New(defaultLimit int) *Guard {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	return &Guard{defaultLimit: defaultLimit}
}

// Validate returns the statement to execute, with a LIMIT appended when none is present.
func (g *Guard) Validate(sql string) (string, error) {
	upper := strings.ToUpper(strings.TrimSpace(sql))

	if !strings.HasPrefix(upper, "SELECT") && !strings.HasPrefix(upper, "WITH") {
		return "", errors.WithHint(ErrForbiddenStatement, "only SELECT queries are allowed")
	}

	for _, keyword := range DeniedKeywords {
		if strings.Contains(upper, keyword) {
			return "", errors.WithHint(
				&DangerousOperationError{Keyword: keyword},
				"dangerous operation blocked: "+keyword,
			)
		}
	}

	if !referencesAllowedTable(upper) {
		return "", errors.WithHint(ErrInvalidTable, "the query must read from matches, teams, competitions, standings or top_scorers")
	}

	if hasTopLevelLimit(upper) {
		return sql, nil
	}

	trimmed := strings.TrimRight(strings.TrimSpace(sql), "; \t\r\n")
	return trimmed + " LIMIT " + strconv.Itoa(g.defaultLimit), nil
}

// Validate runs the policy with DefaultLimit.
func Validate(sql string) (string, error) {
	return New(DefaultLimit).Validate(sql)
}

func referencesAllowedTable(upper string) bool {
	for _, table := range AllowedTables {
		if strings.Contains(upper, strings.ToUpper(table)) {
			return true
		}
	}
	return false
}

// hasTopLevelLimit reports a LIMIT keyword outside parentheses, quotes and comments.
// A LIMIT inside a subquery or a literal such as '%Unlimited%' does not cap the result.
func hasTopLevelLimit(upper string) bool {
	depth := 0
	for i := 0; i < len(upper); i++ {
		c := upper[i]
		switch {
		case c == '\'' || c == '"':
			i = skipQuoted(upper, i, c)
		case c == '/' && i+1 < len(upper) && upper[i+1] == '*':
			end := strings.Index(upper[i+2:], "*/")
			if end < 0 {
				return false
			}
			i += end + 3
		case c == '(':
			depth++
		case c == ')':
			if depth > 0 {
				depth--
			}
		case depth == 0 && c == 'L' && isKeywordAt(upper, i, "LIMIT"):
			return true
		}
	}
	return false
}

// skipQuoted returns the index of the quote closing the literal opened at start.
// Doubled quotes are escapes.
func skipQuoted(s string, start int, quote byte) int {
	for j := start + 1; j < len(s); j++ {
		if s[j] != quote {
			continue
		}
		if j+1 < len(s) && s[j+1] == quote {
			j++
			continue
		}
		return j
	}
	return len(s)
}

func isKeywordAt(s string, i int, keyword string) bool {
	if !strings.HasPrefix(s[i:], keyword) {
		return false
	}
	if i > 0 && isIdentByte(s[i-1]) {
		return false
	}
	end := i + len(keyword)
	return end == len(s) || !isIdentByte(s[end])
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || c == '.' ||
		(c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') ||
		c >= 0x80
}
