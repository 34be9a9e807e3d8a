package assistant

import (
	"context"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/betfinder/internal/domain/match"
)

const IntentFindMatches = "find_matches"

var (
	// ErrTranslation means the model reply held no usable query.
	ErrTranslation = errors.New("could not translate question")
	// ErrNotConfigured is returned by an LLM without credentials.
	ErrNotConfigured = errors.New("language model is not configured")
	// ErrQueryCanceled is returned by a QueryRunner when the database cancelled the statement.
	ErrQueryCanceled = errors.New("query canceled by database")
)

const translationHint = "could not understand the question, please rephrase it"

// Intent is the structured reply expected from the model for one question.
type Intent struct {
	Intent        string
	SQL           string
	Explanation   string
	ExpectedCount string
}

// LLM completes a single system+user exchange and returns the raw reply text.
type LLM interface {
	Complete(ctx context.Context, system, question string) (string, error)
}

// QueryRunner executes already validated SQL and maps the rows to matches.
type QueryRunner interface {
	Run(ctx context.Context, sql string) ([]match.Match, error)
}

type intentPayload struct {
	Intent        string `json:"intent"`
	SQL           string `json:"sql"`
	Explanation   string `json:"explanation"`
	ExpectedCount any    `json:"expectedCount"`
}

// ParseIntent decodes the reply as JSON. When the model wrapped the object in prose,
// the first balanced {...} that decodes with a non-empty sql wins.
func ParseIntent(text string) (Intent, error) {
	trimmed := strings.TrimSpace(text)
	if intent, ok := decodeIntent(trimmed); ok {
		return intent, nil
	}

	for start := strings.IndexByte(trimmed, '{'); start >= 0; {
		if end := matchingBrace(trimmed, start); end > start {
			if intent, ok := decodeIntent(trimmed[start : end+1]); ok {
				return intent, nil
			}
		}

		next := strings.IndexByte(trimmed[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}

	return Intent{}, errors.WithHint(errors.WithDetailf(ErrTranslation, "reply: %.200s", trimmed), translationHint)
}

func decodeIntent(raw string) (Intent, bool) {
	if raw == "" || raw[0] != '{' {
		return Intent{}, false
	}

	var payload intentPayload
	if err := sonic.UnmarshalString(raw, &payload); err != nil {
		return Intent{}, false
	}
	sql := strings.TrimSpace(payload.SQL)
	if sql == "" {
		return Intent{}, false
	}

	intent := strings.TrimSpace(payload.Intent)
	if intent == "" {
		intent = IntentFindMatches
	}

	return Intent{
		Intent:        intent,
		SQL:           sql,
		Explanation:   strings.TrimSpace(payload.Explanation),
		ExpectedCount: stringify(payload.ExpectedCount),
	}, true
}

// matchingBrace returns the index of the brace closing text[start], skipping braces inside strings.
func matchingBrace(text string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func stringify(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(value, 10)
	case bool:
		return strconv.FormatBool(value)
	default:
		out, err := sonic.MarshalString(value)
		if err != nil {
			return ""
		}
		return out
	}
}
