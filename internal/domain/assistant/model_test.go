package assistant

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/betfinder/internal/platform/sqlguard"
)

func TestParseIntent_PureJSON(t *testing.T) {
	t.Parallel()

	got, err := ParseIntent(`{"intent":"find_matches","sql":"SELECT * FROM matches","explanation":"all","expectedCount":"1-3"}`)
	require.NoError(t, err)
	assert.Equal(t, Intent{
		Intent:        IntentFindMatches,
		SQL:           "SELECT * FROM matches",
		Explanation:   "all",
		ExpectedCount: "1-3",
	}, got)
}

func TestParseIntent_WrappedInProse(t *testing.T) {
	t.Parallel()

	text := "Sure! Here is the query {not json} you asked for:\n```json\n" +
		`{"intent":"find_matches","sql":"SELECT * FROM matches WHERE venue ILIKE '%{x}%'","explanation":"brace \"}\" inside","expectedCount":12}` +
		"\n```\nLet me know {if} you need more."

	got, err := ParseIntent(text)
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM matches WHERE venue ILIKE '%{x}%'", got.SQL)
	assert.Equal(t, `brace "}" inside`, got.Explanation)
	assert.Equal(t, "12", got.ExpectedCount)
}

func TestParseIntent_DefaultsIntentLabel(t *testing.T) {
	t.Parallel()

	got, err := ParseIntent(`{"sql":"SELECT * FROM teams"}`)
	require.NoError(t, err)
	assert.Equal(t, IntentFindMatches, got.Intent)
	assert.Empty(t, got.ExpectedCount)
}

func TestParseIntent_Failures(t *testing.T) {
	t.Parallel()

	for _, text := range []string{
		"",
		"I cannot help with that.",
		`{"intent":"find_matches","sql":""}`,
		`{"intent":"find_matches"`,
		`{"intent":"find_matches","sql":   }`,
	} {
		_, err := ParseIntent(text)
		require.ErrorIs(t, err, ErrTranslation, "text=%q", text)
		assert.Contains(t, errors.GetAllHints(err), translationHint)
	}
}

func TestSystemPrompt_BayernExamplePassesGuard(t *testing.T) {
	t.Parallel()

	start := strings.Index(SystemPrompt, `Question: "Bayern Spiele heute"`)
	require.GreaterOrEqual(t, start, 0)

	intent, err := ParseIntent(SystemPrompt[start:])
	require.NoError(t, err)

	upper := strings.ToUpper(intent.SQL)
	assert.Contains(t, upper, "FROM MATCHES")
	assert.Contains(t, upper, "HOME_TEAM_NAME ILIKE '%BAYERN%'")
	assert.Contains(t, upper, "CURRENT_DATE")

	validated, err := sqlguard.Validate(intent.SQL)
	require.NoError(t, err)
	assert.Equal(t, intent.SQL, validated)
}

func TestSystemPrompt_ExamplesPassGuard(t *testing.T) {
	t.Parallel()

	rest := SystemPrompt
	found := 0
	for {
		idx := strings.Index(rest, "Question:")
		if idx < 0 {
			break
		}
		rest = rest[idx+len("Question:"):]
		intent, err := ParseIntent(rest)
		require.NoError(t, err)
		_, err = sqlguard.Validate(intent.SQL)
		require.NoError(t, err, "sql=%s", intent.SQL)
		found++
	}
	assert.Equal(t, 3, found)
}
