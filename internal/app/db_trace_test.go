package app

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestFormatDBQueryForTrace(t *testing.T) {
	got := formatDBQueryForTrace(" SELECT   m.id\nFROM matches m \t WHERE m.home_team_id = $1 ")
	assert.Equal(t, "SELECT m.id FROM matches m WHERE m.home_team_id = $1", got)
}

func TestFormatDBQueryForTrace_Truncates(t *testing.T) {
	got := formatDBQueryForTrace("SELECT " + strings.Repeat("x, ", 400) + "1 FROM matches")
	assert.Len(t, got, maxTracedQueryBytes+len("..."))
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestFormatDBQueryForTrace_TruncatesOnRuneBoundary(t *testing.T) {
	prefix := "SELECT * FROM matches WHERE home_team_name ILIKE '%" + strings.Repeat("a", maxTracedQueryBytes-len("SELECT * FROM matches WHERE home_team_name ILIKE '%")-2)
	got := formatDBQueryForTrace(prefix + "München%' LIMIT 50")

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, prefix+"M...", got)
}

func TestFormatDBQueryForTrace_Empty(t *testing.T) {
	assert.Equal(t, "", formatDBQueryForTrace("   "))
}
