package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_HomeFixture(t *testing.T) {
	t.Parallel()

	got := Compute(RoleHome, []Result{{2, 1}, {0, 0}, {3, 3}})

	assert.Equal(t, Window{
		TotalGames:         3,
		BothTeamsScored:    67,
		NotBothTeamsScored: 33,
		Over25:             67,
		Under25:            33,
		Wins:               33,
		Draws:              67,
		Losses:             0,
	}, got)
}

func TestCompute_AwayPerspective(t *testing.T) {
	t.Parallel()

	got := Compute(RoleAway, []Result{{2, 1}, {0, 0}, {3, 3}})

	assert.Equal(t, 3, got.TotalGames)
	assert.Equal(t, 0, got.Wins)
	assert.Equal(t, 67, got.Draws)
	assert.Equal(t, 33, got.Losses)
}

func TestCompute_EmptySampleIsZero(t *testing.T) {
	t.Parallel()

	for _, role := range []Role{RoleHome, RoleAway} {
		got := Compute(role, nil)
		assert.Equal(t, Window{}, got)
		assert.False(t, got.HasSample())
		for _, o := range Outcomes {
			assert.Zero(t, got.Percent(o))
		}
	}
}

func TestCompute_Idempotent(t *testing.T) {
	t.Parallel()

	results := []Result{{1, 0}, {2, 2}, {0, 3}, {4, 1}}
	assert.Equal(t, Compute(RoleHome, results), Compute(RoleHome, results))
}

func TestOutcome_ClassificationIsExhaustive(t *testing.T) {
	t.Parallel()

	for h := 0; h <= 9; h++ {
		for a := 0; a <= 9; a++ {
			both := OutcomeBothScore.Holds(RoleHome, h, a)
			notBoth := OutcomeNotBothScore.Holds(RoleHome, h, a)
			over := OutcomeOver25.Holds(RoleHome, h, a)
			under := OutcomeUnder25.Holds(RoleHome, h, a)

			assert.Equal(t, h >= 1 && a >= 1, both, "both %d-%d", h, a)
			assert.NotEqual(t, both, notBoth, "btts partition %d-%d", h, a)
			assert.Equal(t, h+a >= 3, over, "over %d-%d", h, a)
			assert.NotEqual(t, over, under, "goals partition %d-%d", h, a)

			for _, role := range []Role{RoleHome, RoleAway} {
				results := 0
				for _, o := range []Outcome{OutcomeWin, OutcomeDraw, OutcomeLoss} {
					if o.Holds(role, h, a) {
						results++
					}
				}
				assert.Equal(t, 1, results, "exactly one of win/draw/loss %s %d-%d", role, h, a)
			}
		}
	}
}

func TestWindow_PercentagesInRange(t *testing.T) {
	t.Parallel()

	var results []Result
	for h := 0; h <= 9; h++ {
		for a := 0; a <= 9; a++ {
			results = append(results, Result{h, a})
			w := Compute(RoleHome, results)
			for _, o := range Outcomes {
				p := w.Percent(o)
				assert.GreaterOrEqual(t, p, 0)
				assert.LessOrEqual(t, p, 100)
			}
		}
	}
}

func TestPercent_RoundsHalfAwayFromZero(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 50, percent(1, 2))
	assert.Equal(t, 17, percent(1, 6))
	assert.Equal(t, 83, percent(5, 6))
	assert.Equal(t, 13, percent(1, 8))
	assert.Equal(t, 0, percent(3, 0))
}

func TestParseRoleAndOutcome(t *testing.T) {
	t.Parallel()

	role, err := ParseRole("AWAY")
	require.NoError(t, err)
	assert.Equal(t, RoleAway, role)

	_, err = ParseRole("neutral")
	assert.ErrorIs(t, err, ErrUnknownRole)

	o, err := ParseOutcome("over25")
	require.NoError(t, err)
	assert.Equal(t, OutcomeOver25, o)

	o, err = ParseOutcome("")
	require.NoError(t, err)
	assert.Equal(t, Outcome(""), o)

	_, err = ParseOutcome("cleanSheet")
	assert.ErrorIs(t, err, ErrUnknownOutcome)
}

func TestMatchThresholds_Allows(t *testing.T) {
	t.Parallel()

	home := Window{TotalGames: 10, BothTeamsScored: 60, Wins: 50}
	away := Window{TotalGames: 10, Over25: 40, Losses: 30}

	assert.True(t, MatchThresholds{}.Allows(home, away))
	assert.True(t, MatchThresholds{
		Home: Thresholds{OutcomeBothScore: 60, OutcomeWin: 50},
		Away: Thresholds{OutcomeOver25: 40},
	}.Allows(home, away))
	assert.False(t, MatchThresholds{
		Home: Thresholds{OutcomeBothScore: 60},
		Away: Thresholds{OutcomeLoss: 31},
	}.Allows(home, away))
	assert.False(t, MatchThresholds{
		Home: Thresholds{OutcomeDraw: 1},
	}.Allows(Window{}, away))
}

func TestMatchThresholds_NoSampleFailsPositiveMinimum(t *testing.T) {
	t.Parallel()

	sampled := Window{TotalGames: 10, BothTeamsScored: 80, Over25: 70}
	empty := Window{}
	require.False(t, empty.HasSample())

	assert.False(t, MatchThresholds{Away: Thresholds{OutcomeBothScore: 1}}.Allows(sampled, empty))
	assert.False(t, MatchThresholds{Home: Thresholds{OutcomeUnder25: 1}}.Allows(empty, sampled))
	assert.True(t, MatchThresholds{Away: Thresholds{OutcomeBothScore: 0}}.Allows(sampled, empty))
	assert.True(t, MatchThresholds{Home: Thresholds{OutcomeBothScore: 50}}.Allows(sampled, empty))
}
