package stats

import (
	"math"
	"strings"

	"github.com/cockroachdb/errors"
)

// Role is the side a team played on.
type Role string

const (
	RoleHome Role = "home"
	RoleAway Role = "away"
)

var ErrUnknownRole = errors.New("role must be home or away")

func ParseRole(value string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RoleHome:
		return RoleHome, nil
	case RoleAway:
		return RoleAway, nil
	default:
		return "", errors.Wrapf(ErrUnknownRole, "role %q", value)
	}
}

// Outcome names one percentage of a Window. Win/draw/loss are from the team's perspective.
type Outcome string

const (
	OutcomeBothScore    Outcome = "bothScore"
	OutcomeNotBothScore Outcome = "notBothScore"
	OutcomeOver25       Outcome = "over25"
	OutcomeUnder25      Outcome = "under25"
	OutcomeWin          Outcome = "win"
	OutcomeDraw         Outcome = "draw"
	OutcomeLoss         Outcome = "loss"
)

var Outcomes = []Outcome{
	OutcomeBothScore,
	OutcomeNotBothScore,
	OutcomeOver25,
	OutcomeUnder25,
	OutcomeWin,
	OutcomeDraw,
	OutcomeLoss,
}

var ErrUnknownOutcome = errors.New("unknown outcome")

// ParseOutcome accepts an empty value as "any outcome".
func ParseOutcome(value string) (Outcome, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	for _, o := range Outcomes {
		if strings.EqualFold(string(o), value) {
			return o, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownOutcome, "outcome %q", value)
}

// Holds reports whether a full-time result counts toward the outcome for a team in role.
func (o Outcome) Holds(role Role, home, away int) bool {
	own, other := home, away
	if role == RoleAway {
		own, other = away, home
	}

	switch o {
	case "":
		return true
	case OutcomeBothScore:
		return home >= 1 && away >= 1
	case OutcomeNotBothScore:
		return home == 0 || away == 0
	case OutcomeOver25:
		return home+away >= 3
	case OutcomeUnder25:
		return home+away <= 2
	case OutcomeWin:
		return own > other
	case OutcomeDraw:
		return own == other
	case OutcomeLoss:
		return own < other
	default:
		return false
	}
}

// Window is the aggregate of a team's recent finished matches in one role.
// Percentages are integers in [0,100] and are all zero when TotalGames is zero.
type Window struct {
	TotalGames         int
	BothTeamsScored    int
	NotBothTeamsScored int
	Over25             int
	Under25            int
	Wins               int
	Draws              int
	Losses             int
}

func (w Window) HasSample() bool {
	return w.TotalGames > 0
}

func (w Window) Percent(o Outcome) int {
	switch o {
	case OutcomeBothScore:
		return w.BothTeamsScored
	case OutcomeNotBothScore:
		return w.NotBothTeamsScored
	case OutcomeOver25:
		return w.Over25
	case OutcomeUnder25:
		return w.Under25
	case OutcomeWin:
		return w.Wins
	case OutcomeDraw:
		return w.Draws
	case OutcomeLoss:
		return w.Losses
	default:
		return 0
	}
}

// Tally counts classified results for one team and role.
type Tally struct {
	role  Role
	total int
	hits  map[Outcome]int
}

func NewTally(role Role) *Tally {
	return &Tally{role: role, hits: make(map[Outcome]int, len(Outcomes))}
}

func (t *Tally) Add(home, away int) {
	t.total++
	for _, o := range Outcomes {
		if o.Holds(t.role, home, away) {
			t.hits[o]++
		}
	}
}

func (t *Tally) Window() Window {
	if t.total == 0 {
		return Window{}
	}
	return Window{
		TotalGames:         t.total,
		BothTeamsScored:    percent(t.hits[OutcomeBothScore], t.total),
		NotBothTeamsScored: percent(t.hits[OutcomeNotBothScore], t.total),
		Over25:             percent(t.hits[OutcomeOver25], t.total),
		Under25:            percent(t.hits[OutcomeUnder25], t.total),
		Wins:               percent(t.hits[OutcomeWin], t.total),
		Draws:              percent(t.hits[OutcomeDraw], t.total),
		Losses:             percent(t.hits[OutcomeLoss], t.total),
	}
}

// Result is a full-time score.
type Result struct {
	Home int
	Away int
}

func Compute(role Role, results []Result) Window {
	tally := NewTally(role)
	for _, r := range results {
		tally.Add(r.Home, r.Away)
	}
	return tally.Window()
}

func percent(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) * 100 / float64(total)))
}
