package stats

// Thresholds holds minimum percentages for one side; absent outcomes are not checked.
type Thresholds map[Outcome]int

// MatchThresholds gates a match on both sides' windows.
type MatchThresholds struct {
	Home Thresholds
	Away Thresholds
}

func (t MatchThresholds) IsEmpty() bool {
	return len(t.Home) == 0 && len(t.Away) == 0
}

// Allows is false when any configured side/outcome pair is below its minimum.
// A side with TotalGames == 0 reads as 0% and so fails every positive minimum.
func (t MatchThresholds) Allows(home, away Window) bool {
	return t.Home.allows(home) && t.Away.allows(away)
}

func (t Thresholds) allows(w Window) bool {
	for outcome, minimum := range t {
		if w.Percent(outcome) < minimum {
			return false
		}
	}
	return true
}
