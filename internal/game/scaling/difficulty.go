package scaling

// Difficulty is the player-facing danger label of an encounter. It never
// changes outcomes.
type Difficulty int

const (
	Trivial Difficulty = iota
	Easy
	Moderate
	Hard
	Dangerous
	Deadly
)

// String returns the label.
func (d Difficulty) String() string {
	switch d {
	case Trivial:
		return "Trivial"
	case Easy:
		return "Easy"
	case Moderate:
		return "Moderate"
	case Hard:
		return "Hard"
	case Dangerous:
		return "Dangerous"
	case Deadly:
		return "Deadly"
	default:
		return "Unknown"
	}
}

// PowerStats is the aggregate of one combatant used for rating encounters.
type PowerStats struct {
	Offense int
	Defense int
	HP      int
}

// Power returns offense*2 + defense + hp/4.
func (p PowerStats) Power() float64 {
	return float64(p.Offense*2+p.Defense) + float64(p.HP)/4
}

// difficultyThresholds are upper bounds on monster/player power ratio for
// each label below Deadly.
var difficultyThresholds = []float64{0.25, 0.6, 1.0, 1.5, 2.5}

// RateEncounter labels an encounter of monsters against player.
//
// Postcondition: Returns Trivial for an empty group and Deadly when the
// player has no power.
func RateEncounter(player PowerStats, monsters []PowerStats) Difficulty {
	if len(monsters) == 0 {
		return Trivial
	}
	pp := player.Power()
	if pp <= 0 {
		return Deadly
	}
	var mp float64
	for _, m := range monsters {
		mp += m.Power()
	}
	ratio := mp / pp
	for i, limit := range difficultyThresholds {
		if ratio < limit {
			return Difficulty(i)
		}
	}
	return Deadly
}
