// Package combat implements the default turn-based combat resolution used
// when the player fights a room's monsters.
package combat

// Kind distinguishes the player's side from monsters.
type Kind int

const (
	KindPlayer Kind = iota
	KindAlly
	KindMonster
)

// Outcome is the tier an attack lands in. Lower values are better for the
// attacker.
type Outcome int

const (
	CritSuccess Outcome = iota
	Success
	Failure
	CritFailure
)

var outcomeLabels = [...]string{"critical hit", "hit", "miss", "fumble"}

// damageMultiplier scales base damage per tier.
var damageMultiplier = [...]int{2, 1, 0, 0}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeLabels) {
		return "unknown"
	}
	return outcomeLabels[o]
}

// critMargin is how far past the target number a roll must land to crit, or
// fall short to fumble.
const critMargin = 10

// OutcomeFor grades an attack total against a target number.
func OutcomeFor(total, ac int) Outcome {
	switch {
	case total >= ac+critMargin:
		return CritSuccess
	case total >= ac:
		return Success
	case total >= ac-critMargin:
		return Failure
	}
	return CritFailure
}

// Combatant is one participant in a fight. Player and monster state is
// copied in before the fight and written back after it.
type Combatant struct {
	ID         string
	Kind       Kind
	Name       string
	MaxHP      int
	CurrentHP  int
	Attack     int
	Defense    int
	InitBonus  int
	Initiative int
}

// IsPlayerSide reports whether the combatant fights for the player.
func (c *Combatant) IsPlayerSide() bool { return c.Kind != KindMonster }

func (c *Combatant) IsDead() bool { return c.CurrentHP <= 0 }

// ArmorClass is the number an attack total must reach: 10 + defense/2.
func (c *Combatant) ArmorClass() int { return 10 + c.Defense/2 }

// ApplyDamage removes up to amount hit points.
//
// Postcondition: CurrentHP >= 0.
func (c *Combatant) ApplyDamage(amount int) {
	c.CurrentHP = max(0, c.CurrentHP-max(0, amount))
}
