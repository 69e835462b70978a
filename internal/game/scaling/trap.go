package scaling

import (
	"fmt"

	"github.com/cory-johannsen/crawl/internal/game/dice"
)

// TrapKind enumerates the trap outcomes. Each is equally likely.
type TrapKind int

const (
	TrapPit TrapKind = iota
	TrapDarts
	TrapFire
	TrapCorrosion
	TrapCurse
	TrapDud
	trapKindCount
)

// String returns the display name of the trap.
func (k TrapKind) String() string {
	switch k {
	case TrapPit:
		return "pit"
	case TrapDarts:
		return "darts"
	case TrapFire:
		return "fire"
	case TrapCorrosion:
		return "corrosion"
	case TrapCurse:
		return "curse"
	case TrapDud:
		return "dud"
	default:
		return "unknown"
	}
}

// TrapOutcome is the resolved effect of one trap. Damage is the raw amount;
// the caller applies it without dropping the player below 1 HP.
type TrapOutcome struct {
	Kind       TrapKind
	Damage     int
	Poison     bool
	GoldLost   int
	XPLost     int
	GoldGained int
}

// RollTrap resolves a trap for a player carrying gold and xp at level.
//
// Precondition: level >= 1; gold and xp are non-negative.
// Postcondition: GoldLost <= gold and XPLost <= xp.
func RollTrap(level, gold, xp int, src dice.Source) TrapOutcome {
	out := TrapOutcome{Kind: TrapKind(src.Intn(int(trapKindCount)))}
	switch out.Kind {
	case TrapPit:
		out.Damage = level*3 + dice.Between(src, 0, 10)
	case TrapDarts:
		out.Damage = level*2 + dice.Between(src, 0, 8)
		out.Poison = true
	case TrapFire:
		out.Damage = level*4 + dice.Between(src, 0, 12)
	case TrapCorrosion:
		out.GoldLost = gold / 10
	case TrapCurse:
		out.XPLost = min(level*50, xp)
	case TrapDud:
		out.GoldGained = level * 20
	}
	return out
}

// Message describes the outcome to the player.
func (o TrapOutcome) Message() string {
	switch o.Kind {
	case TrapPit:
		return fmt.Sprintf("The floor gives way! You fall into a pit and take %d damage.", o.Damage)
	case TrapDarts:
		return fmt.Sprintf("Darts hiss from the walls, striking for %d damage. You feel poison in your veins.", o.Damage)
	case TrapFire:
		return fmt.Sprintf("Flames roar from hidden vents for %d damage.", o.Damage)
	case TrapCorrosion:
		return fmt.Sprintf("Acid sprays over your purse. You lose %d gold.", o.GoldLost)
	case TrapCurse:
		return fmt.Sprintf("A curse settles on you. You lose %d experience.", o.XPLost)
	case TrapDud:
		return fmt.Sprintf("The trap clicks harmlessly. Inside its housing you find %d gold.", o.GoldGained)
	default:
		return "Nothing happens."
	}
}

// PoisonDamage returns the damage dealt by one poison tick at level.
func PoisonDamage(level int) int {
	return 1 + level/5
}
