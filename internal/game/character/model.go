// Package character defines the player model carried through a dungeon run.
package character

import (
	"math"

	"github.com/google/uuid"

	"github.com/cory-johannsen/crawl/internal/game/condition"
	"github.com/cory-johannsen/crawl/internal/game/scaling"
)

// Progression constants.
const (
	MaxLevel        = 50
	HPPerLevel      = 8
	AttackPerLevel  = 2
	DefensePerLevel = 1

	startingHP      = 30
	startingAttack  = 5
	startingDefense = 3
)

// XPForLevel returns the total experience required to reach level:
// 100 * level^1.5, and 0 for level 1.
func XPForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return int(100 * math.Pow(float64(level), 1.5))
}

// Player is the adventurer's mutable state for one session.
type Player struct {
	ID         string
	Name       string
	Level      int
	Experience int
	Gold       int

	MaxHP     int
	CurrentHP int
	Attack    int
	Defense   int

	Consumables map[string]int
	Conditions  *condition.ActiveSet
}

// New creates a level 1 player at full health.
//
// Postcondition: CurrentHP == MaxHP and ID is a fresh UUID.
func New(name string) *Player {
	return &Player{
		ID:          uuid.NewString(),
		Name:        name,
		Level:       1,
		MaxHP:       startingHP,
		CurrentHP:   startingHP,
		Attack:      startingAttack,
		Defense:     startingDefense,
		Consumables: make(map[string]int),
		Conditions:  condition.NewActiveSet(),
	}
}

// IsAlive reports whether the player has hit points left.
func (p *Player) IsAlive() bool {
	return p.CurrentHP > 0
}

// Wound applies non-lethal damage: HP never drops below 1. It returns the
// damage actually taken.
func (p *Player) Wound(n int) int {
	if n <= 0 || p.CurrentHP <= 1 {
		return 0
	}
	taken := min(n, p.CurrentHP-1)
	p.CurrentHP -= taken
	return taken
}

// TakeDamage applies lethal damage, flooring HP at 0. It returns the damage
// actually taken.
func (p *Player) TakeDamage(n int) int {
	if n <= 0 {
		return 0
	}
	taken := min(n, p.CurrentHP)
	p.CurrentHP -= taken
	return taken
}

// Heal restores up to n hit points and returns the amount restored.
func (p *Player) Heal(n int) int {
	if n <= 0 {
		return 0
	}
	healed := min(n, p.MaxHP-p.CurrentHP)
	p.CurrentHP += healed
	return healed
}

// HealFraction restores frac of MaxHP (at least 1) and returns the amount
// restored.
func (p *Player) HealFraction(frac float64) int {
	return p.Heal(max(1, int(float64(p.MaxHP)*frac)))
}

// AddGold adds n gold.
func (p *Player) AddGold(n int) {
	if n > 0 {
		p.Gold += n
	}
}

// LoseGold removes up to n gold and returns the amount removed.
func (p *Player) LoseGold(n int) int {
	lost := max(0, min(n, p.Gold))
	p.Gold -= lost
	return lost
}

// LoseXP removes up to n experience, flooring at 0. Levels are never lost.
func (p *Player) LoseXP(n int) int {
	lost := max(0, min(n, p.Experience))
	p.Experience -= lost
	return lost
}

// LevelUp describes one level gained.
type LevelUp struct {
	NewLevel int
	HPGain   int
}

// GainXP adds experience and applies every level-up it earns.
//
// Postcondition: Experience < XPForLevel(Level+1) unless Level == MaxLevel.
func (p *Player) GainXP(n int) []LevelUp {
	if n > 0 {
		p.Experience += n
	}
	var ups []LevelUp
	for p.Level < MaxLevel && p.Experience >= XPForLevel(p.Level+1) {
		p.Level++
		p.MaxHP += HPPerLevel
		p.Attack += AttackPerLevel
		p.Defense += DefensePerLevel
		p.CurrentHP = p.MaxHP
		ups = append(ups, LevelUp{NewLevel: p.Level, HPGain: HPPerLevel})
	}
	return ups
}

// AddConsumable stores one item in the pack.
func (p *Player) AddConsumable(name string) {
	p.Consumables[name]++
}

// TakeConsumable removes one item from the pack, reporting whether it was
// there.
func (p *Player) TakeConsumable(name string) bool {
	if p.Consumables[name] <= 0 {
		return false
	}
	p.Consumables[name]--
	if p.Consumables[name] == 0 {
		delete(p.Consumables, name)
	}
	return true
}

// EffectiveAttack returns Attack adjusted by active conditions, at least 1.
func (p *Player) EffectiveAttack() int {
	return max(1, p.Attack+condition.AttackBonus(p.Conditions))
}

// EffectiveDefense returns Defense adjusted by active conditions, at least 0.
func (p *Player) EffectiveDefense() int {
	return max(0, p.Defense+condition.DefenseBonus(p.Conditions))
}

// Power returns the player's aggregate for difficulty rating.
func (p *Player) Power() scaling.PowerStats {
	return scaling.PowerStats{Offense: p.EffectiveAttack(), Defense: p.EffectiveDefense(), HP: p.CurrentHP}
}
