package combat

import (
	"fmt"

	"github.com/cory-johannsen/crawl/internal/game/dice"
)

// RoundEvent records what happened when one combatant acted.
type RoundEvent struct {
	AttackResult *AttackResult
	ActorID      string
	ActorName    string
	TargetName   string
	Damage       int
	Narrative    string
}

// Combat is one fight in progress.
type Combat struct {
	// Combatants is in acting order.
	Combatants []*Combatant
	Round      int
}

// Living returns the combatants still standing on the requested side.
func (c *Combat) Living(playerSide bool) []*Combatant {
	var out []*Combatant
	for _, cb := range c.Combatants {
		if !cb.IsDead() && cb.IsPlayerSide() == playerSide {
			out = append(out, cb)
		}
	}
	return out
}

// Over reports whether one side has been wiped out or the player has fallen.
func (c *Combat) Over() bool {
	for _, cb := range c.Combatants {
		if cb.Kind == KindPlayer && cb.IsDead() {
			return true
		}
	}
	return len(c.Living(true)) == 0 || len(c.Living(false)) == 0
}

// ResolveRound lets every living combatant attack once in acting order.
// The player's side strikes the first living monster; each monster strikes a
// random living member of the player's side.
//
// Precondition: c and src must not be nil.
// Postcondition: Returns one event per action taken; damage is applied in
// place. Round is incremented.
func ResolveRound(c *Combat, src dice.Source) []RoundEvent {
	c.Round++
	var events []RoundEvent
	for _, actor := range c.Combatants {
		if actor.IsDead() || c.Over() {
			continue
		}
		foes := c.Living(!actor.IsPlayerSide())
		target := foes[0]
		if !actor.IsPlayerSide() && len(foes) > 1 {
			target = foes[src.Intn(len(foes))]
		}
		r := ResolveAttack(actor, target, src)
		dmg := r.EffectiveDamage()
		target.ApplyDamage(dmg)

		narrative := fmt.Sprintf("%s attacks %s: %s.", actor.Name, target.Name, r.Outcome)
		if dmg > 0 {
			narrative = fmt.Sprintf("%s attacks %s: %s for %d damage.", actor.Name, target.Name, r.Outcome, dmg)
		}
		if target.IsDead() {
			narrative += fmt.Sprintf(" %s falls.", target.Name)
		}
		events = append(events, RoundEvent{
			AttackResult: &r,
			ActorID:      actor.ID,
			ActorName:    actor.Name,
			TargetName:   target.Name,
			Damage:       dmg,
			Narrative:    narrative,
		})
	}
	return events
}
