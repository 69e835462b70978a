package combat

import "github.com/cory-johannsen/crawl/internal/game/dice"

// AttackResult is one swing: the d20 attack roll and the damage roll, both
// carrying the attacker's bonus of attack/2.
type AttackResult struct {
	AttackerID string
	TargetID   string
	Attack     dice.RollResult
	Damage     dice.RollResult
	Outcome    Outcome
}

// EffectiveDamage is the damage roll scaled by the outcome tier.
//
// Postcondition: Returns >= 0.
func (r AttackResult) EffectiveDamage() int {
	return max(0, r.Damage.Total()) * damageMultiplier[r.Outcome]
}

// ResolveAttack rolls d20+bonus against the target's armor class and then
// d6+bonus damage. Exactly two draws are consumed, even on a miss.
//
// Precondition: attacker and target are alive.
func ResolveAttack(attacker, target *Combatant, src dice.Source) AttackResult {
	bonus := max(0, attacker.Attack/2)
	atk := dice.Roll(dice.Expression{Count: 1, Sides: 20, Modifier: bonus}, src)
	dmg := dice.Roll(dice.Expression{Count: 1, Sides: 6, Modifier: bonus}, src)
	return AttackResult{
		AttackerID: attacker.ID,
		TargetID:   target.ID,
		Attack:     atk,
		Damage:     dmg,
		Outcome:    OutcomeFor(atk.Total(), target.ArmorClass()),
	}
}
