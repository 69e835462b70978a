package condition

import "slices"

// penalty sums pick over every active condition, scaled by stacks, and
// returns it as a non-positive modifier.
func penalty(s *ActiveSet, pick func(*ConditionDef) int) int {
	total := 0
	for _, ac := range s.conditions {
		total += max(0, pick(ac.Def)) * ac.Stacks
	}
	return -total
}

// AttackBonus is the attack modifier imposed by active conditions.
//
// Postcondition: Returns <= 0.
func AttackBonus(s *ActiveSet) int {
	return penalty(s, func(d *ConditionDef) int { return d.AttackPenalty })
}

// DefenseBonus is the defense modifier imposed by active conditions.
//
// Postcondition: Returns <= 0.
func DefenseBonus(s *ActiveSet) int {
	return penalty(s, func(d *ConditionDef) int { return d.DefensePenalty })
}

// IsActionRestricted reports whether any active condition forbids action.
func IsActionRestricted(s *ActiveSet, action string) bool {
	for _, ac := range s.conditions {
		if slices.Contains(ac.Def.RestrictActions, action) {
			return true
		}
	}
	return false
}
