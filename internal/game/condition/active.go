package condition

import (
	"fmt"
	"sort"
)

// ActiveCondition tracks one applied condition on the player.
type ActiveCondition struct {
	Def            *ConditionDef
	Stacks         int
	MovesRemaining int // -1 = permanent
}

// ActiveSet tracks all conditions currently applied to the player.
// It is not safe for concurrent use; the owning session serialises access.
type ActiveSet struct {
	conditions map[string]*ActiveCondition
}

// NewActiveSet creates an empty ActiveSet.
func NewActiveSet() *ActiveSet {
	return &ActiveSet{conditions: make(map[string]*ActiveCondition)}
}

// Apply adds or refreshes a condition. moves of 0 uses def.Duration;
// permanent conditions always store -1.
//
// Precondition: def must not be nil.
// Postcondition: Has(def.ID) is true; stacks are incremented on re-apply
// (capped at MaxStacks, 1 when unstackable); MovesRemaining becomes
// max(existing, moves).
func (s *ActiveSet) Apply(def *ConditionDef, stacks, moves int) error {
	if def == nil {
		return fmt.Errorf("Apply: def must not be nil")
	}
	switch {
	case def.DurationType == DurationPermanent:
		moves = -1
	case moves == 0:
		moves = def.Duration
	}

	capStacks := func(n int) int {
		if def.MaxStacks == 0 {
			return 1
		}
		return max(1, min(n, def.MaxStacks))
	}

	if existing, ok := s.conditions[def.ID]; ok {
		existing.Stacks = capStacks(existing.Stacks + stacks)
		if moves > existing.MovesRemaining {
			existing.MovesRemaining = moves
		}
		return nil
	}
	s.conditions[def.ID] = &ActiveCondition{Def: def, Stacks: capStacks(stacks), MovesRemaining: moves}
	return nil
}

// Remove deletes the condition with the given ID from the set.
//
// Postcondition: Has(id) is false.
func (s *ActiveSet) Remove(id string) {
	delete(s.conditions, id)
}

// Clear removes every condition.
func (s *ActiveSet) Clear() {
	clear(s.conditions)
}

// TickResult is the aggregate effect of one Tick.
type TickResult struct {
	Damage  int
	Expired []string
}

// Tick applies one move's worth of condition effects at level: every
// active condition deals its tick damage, then "moves" conditions count
// down and those reaching 0 are removed.
//
// Postcondition: For every id in Expired, Has(id) is false. Expired is
// ordered by id.
func (s *ActiveSet) Tick(level int) TickResult {
	var res TickResult
	for _, ac := range s.All() {
		res.Damage += ac.Def.DamageAt(level) * ac.Stacks
		if ac.MovesRemaining < 0 {
			continue
		}
		ac.MovesRemaining--
		if ac.MovesRemaining <= 0 {
			res.Expired = append(res.Expired, ac.Def.ID)
			delete(s.conditions, ac.Def.ID)
		}
	}
	return res
}

// Has reports whether the condition with id is currently active.
func (s *ActiveSet) Has(id string) bool {
	_, ok := s.conditions[id]
	return ok
}

// Stacks returns the current stack count for condition id, or 0 if not present.
func (s *ActiveSet) Stacks(id string) int {
	if ac, ok := s.conditions[id]; ok {
		return ac.Stacks
	}
	return 0
}

// All returns the active conditions ordered by id. The pointed-to values are
// shared; callers must not modify them.
func (s *ActiveSet) All() []*ActiveCondition {
	out := make([]*ActiveCondition, 0, len(s.conditions))
	for _, ac := range s.conditions {
		out = append(out, ac)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Def.ID < out[j].Def.ID })
	return out
}
