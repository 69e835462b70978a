package combat

import (
	"sort"

	"github.com/cory-johannsen/crawl/internal/game/dice"
)

// RollInitiative rolls d20 + InitBonus for every combatant and sorts them
// into acting order, highest first. Ties keep the player's side first and
// then the original order.
//
// Precondition: combatants must be non-nil; src must be non-nil.
// Postcondition: combatants is sorted by descending Initiative.
func RollInitiative(combatants []*Combatant, src dice.Source) {
	for _, c := range combatants {
		c.Initiative = src.Intn(20) + 1 + c.InitBonus
	}
	sort.SliceStable(combatants, func(i, j int) bool {
		a, b := combatants[i], combatants[j]
		if a.Initiative != b.Initiative {
			return a.Initiative > b.Initiative
		}
		return a.IsPlayerSide() && !b.IsPlayerSide()
	})
}
