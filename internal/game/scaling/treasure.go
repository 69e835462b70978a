package scaling

import "github.com/cory-johannsen/crawl/internal/game/dice"

const consumableChance = 0.30

// Consumables that treasure may contain.
const (
	HealingDraught = "healing draught"
	Antidote       = "antidote"
)

var consumablePool = []string{HealingDraught, HealingDraught, Antidote}

// IsConsumable reports whether id names a consumable the player can carry.
func IsConsumable(id string) bool {
	return id == HealingDraught || id == Antidote
}

// Reward is gold, experience and items granted to the player.
type Reward struct {
	Gold        int
	XP          int
	Consumables []string
}

// RollTreasure rolls the contents of a room's treasure at level.
//
// Postcondition: Gold in [level*100, level*300]; XP in [level*50,
// level*50+100]; zero to two consumables.
func RollTreasure(level int, src dice.Source) Reward {
	r := Reward{
		Gold: level*100 + dice.Between(src, 0, level*200),
		XP:   level*50 + dice.Between(src, 0, 100),
	}
	if dice.Chance(src, consumableChance) {
		n := dice.Between(src, 1, 2)
		for i := 0; i < n; i++ {
			r.Consumables = append(r.Consumables, consumablePool[src.Intn(len(consumablePool))])
		}
	}
	return r
}

// BossBonus rolls the extra reward for clearing a boss room at level.
func BossBonus(level int, src dice.Source) Reward {
	return Reward{
		Gold: level*500 + dice.Between(src, 0, 1000),
		XP:   level * 300,
	}
}

// EventReward is the fixed reward for solving a riddle or puzzle at level.
func EventReward(level int) Reward {
	return Reward{Gold: level * 50, XP: level * 25}
}

// EventPenalty rolls the damage for a wrong riddle or puzzle answer.
func EventPenalty(level int, src dice.Source) int {
	return level*2 + dice.Between(src, 0, 5)
}
