package npc

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/crawl/internal/game/dice"
	"github.com/cory-johannsen/crawl/internal/game/scaling"
)

// GoldDrop is the gold a monster carries. PerLevel is added once for every
// monster level above 1, so deeper copies of a template pay more.
type GoldDrop struct {
	Min      int `yaml:"min"`
	Max      int `yaml:"max"`
	PerLevel int `yaml:"per_level"`
}

// Drop is a consumable a monster may leave behind.
type Drop struct {
	Item   string  `yaml:"item"`
	Chance float64 `yaml:"chance"`
	Min    int     `yaml:"min"`
	Max    int     `yaml:"max"`
}

// LootTable is what a slain monster yields.
type LootTable struct {
	Gold  *GoldDrop `yaml:"gold"`
	Drops []Drop    `yaml:"drops"`
}

// Validate reports every problem in the table at once. An empty table is
// valid.
func (lt *LootTable) Validate() error {
	var errs []error
	if g := lt.Gold; g != nil {
		if g.Min < 0 || g.PerLevel < 0 {
			errs = append(errs, fmt.Errorf("gold: min and per_level must be >= 0"))
		}
		if g.Min > g.Max {
			errs = append(errs, fmt.Errorf("gold: min %d exceeds max %d", g.Min, g.Max))
		}
	}
	for i, d := range lt.Drops {
		if !scaling.IsConsumable(d.Item) {
			errs = append(errs, fmt.Errorf("drops[%d]: unknown item %q", i, d.Item))
		}
		if d.Chance <= 0 || d.Chance > 1 {
			errs = append(errs, fmt.Errorf("drops[%d]: chance %v outside (0, 1]", i, d.Chance))
		}
		if d.Min < 1 || d.Min > d.Max {
			errs = append(errs, fmt.Errorf("drops[%d]: quantity range [%d, %d] invalid", i, d.Min, d.Max))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("loot table: %w", err)
	}
	return nil
}

// LootItem is one stack of a dropped consumable.
type LootItem struct {
	ItemID   string
	Quantity int
}

// Loot is what one kill yielded.
type Loot struct {
	Gold  int
	Items []LootItem
}

// GenerateLoot rolls lt for a monster of the given level. Gold is drawn
// first, then one chance roll per drop in table order.
//
// Precondition: lt passed Validate and level >= 1.
func GenerateLoot(lt LootTable, level int, src dice.Source) Loot {
	var out Loot
	if g := lt.Gold; g != nil && g.Max > 0 {
		out.Gold = dice.Between(src, g.Min, g.Max) + g.PerLevel*(max(level, 1)-1)
	}
	for _, d := range lt.Drops {
		if !dice.Chance(src, d.Chance) {
			continue
		}
		out.Items = append(out.Items, LootItem{ItemID: d.Item, Quantity: dice.Between(src, d.Min, d.Max)})
	}
	return out
}
