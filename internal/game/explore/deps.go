package explore

import (
	"github.com/cory-johannsen/crawl/internal/game/character"
	"github.com/cory-johannsen/crawl/internal/game/combat"
	"github.com/cory-johannsen/crawl/internal/game/dice"
	"github.com/cory-johannsen/crawl/internal/game/dungeon"
	"github.com/cory-johannsen/crawl/internal/game/npc"
)

// FloorGenerator builds a floor for a depth. *dungeon.Generator implements it.
type FloorGenerator interface {
	Generate(level int, src dice.Source, opts dungeon.GenerateOptions) *dungeon.Floor
}

// MonsterSupply produces the monsters guarding a room. *npc.Supply
// implements it.
type MonsterSupply interface {
	GenerateMonsterGroup(level int, theme dungeon.Theme, boss bool, src dice.Source) []*npc.Instance
}

// CombatResolver fights an encounter to an outcome. The session reacts only
// to Victory and Defeated. *combat.AutoResolver implements it.
type CombatResolver interface {
	ResolveCombat(player *character.Player, monsters []*npc.Instance, allies []*combat.Combatant, src dice.Source) combat.Result
}

// Story owns narrative flags and seal bookkeeping. *story.Tracker
// implements it.
type Story interface {
	HasFlag(flag string) bool
	SetFlag(flag string)
	CollectSeal(seal dungeon.SealType, player *character.Player)
	SealForLevel(level int) *dungeon.SealType
}

// RareEncounters is consulted on every first room visit.
// *scripting.RareEncounters implements it.
type RareEncounters interface {
	TryRareEncounter(level int, theme dungeon.Theme, src dice.Source) (string, bool)
}
