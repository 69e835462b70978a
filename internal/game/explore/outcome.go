package explore

import (
	"fmt"

	"github.com/cory-johannsen/crawl/internal/game/character"
	"github.com/cory-johannsen/crawl/internal/game/combat"
	"github.com/cory-johannsen/crawl/internal/game/dungeon"
	"github.com/cory-johannsen/crawl/internal/game/scaling"
)

// Outcome reports everything an accepted action did, in the order it
// happened. Messages carry the narration; the typed fields let callers and
// tests react without parsing text.
type Outcome struct {
	Messages []string

	// Arrived is set when the cursor moved onto a room.
	Arrived    bool
	FirstVisit bool

	Trap *scaling.TrapOutcome
	Seal *dungeon.SealType
	// EventTriggered is set when a mandatory event fired on entry.
	EventTriggered bool
	RareEncounter  string

	// Dangerous is set when the room still holds monsters after the move;
	// Difficulty is meaningful only then.
	Dangerous  bool
	Difficulty scaling.Difficulty
	Ambushed   bool

	Combat   *combat.Result
	Defeated bool

	Reward   scaling.Reward
	Healed   int
	Damage   int
	LevelUps []character.LevelUp

	// NewFloor is set when the action loaded a different depth.
	NewFloor bool
}

func (o *Outcome) say(format string, args ...any) {
	o.Messages = append(o.Messages, fmt.Sprintf(format, args...))
}

// merge folds a reward into the running total.
func (o *Outcome) merge(r scaling.Reward) {
	o.Reward.Gold += r.Gold
	o.Reward.XP += r.XP
	o.Reward.Consumables = append(o.Reward.Consumables, r.Consumables...)
}
