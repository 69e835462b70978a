package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/crawl/internal/game/dice"
	"github.com/cory-johannsen/crawl/internal/game/dungeon"
)

// RareEncounterHook is the Lua global called on every first visit to a room.
const RareEncounterHook = "try_rare_encounter"

// defaultRareMessage is shown when the hook returns true instead of text.
const defaultRareMessage = "Something ancient stirs in the dark, watches you, and passes by."

// RareEncounters adapts a Manager to the exploration rare-encounter contract.
type RareEncounters struct {
	mgr    *Manager
	logger *zap.Logger
}

// NewRareEncounters wraps mgr.
//
// Precondition: mgr and logger must be non-nil.
func NewRareEncounters(mgr *Manager, logger *zap.Logger) *RareEncounters {
	return &RareEncounters{mgr: mgr, logger: logger}
}

// TryRareEncounter calls try_rare_encounter(level, theme, roll) where roll
// is a uniform draw in [0,1) taken from src. A string result is the
// encounter's message; true yields a generic message; anything else, a
// missing hook, or a Lua error means no encounter.
//
// Postcondition: Exactly one draw is taken from src when the hook exists.
func (r *RareEncounters) TryRareEncounter(level int, theme dungeon.Theme, src dice.Source) (string, bool) {
	if !r.mgr.HasHook(RareEncounterHook) {
		return "", false
	}
	roll := float64(src.Intn(10000)) / 10000
	ret, err := r.mgr.CallHook(RareEncounterHook, src,
		lua.LNumber(level), lua.LString(theme.String()), lua.LNumber(roll))
	if err != nil {
		return "", false
	}
	switch v := ret.(type) {
	case lua.LString:
		if v == "" {
			return "", false
		}
		r.logger.Debug("rare encounter", zap.Int("level", level), zap.Stringer("theme", theme))
		return string(v), true
	case lua.LBool:
		if bool(v) {
			return defaultRareMessage, true
		}
	}
	return "", false
}
