package scripting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/crawl/internal/game/dice"
	"github.com/cory-johannsen/crawl/internal/game/dungeon"
	"github.com/cory-johannsen/crawl/internal/scripting"
)

func newRare(t *testing.T, src string) *scripting.RareEncounters {
	t.Helper()
	mgr, _ := newTestManager(t, 0)
	if src != "" {
		require.NoError(t, mgr.Load(writeTempLua(t, "rare.lua", src)))
	}
	return scripting.NewRareEncounters(mgr, zap.NewNop())
}

func TestRareEncounters_NoHook(t *testing.T) {
	rare := newRare(t, "")
	msg, ok := rare.TryRareEncounter(3, dungeon.ThemeCaverns, dice.NewSeededSource(1))
	assert.False(t, ok)
	assert.Empty(t, msg)
}

func TestRareEncounters_StringResult(t *testing.T) {
	rare := newRare(t, `
		function try_rare_encounter(level, theme, roll)
			return theme .. " at " .. level
		end
	`)
	msg, ok := rare.TryRareEncounter(7, dungeon.ThemeSewers, dice.NewSeededSource(1))
	assert.True(t, ok)
	assert.Equal(t, "Sewers at 7", msg)
}

func TestRareEncounters_BoolResult(t *testing.T) {
	rare := newRare(t, `function try_rare_encounter() return true end`)
	msg, ok := rare.TryRareEncounter(1, dungeon.ThemeCrypts, dice.NewSeededSource(1))
	assert.True(t, ok)
	assert.NotEmpty(t, msg)

	rare = newRare(t, `function try_rare_encounter() return false end`)
	_, ok = rare.TryRareEncounter(1, dungeon.ThemeCrypts, dice.NewSeededSource(1))
	assert.False(t, ok)
}

func TestRareEncounters_RollInUnitRange(t *testing.T) {
	rare := newRare(t, `
		function try_rare_encounter(level, theme, roll)
			if roll >= 0 and roll < 1 then return "ok" end
			return nil
		end
	`)
	src := dice.NewSeededSource(42)
	for i := 0; i < 50; i++ {
		_, ok := rare.TryRareEncounter(1, dungeon.ThemeRuins, src)
		require.True(t, ok)
	}
}

func TestRareEncounters_ErrorMeansNone(t *testing.T) {
	rare := newRare(t, `function try_rare_encounter() error("nope") end`)
	_, ok := rare.TryRareEncounter(1, dungeon.ThemeAbyss, dice.NewSeededSource(1))
	assert.False(t, ok)
}
