package condition_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/crawl/internal/game/condition"
)

func TestRegistry_GetAndAll(t *testing.T) {
	reg := condition.NewRegistry()
	reg.Register(&condition.ConditionDef{ID: "b", DurationType: condition.DurationPermanent})
	reg.Register(&condition.ConditionDef{ID: "a", DurationType: condition.DurationPermanent})
	_, ok := reg.Get("missing")
	assert.False(t, ok)
	all := reg.All()
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ID)
}

func TestRegistry_Merge(t *testing.T) {
	reg := condition.Builtin()
	other := condition.NewRegistry()
	other.Register(&condition.ConditionDef{ID: condition.Poisoned, DurationType: condition.DurationMoves, Duration: 9})
	reg.Merge(other)
	def, ok := reg.Get(condition.Poisoned)
	require.True(t, ok)
	assert.Equal(t, 9, def.Duration)
	_, ok = reg.Get(condition.Weakened)
	assert.True(t, ok)
}

func TestDamageAt(t *testing.T) {
	def := &condition.ConditionDef{TickDamage: 1, TickDamageLevelDivisor: 5}
	assert.Equal(t, 1, def.DamageAt(4))
	assert.Equal(t, 21, def.DamageAt(100))
	assert.Equal(t, 0, (&condition.ConditionDef{TickDamageLevelDivisor: 5}).DamageAt(100))
}

func TestLoadDirectory_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	data := `
id: poisoned
name: Poisoned
description: "Venom burns."
duration_type: moves
duration: 5
tick_damage: 1
tick_damage_level_divisor: 5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "poisoned.yaml"), []byte(data), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	reg, err := condition.LoadDirectory(dir)
	require.NoError(t, err)
	def, ok := reg.Get("poisoned")
	require.True(t, ok)
	assert.Equal(t, 5, def.Duration)
	assert.Len(t, reg.All(), 1)
}

func TestLoadDirectory_RejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x.yaml"), []byte("id: x\nduration_type: permanent\nbogus: 1\n"), 0644))
	_, err := condition.LoadDirectory(dir)
	assert.Error(t, err)
}

func TestLoadDirectory_RejectsInvalidDuration(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x.yaml"), []byte("id: x\nduration_type: rounds\n"), 0644))
	_, err := condition.LoadDirectory(dir)
	assert.Error(t, err)
}

func TestLoadDirectory_MissingDir(t *testing.T) {
	_, err := condition.LoadDirectory(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestLoadDirectory_ShippedContent(t *testing.T) {
	reg, err := condition.LoadDirectory(filepath.Join("..", "..", "..", "content", "conditions"))
	require.NoError(t, err)
	def, ok := reg.Get(condition.Poisoned)
	require.True(t, ok)
	assert.Equal(t, 5, def.Duration)
}
