package character_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/crawl/internal/game/character"
	"github.com/cory-johannsen/crawl/internal/game/condition"
)

func TestNew(t *testing.T) {
	p := character.New("Wren")
	assert.Equal(t, "Wren", p.Name)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, p.MaxHP, p.CurrentHP)
	assert.NotEmpty(t, p.ID)
	assert.NotEqual(t, p.ID, character.New("Wren").ID)
}

func TestXPForLevel(t *testing.T) {
	assert.Equal(t, 0, character.XPForLevel(1))
	assert.Equal(t, 282, character.XPForLevel(2))
	assert.Equal(t, 800, character.XPForLevel(4))
}

func TestWound_NeverBelowOne(t *testing.T) {
	p := character.New("x")
	assert.Equal(t, p.MaxHP-1, p.Wound(1000))
	assert.Equal(t, 1, p.CurrentHP)
	assert.Zero(t, p.Wound(5))
	assert.True(t, p.IsAlive())
}

func TestTakeDamage_CanKill(t *testing.T) {
	p := character.New("x")
	p.TakeDamage(p.MaxHP + 10)
	assert.Zero(t, p.CurrentHP)
	assert.False(t, p.IsAlive())
}

func TestHeal_Capped(t *testing.T) {
	p := character.New("x")
	p.Wound(20)
	assert.Equal(t, 15, p.HealFraction(0.5))
	assert.Equal(t, 5, p.Heal(100))
	assert.Equal(t, p.MaxHP, p.CurrentHP)
	assert.Zero(t, p.HealFraction(0.5))
}

func TestGoldAndXPLoss(t *testing.T) {
	p := character.New("x")
	p.AddGold(50)
	assert.Equal(t, 50, p.LoseGold(80))
	assert.Zero(t, p.Gold)
	p.Experience = 30
	assert.Equal(t, 30, p.LoseXP(150))
	assert.Zero(t, p.Experience)
}

func TestGainXP_MultipleLevels(t *testing.T) {
	p := character.New("x")
	ups := p.GainXP(character.XPForLevel(4))
	require.Len(t, ups, 3)
	assert.Equal(t, 4, p.Level)
	assert.Equal(t, 30+3*character.HPPerLevel, p.MaxHP)
	assert.Equal(t, p.MaxHP, p.CurrentHP)
	assert.Equal(t, 5+3*character.AttackPerLevel, p.Attack)
}

func TestConsumables(t *testing.T) {
	p := character.New("x")
	assert.False(t, p.TakeConsumable("antidote"))
	p.AddConsumable("antidote")
	p.AddConsumable("antidote")
	assert.True(t, p.TakeConsumable("antidote"))
	assert.Equal(t, 1, p.Consumables["antidote"])
	assert.True(t, p.TakeConsumable("antidote"))
	assert.NotContains(t, p.Consumables, "antidote")
}

func TestEffectiveStatsUseConditions(t *testing.T) {
	p := character.New("x")
	weak, ok := condition.Builtin().Get(condition.Weakened)
	require.True(t, ok)
	require.NoError(t, p.Conditions.Apply(weak, 1, 0))
	assert.Equal(t, 3, p.EffectiveAttack())
	assert.Equal(t, 2, p.EffectiveDefense())
	assert.Equal(t, 3, p.Power().Offense)
}

func TestPropertyHPStaysInRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := character.New("x")
		ops := rapid.SliceOf(rapid.IntRange(-50, 50)).Draw(t, "ops")
		for _, n := range ops {
			if n < 0 {
				p.Wound(-n)
			} else {
				p.Heal(n)
			}
			require.GreaterOrEqual(t, p.CurrentHP, 1)
			require.LessOrEqual(t, p.CurrentHP, p.MaxHP)
		}
	})
}
