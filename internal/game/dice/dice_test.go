package dice_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/crawl/internal/game/dice"
)

// fixedSource always returns val, clamped to n-1.
type fixedSource struct{ val int }

func (f *fixedSource) Intn(n int) int {
	if f.val >= n {
		return n - 1
	}
	return f.val
}

func TestRollResult_String(t *testing.T) {
	r := dice.RollResult{Expression: dice.Expression{Count: 2, Sides: 6, Modifier: 3}, Dice: []int{4, 5}}
	assert.Equal(t, 12, r.Total())
	assert.Equal(t, "2d6+3: 4+5+3 = 12", r.String())

	r = dice.RollResult{Expression: dice.Expression{Count: 1, Sides: 20, Modifier: -2}, Dice: []int{1}}
	assert.Equal(t, "d20-2: 1-2 = -1", r.String())
}

func TestExpression_StringRoundTrips(t *testing.T) {
	for _, in := range []string{"d20", "2d6", "2d6+3", "4d8-2"} {
		e := dice.MustParse(in)
		assert.Equal(t, in, e.String())
	}
	e := dice.MustParse(" 3D4+1 ")
	assert.Equal(t, 4, e.Min())
	assert.Equal(t, 13, e.Max())
}

func TestParse(t *testing.T) {
	cases := []struct {
		in    string
		count int
		sides int
		mod   int
	}{
		{"d20", 1, 20, 0},
		{"2d6", 2, 6, 0},
		{"2d6+3", 2, 6, 3},
		{"4D8-2", 4, 8, -2},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			e, err := dice.Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.count, e.Count)
			assert.Equal(t, tc.sides, e.Sides)
			assert.Equal(t, tc.mod, e.Modifier)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "6", "0d6", "2d1", "xd6", "2d6+x", "2d6+", "d", "101d6", "2d6+1+1"} {
		_, err := dice.Parse(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { dice.MustParse("bogus") })
}

func TestRoll_MaxDice(t *testing.T) {
	res := dice.Roll(dice.MustParse("3d6+1"), &fixedSource{val: 99})
	assert.Equal(t, []int{6, 6, 6}, res.Dice)
	assert.Equal(t, 19, res.Total())
}

func TestRoll_Property_TotalInRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(1, 10).Draw(rt, "count")
		sides := rapid.IntRange(2, 20).Draw(rt, "sides")
		seed := rapid.Int64().Draw(rt, "seed")
		mod := rapid.IntRange(-5, 5).Draw(rt, "mod")
		e := dice.Expression{Count: count, Sides: sides, Modifier: mod}
		total := dice.Roll(e, dice.NewSeededSource(seed)).Total()
		assert.GreaterOrEqual(rt, total, e.Min())
		assert.LessOrEqual(rt, total, e.Max())
	})
}

func TestBetween_Property_ClosedRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lo := rapid.IntRange(-100, 100).Draw(rt, "lo")
		span := rapid.IntRange(0, 500).Draw(rt, "span")
		src := dice.NewSeededSource(rapid.Int64().Draw(rt, "seed"))
		v := dice.Between(src, lo, lo+span)
		assert.GreaterOrEqual(rt, v, lo)
		assert.LessOrEqual(rt, v, lo+span)
	})
}

func TestChance_Bounds(t *testing.T) {
	src := dice.NewSeededSource(7)
	for i := 0; i < 500; i++ {
		assert.False(t, dice.Chance(src, 0))
		assert.True(t, dice.Chance(src, 1))
	}
}

func TestChance_Threshold(t *testing.T) {
	// Intn(10000) returns 2999: below the 0.30 threshold of 3000.
	assert.True(t, dice.Chance(&fixedSource{val: 2999}, 0.30))
	assert.False(t, dice.Chance(&fixedSource{val: 3000}, 0.30))
}

func TestSeededSource_Reproducible(t *testing.T) {
	a := dice.NewSeededSource(42)
	b := dice.NewSeededSource(42)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Intn(1000), b.Intn(1000))
	}
	assert.Equal(t, int64(42), a.Seed())
}

func TestSources_PanicOnZero(t *testing.T) {
	assert.Panics(t, func() { dice.NewSeededSource(1).Intn(0) })
	assert.Panics(t, func() { dice.NewCryptoSource().Intn(0) })
}

func TestRandomSeed_Positive(t *testing.T) {
	assert.Greater(t, dice.RandomSeed(), int64(0))
}

func TestRoller_LogsRolls(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	roller := dice.NewLoggedRoller(&fixedSource{val: 2}, zap.New(core))

	res, err := roller.RollExpr("2d6+1")
	require.NoError(t, err)
	assert.Equal(t, 7, res.Total())

	entries := logs.FilterMessage("dice roll").All()
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].ContextMap()["roll"].(string), "2d6+1: 3+3+1"))

	_, err = roller.RollExpr("nope")
	assert.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("dice expression rejected").Len())
}
