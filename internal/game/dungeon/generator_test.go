package dungeon

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/crawl/internal/game/dice"
)

func genFloor(t *rapid.T, params Params) *Floor {
	level := rapid.IntRange(1, params.MaxLevel).Draw(t, "level")
	seed := rapid.Int64().Draw(t, "seed")
	var opts GenerateOptions
	if rapid.Bool().Draw(t, "with_seal") {
		s := AllSeals[rapid.IntRange(0, len(AllSeals)-1).Draw(t, "seal")]
		opts.Seal = &s
	}
	return NewGenerator(params, zap.NewNop()).Generate(level, dice.NewSeededSource(seed), opts)
}

func TestPropertyGeneratedFloorsAreValid(t *testing.T) {
	params := DefaultParams()
	rapid.Check(t, func(t *rapid.T) {
		f := genFloor(t, params)
		require.NoError(t, f.Validate(params.MaxLevel))
		assert.GreaterOrEqual(t, len(f.Rooms), params.MinRooms)
		assert.LessOrEqual(t, len(f.Rooms), params.MaxRooms)
		assert.Equal(t, EntranceID, f.Entrance)
		assert.Equal(t, EntranceID, f.Current)
		assert.Equal(t, DangerLevelFor(f.Level), f.DangerLevel)
	})
}

func TestPropertyCoordinatesAreGridConsistent(t *testing.T) {
	params := DefaultParams()
	rapid.Check(t, func(t *rapid.T) {
		f := genFloor(t, params)
		pos := f.Coordinates()
		require.Len(t, pos, len(f.Rooms))
		seen := make(map[Point]RoomID, len(pos))
		for id, p := range pos {
			other, dup := seen[p]
			require.False(t, dup, "rooms %d and %d share %v", id, other, p)
			seen[p] = id
		}
		for id, room := range f.Rooms {
			for dir, exit := range room.Exits {
				dx, dy := dir.delta()
				assert.Equal(t, Point{pos[id].X + dx, pos[id].Y + dy}, pos[exit.Target])
			}
		}
	})
}

func TestPropertyExitsArePaired(t *testing.T) {
	params := DefaultParams()
	rapid.Check(t, func(t *rapid.T) {
		f := genFloor(t, params)
		for _, id := range f.RoomIDs() {
			for dir, e := range f.Rooms[id].Exits {
				back, ok := f.Rooms[e.Target].Exits[dir.Opposite()]
				require.True(t, ok, "room %d %s has no return exit", id, dir)
				assert.Equal(t, id, back.Target)
			}
		}
	})
}

func TestPropertySpecialRooms(t *testing.T) {
	params := DefaultParams()
	rapid.Check(t, func(t *rapid.T) {
		f := genFloor(t, params)
		entrance := f.Rooms[EntranceID]
		assert.False(t, entrance.HasMonsters)
		assert.False(t, entrance.HasTrap)
		assert.False(t, entrance.HasEvent)
		assert.False(t, entrance.HasStairsDown)

		boss := f.BossRoom()
		require.NotNil(t, boss, "boss interval 1 puts a boss on every floor")
		assert.True(t, boss.HasMonsters)
		assert.False(t, boss.HasTreasure)
		assert.False(t, boss.HasTrap)
		assert.Equal(t, 3, boss.DangerRating)

		dist := f.Distances(EntranceID)
		var ds []int
		for id, d := range dist {
			if id != EntranceID {
				ds = append(ds, d)
			}
		}
		sort.Sort(sort.Reverse(sort.IntSlice(ds)))
		assert.GreaterOrEqual(t, dist[boss.ID], ds[min(2, len(ds)-1)], "boss is among the three farthest rooms")

		stairs := f.StairsRooms()
		if f.Level < params.MaxLevel {
			require.Len(t, stairs, 1)
			assert.False(t, stairs[0].IsBossRoom)
		} else {
			assert.Empty(t, stairs)
		}

		for _, r := range f.Rooms {
			if r.Type.HasMandatoryEvent() {
				assert.True(t, r.HasPendingEvent(), "room %d of type %s lacks its event", r.ID, r.Type)
			}
			assert.False(t, r.IsExplored)
			assert.LessOrEqual(t, len(r.Features), maxFeaturesPerRoom)
		}
	})
}

func TestPropertySealReservation(t *testing.T) {
	params := DefaultParams()
	rapid.Check(t, func(t *rapid.T) {
		f := genFloor(t, params)
		if f.Seal == nil {
			assert.False(t, f.HasUncollectedSeal)
			return
		}
		assert.True(t, f.HasUncollectedSeal)
		assert.False(t, f.SealCollected)
		carrier := false
		for _, r := range f.Rooms {
			carrier = carrier || r.Type.SealEligible() || r.IsBossRoom
		}
		assert.True(t, carrier)
	})
}

func TestPropertyGenerationIsReproducible(t *testing.T) {
	params := DefaultParams()
	rapid.Check(t, func(t *rapid.T) {
		level := rapid.IntRange(1, params.MaxLevel).Draw(t, "level")
		seed := rapid.Int64().Draw(t, "seed")
		g := NewGenerator(params, zap.NewNop())
		a := g.Generate(level, dice.NewSeededSource(seed), GenerateOptions{})
		b := g.Generate(level, dice.NewSeededSource(seed), GenerateOptions{})
		assert.Equal(t, a, b)
	})
}

func TestGenerate_ForcedTheme(t *testing.T) {
	g := NewGenerator(DefaultParams(), zaptest.NewLogger(t))
	theme := ThemeAbyss
	f := g.Generate(7, dice.NewSeededSource(3), GenerateOptions{Theme: &theme})
	assert.Equal(t, ThemeAbyss, f.Theme)
	assert.Equal(t, "Abyss Entrance", f.Rooms[EntranceID].Name)
}

func TestGenerate_ClampsLevel(t *testing.T) {
	g := NewGenerator(DefaultParams(), zaptest.NewLogger(t))
	f := g.Generate(0, dice.NewSeededSource(1), GenerateOptions{})
	assert.Equal(t, 1, f.Level)
}

func TestGenerate_BossInterval(t *testing.T) {
	params := DefaultParams()
	params.BossInterval = 5
	g := NewGenerator(params, zaptest.NewLogger(t))
	assert.Nil(t, g.Generate(4, dice.NewSeededSource(9), GenerateOptions{}).BossRoom())
	assert.NotNil(t, g.Generate(5, dice.NewSeededSource(9), GenerateOptions{}).BossRoom())
}

func TestGenerate_RoomCountGrowsWithDepth(t *testing.T) {
	params := DefaultParams()
	params.MaxRooms = 100
	g := NewGenerator(params, zaptest.NewLogger(t))
	f := g.Generate(80, dice.NewSeededSource(5), GenerateOptions{})
	assert.GreaterOrEqual(t, len(f.Rooms), params.MinRooms+80/8)
	assert.LessOrEqual(t, len(f.Rooms), params.MinRooms+3+80/8)
}

func TestReserveSeal_ConvertsPlainRoom(t *testing.T) {
	g := NewGenerator(DefaultParams(), zaptest.NewLogger(t))
	f := lineFloor()
	g.reserveSeal(f, SealGale, dice.NewSeededSource(1))
	require.NotNil(t, f.Seal)
	assert.Equal(t, SealGale, *f.Seal)
	assert.True(t, f.HasUncollectedSeal)
	assert.Equal(t, RoomShrine, f.Rooms[1].Type, "the only chamber without stairs becomes the shrine")
	assert.Equal(t, RoomChamber, f.Rooms[2].Type)
	assert.NoError(t, f.Validate(100))
}

func TestReserveSeal_FallsBackToBoss(t *testing.T) {
	g := NewGenerator(DefaultParams(), zaptest.NewLogger(t))
	f := lineFloor()
	f.Rooms[1].Type = RoomArmory
	f.Rooms[2].IsBossRoom = true
	f.Rooms[2].HasMonsters = true
	g.reserveSeal(f, SealVoid, dice.NewSeededSource(1))
	assert.Equal(t, RoomArmory, f.Rooms[1].Type)
	assert.NoError(t, f.Validate(100))
}

func TestReserveSeal_KeepsEligibleRoom(t *testing.T) {
	g := NewGenerator(DefaultParams(), zaptest.NewLogger(t))
	f := lineFloor()
	f.Rooms[1].Type = RoomLoreLibrary
	g.reserveSeal(f, SealStone, dice.NewSeededSource(1))
	assert.Equal(t, RoomChamber, f.Rooms[2].Type)
	assert.Equal(t, RoomLoreLibrary, f.Rooms[1].Type)
}
