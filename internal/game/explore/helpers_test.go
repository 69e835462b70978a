package explore_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/crawl/internal/game/character"
	"github.com/cory-johannsen/crawl/internal/game/combat"
	"github.com/cory-johannsen/crawl/internal/game/dice"
	"github.com/cory-johannsen/crawl/internal/game/dungeon"
	"github.com/cory-johannsen/crawl/internal/game/explore"
	"github.com/cory-johannsen/crawl/internal/game/npc"
)

// scriptSource replays vals in order, then returns def forever. Every value
// is clamped into [0, n).
type scriptSource struct {
	vals  []int
	def   int
	draws int
}

func (s *scriptSource) Intn(n int) int {
	s.draws++
	v := s.def
	if len(s.vals) > 0 {
		v, s.vals = s.vals[0], s.vals[1:]
	}
	return max(0, min(v, n-1))
}

// never makes every Chance roll fail.
func never() *scriptSource { return &scriptSource{def: 1 << 30} }

// always makes every Chance roll succeed.
func always() *scriptSource { return &scriptSource{def: 0} }

type fakeGenerator struct {
	floors map[int]func() *dungeon.Floor
	calls  []int
	opts   []dungeon.GenerateOptions
}

func (g *fakeGenerator) Generate(level int, _ dice.Source, opts dungeon.GenerateOptions) *dungeon.Floor {
	g.calls = append(g.calls, level)
	g.opts = append(g.opts, opts)
	if build, ok := g.floors[level]; ok {
		return build()
	}
	if build, ok := g.floors[0]; ok {
		f := build()
		f.Level = level
		return f
	}
	f := lineFloor(level, dungeon.RoomEntrance, dungeon.RoomCorridor)
	f.Rooms[1].HasStairsDown = true
	return f
}

// fakeMonsters hands out groups of size monsters, or one when size is zero.
type fakeMonsters struct {
	size  int
	calls int
}

func (m *fakeMonsters) GenerateMonsterGroup(level int, _ dungeon.Theme, boss bool, _ dice.Source) []*npc.Instance {
	m.calls++
	group := make([]*npc.Instance, max(1, m.size))
	for i := range group {
		group[i] = npc.NewLegacyInstance(fmt.Sprintf("m%d-%d", m.calls, i), "Rat", level, boss)
	}
	return group
}

// fakeCombat wins every fight unless told otherwise. While skirmishes is
// positive, a fight kills one monster and then withdraws.
type fakeCombat struct {
	defeat     bool
	withdraw   bool
	skirmishes int
	calls      int
}

func (c *fakeCombat) ResolveCombat(p *character.Player, monsters []*npc.Instance, _ []*combat.Combatant, _ dice.Source) combat.Result {
	c.calls++
	switch {
	case c.defeat:
		p.CurrentHP = 0
		return combat.Result{Defeated: true}
	case c.withdraw:
		return combat.Result{Rounds: combat.DefaultMaxRounds}
	case c.skirmishes > 0:
		c.skirmishes--
		monsters[0].TakeDamage(monsters[0].CurrentHP)
		return combat.Result{Rounds: combat.DefaultMaxRounds}
	}
	for _, m := range monsters {
		m.TakeDamage(m.CurrentHP)
	}
	return combat.Result{Victory: true, XP: 10, Gold: 5}
}

type fakeStory struct {
	flags   map[string]bool
	seals   []dungeon.SealType
	sealFor map[int]dungeon.SealType
}

func newFakeStory() *fakeStory {
	return &fakeStory{flags: map[string]bool{}, sealFor: map[int]dungeon.SealType{}}
}

func (s *fakeStory) HasFlag(flag string) bool { return s.flags[flag] }
func (s *fakeStory) SetFlag(flag string)      { s.flags[flag] = true }

func (s *fakeStory) CollectSeal(seal dungeon.SealType, _ *character.Player) {
	s.seals = append(s.seals, seal)
	s.flags["seal_"+string(seal)] = true
}

func (s *fakeStory) SealForLevel(level int) *dungeon.SealType {
	seal, ok := s.sealFor[level]
	if !ok || s.flags["seal_"+string(seal)] {
		return nil
	}
	return &seal
}

type fakeRare struct{ calls int }

func (r *fakeRare) TryRareEncounter(int, dungeon.Theme, dice.Source) (string, bool) {
	r.calls++
	return "A ghostly bell tolls.", true
}

func room(id dungeon.RoomID, t dungeon.RoomType) *dungeon.Room {
	return &dungeon.Room{
		ID:    id,
		Name:  fmt.Sprintf("room %d", id),
		Type:  t,
		Exits: map[dungeon.Direction]dungeon.Exit{},
	}
}

func connect(a *dungeon.Room, dir dungeon.Direction, b *dungeon.Room) {
	a.Exits[dir] = dungeon.Exit{Target: b.ID, Description: "a low arch"}
	b.Exits[dir.Opposite()] = dungeon.Exit{Target: a.ID, Description: "a low arch"}
}

// lineFloor builds one room per type running east from the entrance. The
// first room is always the entrance.
func lineFloor(level int, types ...dungeon.RoomType) *dungeon.Floor {
	f := &dungeon.Floor{
		Level:       level,
		Rooms:       map[dungeon.RoomID]*dungeon.Room{},
		DangerLevel: dungeon.DangerLevelFor(level),
	}
	var prev *dungeon.Room
	for i, t := range types {
		if i == 0 {
			t = dungeon.RoomEntrance
		}
		r := room(dungeon.RoomID(i), t)
		f.Rooms[r.ID] = r
		if prev != nil {
			connect(prev, dungeon.East, r)
		}
		prev = r
	}
	return f
}

type harness struct {
	gen      *fakeGenerator
	monsters *fakeMonsters
	combat   *fakeCombat
	story    *fakeStory
	player   *character.Player
	src      dice.Source
	cfg      explore.Config
	rare     explore.RareEncounters
}

func newHarness(floor func() *dungeon.Floor) *harness {
	return &harness{
		gen:      &fakeGenerator{floors: map[int]func() *dungeon.Floor{0: floor}},
		monsters: &fakeMonsters{},
		combat:   &fakeCombat{},
		story:    newFakeStory(),
		player:   character.New("Tester"),
		src:      never(),
		cfg:      explore.DefaultConfig(),
	}
}

func (h *harness) session(t *testing.T) *explore.Session {
	t.Helper()
	s, err := explore.NewSession(h.player, h.src, h.cfg, explore.Deps{
		Generator: h.gen,
		Monsters:  h.monsters,
		Combat:    h.combat,
		Story:     h.story,
		Rare:      h.rare,
		Logger:    zaptest.NewLogger(t),
	})
	require.NoError(t, err)
	return s
}

// entered returns a session already standing in the entrance.
func (h *harness) entered(t *testing.T) *explore.Session {
	t.Helper()
	s := h.session(t)
	_, err := s.Enter()
	require.NoError(t, err)
	return s
}

// testingT is satisfied by both *testing.T and *rapid.T.
type testingT interface {
	require.TestingT
	Helper()
}

func move(t testingT, s *explore.Session, dir dungeon.Direction) *explore.Outcome {
	t.Helper()
	out, err := s.Move(dir)
	require.NoError(t, err)
	return out
}
