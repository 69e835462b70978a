package handlers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/crawl/internal/game/character"
	"github.com/cory-johannsen/crawl/internal/game/combat"
	"github.com/cory-johannsen/crawl/internal/game/dice"
	"github.com/cory-johannsen/crawl/internal/game/dungeon"
	"github.com/cory-johannsen/crawl/internal/game/explore"
	"github.com/cory-johannsen/crawl/internal/game/npc"
	"github.com/cory-johannsen/crawl/internal/game/story"
)

// highSource always rolls the top of the range, so every chance check fails.
type highSource struct{}

func (highSource) Intn(n int) int { return n - 1 }

// vaultGenerator builds the same three-room floor at every depth:
//
//	Lair
//	 |
//	Threshold - Vault
type vaultGenerator struct{}

func (vaultGenerator) Generate(level int, _ dice.Source, _ dungeon.GenerateOptions) *dungeon.Floor {
	threshold := &dungeon.Room{ID: 0, Name: "Threshold", Type: dungeon.RoomEntrance, Exits: map[dungeon.Direction]dungeon.Exit{}}
	vault := &dungeon.Room{
		ID: 1, Name: "Vault", Type: dungeon.RoomChamber, Exits: map[dungeon.Direction]dungeon.Exit{},
		HasTreasure: true, HasStairsDown: true,
		Features: []*dungeon.Feature{{
			Name:        "Old lectern",
			Description: "Dust lies thick on its slope.",
			Interaction: dungeon.LoreInteraction{Text: "Runes speak of the deep.", XP: 5},
		}},
	}
	lair := &dungeon.Room{ID: 2, Name: "Lair", Type: dungeon.RoomChamber, Exits: map[dungeon.Direction]dungeon.Exit{}, HasMonsters: true}
	threshold.Exits[dungeon.East] = dungeon.Exit{Target: 1, Description: "a low arch"}
	vault.Exits[dungeon.West] = dungeon.Exit{Target: 0, Description: "a low arch"}
	vault.Exits[dungeon.North] = dungeon.Exit{Target: 2, Description: "a cracked door"}
	lair.Exits[dungeon.South] = dungeon.Exit{Target: 1, Description: "a cracked door"}
	return &dungeon.Floor{
		Level:       level,
		Rooms:       map[dungeon.RoomID]*dungeon.Room{0: threshold, 1: vault, 2: lair},
		DangerLevel: dungeon.DangerLevelFor(level),
	}
}

func newSession(logger *zap.Logger) (*explore.Session, error) {
	cfg := explore.DefaultConfig()
	cfg.MaxLevel = 5
	return explore.NewSession(character.New("Aria"), highSource{}, cfg, explore.Deps{
		Generator: vaultGenerator{},
		Monsters:  npc.NewSupply(nil, zap.NewNop()),
		Combat:    combat.NewAutoResolver(zap.NewNop(), 0),
		Story:     story.NewTracker("aria", nil, nil, zap.NewNop()),
		Logger:    logger,
	})
}

func testSession(t *testing.T) *explore.Session {
	t.Helper()
	s, err := newSession(zaptest.NewLogger(t))
	require.NoError(t, err)
	return s
}

func testDriver(t *testing.T, presenter Presenter) *Driver {
	t.Helper()
	return NewDriver(testSession(t), presenter, NewRenderer(false), zaptest.NewLogger(t))
}
