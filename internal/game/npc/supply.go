package npc

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/crawl/internal/game/dice"
	"github.com/cory-johannsen/crawl/internal/game/dungeon"
)

const maxGroupSize = 3

var legacyNames = map[dungeon.Theme][]string{
	dungeon.ThemeCatacombs: {"Skeleton", "Ghoul", "Bone Crawler"},
	dungeon.ThemeSewers:    {"Giant Rat", "Sludge Horror", "Sewer Lurker"},
	dungeon.ThemeCaverns:   {"Cave Spider", "Troglodyte", "Crystal Beetle"},
	dungeon.ThemeCrypts:    {"Wight", "Crypt Guardian", "Restless Shade"},
	dungeon.ThemeRuins:     {"Bandit", "Stone Golem", "Feral Hound"},
	dungeon.ThemeAbyss:     {"Void Spawn", "Whisperer", "Abyssal Maw"},
}

var legacyBossTitles = map[dungeon.Theme]string{
	dungeon.ThemeCatacombs: "Bone Tyrant",
	dungeon.ThemeSewers:    "Rat King",
	dungeon.ThemeCaverns:   "Deep Wyrm",
	dungeon.ThemeCrypts:    "Lich Warden",
	dungeon.ThemeRuins:     "Fallen Champion",
	dungeon.ThemeAbyss:     "Herald of the Void",
}

// Supply builds monster groups from loaded templates, falling back to
// depth-derived legacy monsters when no template fits. It is read-only after
// construction and safe for concurrent use.
type Supply struct {
	templates []*Template
	logger    *zap.Logger
}

// NewSupply creates a Supply over templates.
//
// Precondition: every template must have passed Validate; logger must not be nil.
func NewSupply(templates []*Template, logger *zap.Logger) *Supply {
	return &Supply{templates: templates, logger: logger}
}

// Templates returns the number of loaded templates.
func (s *Supply) Templates() int { return len(s.templates) }

// GenerateMonsterGroup returns the monsters guarding a room on a floor of
// level and theme. A boss group is a single boss.
//
// Postcondition: Returns at least one instance; at most maxGroupSize.
func (s *Supply) GenerateMonsterGroup(level int, theme dungeon.Theme, boss bool, src dice.Source) []*Instance {
	size := 1
	if !boss {
		size = dice.Between(src, 1, min(maxGroupSize, 1+level/10))
	}
	fitting := s.fitting(level, theme, boss)
	group := make([]*Instance, 0, size)
	for i := 0; i < size; i++ {
		if len(fitting) == 0 {
			group = append(group, legacyMonster(level, theme, boss, src))
			continue
		}
		tmpl := fitting[src.Intn(len(fitting))]
		group = append(group, NewInstance(uuid.NewString(), tmpl, level))
	}
	if len(fitting) == 0 {
		s.logger.Debug("no monster template fits, using legacy stats",
			zap.Int("level", level),
			zap.Stringer("theme", theme),
			zap.Bool("boss", boss),
		)
	}
	return group
}

func (s *Supply) fitting(level int, theme dungeon.Theme, boss bool) []*Template {
	var out []*Template
	for _, t := range s.templates {
		if t.Fits(level, theme, boss) {
			out = append(out, t)
		}
	}
	return out
}

func legacyMonster(level int, theme dungeon.Theme, boss bool, src dice.Source) *Instance {
	var name string
	if boss {
		name = legacyBossTitles[theme]
	} else {
		names := legacyNames[theme]
		name = names[src.Intn(len(names))]
	}
	if name == "" {
		name = fmt.Sprintf("%s Dweller", theme)
	}
	return NewLegacyInstance(uuid.NewString(), name, level, boss)
}
