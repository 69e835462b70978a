package session

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/crawl/internal/config"
	"github.com/cory-johannsen/crawl/internal/game/combat"
	"github.com/cory-johannsen/crawl/internal/game/condition"
	"github.com/cory-johannsen/crawl/internal/game/dungeon"
	"github.com/cory-johannsen/crawl/internal/game/npc"
	"github.com/cory-johannsen/crawl/internal/game/story"
	"github.com/cory-johannsen/crawl/internal/scripting"
)

// NewEngine loads the content named by cfg and assembles the shared
// collaborators. Empty content directories are skipped: no monster templates
// means legacy monsters, no condition directory means the built-in
// conditions, no script directory means no rare encounters.
//
// Precondition: cfg must have passed Validate; logger must be non-nil.
// Postcondition: On success the returned cleanup releases the script VM.
func NewEngine(cfg config.Config, store story.Store, logger *zap.Logger) (Engine, func(), error) {
	start := time.Now()
	cleanup := func() {}

	var templates []*npc.Template
	if dir := cfg.Content.NPCsDir; dir != "" {
		loaded, err := npc.LoadTemplates(dir)
		if err != nil {
			return Engine{}, nil, fmt.Errorf("loading monster templates: %w", err)
		}
		templates = loaded
	}

	conditions := condition.Builtin()
	if dir := cfg.Content.ConditionsDir; dir != "" {
		loaded, err := condition.LoadDirectory(dir)
		if err != nil {
			return Engine{}, nil, fmt.Errorf("loading conditions: %w", err)
		}
		conditions.Merge(loaded)
	}

	engine := Engine{
		Generator:  dungeon.NewGenerator(cfg.Dungeon.Params(), logger),
		Monsters:   npc.NewSupply(templates, logger),
		Combat:     combat.NewAutoResolver(logger, cfg.Dungeon.MaxCombatRounds),
		Conditions: conditions,
		Store:      store,
		Config:     cfg.Dungeon.Session(),
		Seed:       cfg.Dungeon.Seed,
	}

	if dir := cfg.Content.ScriptsDir; dir != "" {
		mgr := scripting.NewManager(cfg.Content.ScriptInstructionLimit, logger)
		if err := mgr.Load(dir); err != nil {
			mgr.Close()
			return Engine{}, nil, fmt.Errorf("loading scripts: %w", err)
		}
		engine.Rare = scripting.NewRareEncounters(mgr, logger)
		cleanup = mgr.Close
	}

	logger.Info("engine ready",
		zap.Int("monster_templates", len(templates)),
		zap.Int("conditions", len(conditions.All())),
		zap.Bool("rare_encounters", engine.Rare != nil),
		zap.Bool("persistent_story", store != nil),
		zap.Duration("elapsed", time.Since(start)),
	)
	return engine, cleanup, nil
}
