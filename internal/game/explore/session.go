// Package explore implements the per-player exploration state machine: it
// moves a cursor through a generated floor, applies room entry effects in a
// fixed order, and gates room actions on their preconditions.
package explore

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/crawl/internal/game/character"
	"github.com/cory-johannsen/crawl/internal/game/condition"
	"github.com/cory-johannsen/crawl/internal/game/dice"
	"github.com/cory-johannsen/crawl/internal/game/dungeon"
	"github.com/cory-johannsen/crawl/internal/game/npc"
	"github.com/cory-johannsen/crawl/internal/game/scaling"
	"github.com/cory-johannsen/crawl/internal/game/story"
)

// AmbushChance is the probability that entering a room with uncleared
// monsters forces combat.
const AmbushChance = 0.30

// State is the cursor's position relative to the floor.
type State int

const (
	// StateOverview is the pre-entry summary of the loaded floor.
	StateOverview State = iota
	// StateInRoom places the cursor on a specific room.
	StateInRoom
)

// String returns the state's name.
func (s State) String() string {
	if s == StateInRoom {
		return "in room"
	}
	return "overview"
}

// Config tunes a Session.
type Config struct {
	// StartLevel is the depth loaded by NewSession.
	StartLevel int
	// MaxLevel is the deepest floor; it has no stairs.
	MaxLevel int
	// RestHealFraction of max HP is restored by Rest.
	RestHealFraction float64
	// HealingDraughtFraction of max HP is restored by a healing draught.
	HealingDraughtFraction float64
}

// DefaultConfig returns the standard session tuning.
func DefaultConfig() Config {
	return Config{
		StartLevel:             1,
		MaxLevel:               100,
		RestHealFraction:       0.5,
		HealingDraughtFraction: 0.35,
	}
}

// Deps are the collaborators a Session drives.
//
// Generator, Monsters, Combat and Story are required. Rare may be nil.
// Conditions defaults to condition.Builtin when nil.
type Deps struct {
	Generator  FloorGenerator
	Monsters   MonsterSupply
	Combat     CombatResolver
	Story      Story
	Rare       RareEncounters
	Conditions *condition.Registry
	Logger     *zap.Logger
}

// Session is one player's run through the dungeon. It owns exactly one floor
// at a time and is not safe for concurrent use.
type Session struct {
	id     string
	cfg    Config
	deps   Deps
	logger *zap.Logger
	src    dice.Source

	player *character.Player
	floor  *dungeon.Floor
	state  State

	roomsExploredThisFloor  int
	hasRestThisFloor        bool
	consecutiveMonsterRooms int
	// encounters caches the monster group seen in each room of the floor,
	// so a withdrawn fight resumes against the same wounded monsters.
	encounters map[dungeon.RoomID][]*npc.Instance
}

// NewSession creates a session for player and loads the starting floor. The
// session starts in the Overview state.
//
// Precondition: player and src must be non-nil; deps.Generator,
// deps.Monsters, deps.Combat and deps.Story must be non-nil.
// Postcondition: Floor() is non-nil and Level() == clamp(cfg.StartLevel, 1, cfg.MaxLevel).
func NewSession(player *character.Player, src dice.Source, cfg Config, deps Deps) (*Session, error) {
	switch {
	case player == nil:
		return nil, fmt.Errorf("explore: player must not be nil")
	case src == nil:
		return nil, fmt.Errorf("explore: dice source must not be nil")
	case deps.Generator == nil, deps.Monsters == nil, deps.Combat == nil, deps.Story == nil:
		return nil, fmt.Errorf("explore: generator, monsters, combat and story are required")
	}
	if cfg.MaxLevel < 1 {
		cfg.MaxLevel = DefaultConfig().MaxLevel
	}
	if deps.Conditions == nil {
		deps.Conditions = condition.Builtin()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	s := &Session{
		id:     uuid.NewString(),
		cfg:    cfg,
		deps:   deps,
		src:    src,
		player: player,
	}
	s.logger = deps.Logger.With(zap.String("session", s.id), zap.String("player", player.Name))
	s.loadFloor(clampLevel(cfg.StartLevel, cfg.MaxLevel), &Outcome{})
	return s, nil
}

// ID returns the session's unique id.
func (s *Session) ID() string { return s.id }

// Player returns the session's player.
func (s *Session) Player() *character.Player { return s.player }

// Floor returns the loaded floor.
func (s *Session) Floor() *dungeon.Floor { return s.floor }

// State returns the cursor state.
func (s *Session) State() State { return s.state }

// Level returns the loaded depth.
func (s *Session) Level() int { return s.floor.Level }

// MaxLevel returns the deepest reachable floor.
func (s *Session) MaxLevel() int { return s.cfg.MaxLevel }

// RoomsExploredThisFloor counts first visits since the floor was loaded.
func (s *Session) RoomsExploredThisFloor() int { return s.roomsExploredThisFloor }

// HasRestedThisFloor reports whether Rest was used on the loaded floor.
func (s *Session) HasRestedThisFloor() bool { return s.hasRestThisFloor }

// ConsecutiveMonsterRooms counts uncleared monster rooms entered in a row.
func (s *Session) ConsecutiveMonsterRooms() int { return s.consecutiveMonsterRooms }

// CurrentRoom returns the room under the cursor.
func (s *Session) CurrentRoom() *dungeon.Room { return s.floor.CurrentRoom() }

// Monsters returns the living monsters guarding room, or nil when none have
// been encountered there.
func (s *Session) Monsters(id dungeon.RoomID) []*npc.Instance {
	var living []*npc.Instance
	for _, m := range s.encounters[id] {
		if !m.IsDead() {
			living = append(living, m)
		}
	}
	return living
}

// Enter moves the cursor from the Overview onto the floor at the current
// room (the entrance of a fresh floor), applying first-visit effects.
//
// Postcondition: State() == StateInRoom on success.
func (s *Session) Enter() (*Outcome, error) {
	if s.state == StateInRoom {
		return nil, reject("enter", ErrAlreadyInRoom)
	}
	out := &Outcome{}
	s.state = StateInRoom
	s.arrive(s.floor.CurrentRoom(), out)
	return out, nil
}

// Leave returns the cursor to the Overview. Leaving is always allowed and
// undoes nothing.
func (s *Session) Leave() (*Outcome, error) {
	if s.state != StateInRoom {
		return nil, reject("leave", ErrNotInRoom)
	}
	s.state = StateOverview
	out := &Outcome{}
	out.say("You withdraw to the floor's threshold.")
	return out, nil
}

// Move walks through the exit in dir and applies the entry sequence: trap,
// cursor update and exploration, seal discovery, mandatory event, rare
// encounter, then the monster check and ambush roll. Timed conditions tick
// once afterwards.
//
// Postcondition: On error nothing has changed.
func (s *Session) Move(dir dungeon.Direction) (*Outcome, error) {
	const action = "move"
	if s.state != StateInRoom {
		return nil, reject(action, ErrNotInRoom)
	}
	from := s.floor.CurrentRoom()
	exit, ok := from.Exit(dir)
	if !ok {
		return nil, reject(action, ErrNoExit)
	}
	if from.BlocksExit() {
		return nil, reject(action, ErrEventPending)
	}
	target, ok := s.floor.Room(exit.Target)
	if !ok {
		return nil, reject(action, ErrNoExit)
	}

	out := &Outcome{}
	if exit.Description != "" {
		out.say("You head %s through %s.", dir, exit.Description)
	}
	if target.HasArmedTrap() {
		s.triggerTrap(target, out)
	}
	s.arrive(target, out)
	s.tickConditions(out)
	return out, nil
}

// arrive applies steps three onward of the entry sequence to room.
func (s *Session) arrive(room *dungeon.Room, out *Outcome) {
	if err := s.floor.SetCurrent(room.ID); err != nil {
		s.logger.Error("cursor left the floor", zap.Int("room", int(room.ID)), zap.Error(err))
		return
	}
	out.Arrived = true
	first := !room.IsExplored
	out.FirstVisit = first
	if first {
		room.MarkExplored()
		s.roomsExploredThisFloor++
	}
	if !room.HasMonsters {
		room.MarkCleared()
	}

	if scaling.CheckSeal(s.floor, room, first, s.src) {
		s.collectSeal(room, out)
	}

	if first && room.Type.HasMandatoryEvent() && room.HasPendingEvent() {
		out.EventTriggered = true
		out.say("The way onward is barred. %s", room.Event.Prompt())
	}

	if first && s.deps.Rare != nil {
		if msg, ok := s.deps.Rare.TryRareEncounter(s.floor.Level, s.floor.Theme, s.src); ok {
			out.RareEncounter = msg
			out.say("%s", msg)
		}
	}

	if !room.HasMonsters || room.IsCleared {
		s.consecutiveMonsterRooms = 0
		return
	}
	s.consecutiveMonsterRooms++
	monsters := s.encounter(room)
	out.Dangerous = true
	out.Difficulty = s.rate(monsters)
	if !room.IsBossRoom && dice.Chance(s.src, AmbushChance) {
		out.Ambushed = true
		out.say("You are ambushed!")
		s.fight(room, out)
		return
	}
	out.say("Danger: %d %s lurk here (%s).", len(monsters), pluralMonsters(len(monsters)), out.Difficulty)
}

func (s *Session) collectSeal(room *dungeon.Room, out *Outcome) {
	if !s.floor.CollectSeal(room.ID) {
		return
	}
	seal := *s.floor.Seal
	out.Seal = &seal
	out.say("Light gathers in your hands: you have found the %s.", seal.Title())
	s.deps.Story.CollectSeal(seal, s.player)
	s.logger.Info("seal discovered",
		zap.String("seal", string(seal)),
		zap.Int("level", s.floor.Level),
		zap.Int("room", int(room.ID)),
	)
}

func (s *Session) triggerTrap(room *dungeon.Room, out *Outcome) {
	trap := scaling.RollTrap(s.floor.Level, s.player.Gold, s.player.Experience, s.src)
	room.MarkTrapTriggered()
	out.Trap = &trap
	out.Damage += s.player.Wound(trap.Damage)
	s.player.LoseGold(trap.GoldLost)
	s.player.LoseXP(trap.XPLost)
	s.player.AddGold(trap.GoldGained)
	out.say("%s", trap.Message())
	if trap.Poison {
		s.applyCondition(condition.Poisoned)
	}
	s.logger.Debug("trap triggered", zap.Stringer("kind", trap.Kind), zap.Int("room", int(room.ID)))
}

func (s *Session) tickConditions(out *Outcome) {
	tick := s.player.Conditions.Tick(s.floor.Level)
	if tick.Damage > 0 {
		dealt := s.player.Wound(tick.Damage)
		out.Damage += dealt
		if dealt > 0 {
			out.say("Poison burns through you for %d damage.", dealt)
		}
	}
	for _, id := range tick.Expired {
		out.say("You are no longer %s.", id)
	}
}

func (s *Session) applyCondition(id string) {
	def, ok := s.deps.Conditions.Get(id)
	if !ok {
		s.logger.Warn("condition not registered", zap.String("condition", id))
		return
	}
	if err := s.player.Conditions.Apply(def, 1, 0); err != nil {
		s.logger.Warn("applying condition", zap.String("condition", id), zap.Error(err))
	}
}

// encounter returns the living monsters of room, generating the group on
// first sight.
func (s *Session) encounter(room *dungeon.Room) []*npc.Instance {
	if _, seen := s.encounters[room.ID]; !seen {
		s.encounters[room.ID] = s.deps.Monsters.GenerateMonsterGroup(s.floor.Level, s.floor.Theme, room.IsBossRoom, s.src)
	}
	return s.Monsters(room.ID)
}

func (s *Session) rate(monsters []*npc.Instance) scaling.Difficulty {
	stats := make([]scaling.PowerStats, 0, len(monsters))
	for _, m := range monsters {
		stats = append(stats, m.Power())
	}
	return scaling.RateEncounter(s.player.Power(), stats)
}

// loadFloor discards the current floor and generates level, resetting the
// per-floor counters.
func (s *Session) loadFloor(level int, out *Outcome) {
	seal := s.deps.Story.SealForLevel(level)
	s.floor = s.deps.Generator.Generate(level, s.src, dungeon.GenerateOptions{Seal: seal})
	s.roomsExploredThisFloor = 0
	s.hasRestThisFloor = false
	s.consecutiveMonsterRooms = 0
	s.encounters = make(map[dungeon.RoomID][]*npc.Instance)
	out.NewFloor = true

	if flag, ok := story.MilestoneFlag(level); ok && !s.deps.Story.HasFlag(flag) {
		s.deps.Story.SetFlag(flag)
		out.say("You have reached floor %d, a milestone few survive to see.", level)
	}
	s.logger.Info("floor loaded",
		zap.Int("level", level),
		zap.Stringer("theme", s.floor.Theme),
		zap.Int("rooms", len(s.floor.Rooms)),
		zap.Bool("seal", seal != nil),
	)
}

func clampLevel(level, maxLevel int) int {
	return max(1, min(level, maxLevel))
}

func pluralMonsters(n int) string {
	if n == 1 {
		return "monster"
	}
	return "monsters"
}
