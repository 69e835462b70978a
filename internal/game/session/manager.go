// Package session builds exploration sessions for connected players and
// tracks which ones are active.
package session

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/crawl/internal/game/character"
	"github.com/cory-johannsen/crawl/internal/game/condition"
	"github.com/cory-johannsen/crawl/internal/game/dice"
	"github.com/cory-johannsen/crawl/internal/game/explore"
	"github.com/cory-johannsen/crawl/internal/game/story"
)

// Engine holds the collaborators shared by every session. All of them must
// be safe for concurrent use; each session owns its own floor, player,
// story tracker and dice source.
type Engine struct {
	Generator  explore.FloorGenerator
	Monsters   explore.MonsterSupply
	Combat     explore.CombatResolver
	Rare       explore.RareEncounters
	Conditions *condition.Registry
	// Store persists story flags; nil keeps them in memory.
	Store    story.Store
	Schedule []story.ScheduledSeal
	Config   explore.Config
	// Seed fixes every session's dice; 0 draws a fresh seed per session.
	Seed int64
}

// PlayerSession is one connected player's run.
type PlayerSession struct {
	// UID is the session identifier.
	UID string
	// Name is the adventurer's display name.
	Name string
	// Seed reproduces the session's dice.
	Seed    int64
	Explore *explore.Session
	Story   *story.Tracker
}

// Manager tracks all active sessions.
// All methods are safe for concurrent use.
type Manager struct {
	engine Engine
	logger *zap.Logger

	mu      sync.RWMutex
	players map[string]*PlayerSession // uid → session
	names   map[string]string         // lowercased name → uid
}

// NewManager creates an empty Manager that builds sessions from engine.
//
// Precondition: engine.Generator, engine.Monsters and engine.Combat must be
// non-nil; logger must be non-nil.
func NewManager(engine Engine, logger *zap.Logger) *Manager {
	if engine.Schedule == nil {
		engine.Schedule = story.DefaultSchedule()
	}
	return &Manager{
		engine:  engine,
		logger:  logger,
		players: make(map[string]*PlayerSession),
		names:   make(map[string]string),
	}
}

// Start builds a session for the named adventurer. Story flags persisted
// under the same name are restored first.
//
// Precondition: name must be non-blank.
// Postcondition: Returns the registered session, or an error if the name is
// already playing or the session could not be built.
func (m *Manager) Start(ctx context.Context, name string) (*PlayerSession, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name must not be empty")
	}
	key := strings.ToLower(name)

	m.mu.Lock()
	if _, taken := m.names[key]; taken {
		m.mu.Unlock()
		return nil, fmt.Errorf("%q is already exploring", name)
	}
	// Reserve the name while the session is built outside the lock.
	m.names[key] = ""
	m.mu.Unlock()

	sess, err := m.build(ctx, name, key)
	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		delete(m.names, key)
		return nil, err
	}
	m.names[key] = sess.UID
	m.players[sess.UID] = sess
	m.logger.Info("session started",
		zap.String("uid", sess.UID),
		zap.String("name", name),
		zap.Int64("seed", sess.Seed),
		zap.Int("active", len(m.players)),
	)
	return sess, nil
}

func (m *Manager) build(ctx context.Context, name, key string) (*PlayerSession, error) {
	seed := m.engine.Seed
	if seed == 0 {
		seed = dice.RandomSeed()
	}
	player := character.New(name)
	tracker := story.NewTracker(key, m.engine.Schedule, m.engine.Store, m.logger)
	if err := tracker.Load(ctx); err != nil {
		return nil, err
	}
	exp, err := explore.NewSession(player, dice.NewSeededSource(seed), m.engine.Config, explore.Deps{
		Generator:  m.engine.Generator,
		Monsters:   m.engine.Monsters,
		Combat:     m.engine.Combat,
		Story:      tracker,
		Rare:       m.engine.Rare,
		Conditions: m.engine.Conditions,
		Logger:     m.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	return &PlayerSession{
		UID:     exp.ID(),
		Name:    name,
		Seed:    seed,
		Explore: exp,
		Story:   tracker,
	}, nil
}

// End removes a session and frees its name.
//
// Postcondition: Returns an error if uid is not active.
func (m *Manager) End(uid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, exists := m.players[uid]
	if !exists {
		return fmt.Errorf("session %q not found", uid)
	}
	delete(m.players, uid)
	delete(m.names, strings.ToLower(sess.Name))
	m.logger.Info("session ended",
		zap.String("uid", uid),
		zap.Int("depth", sess.Explore.Level()),
		zap.Int("active", len(m.players)),
	)
	return nil
}

// Get returns the session for the given UID.
//
// Postcondition: Returns (session, true) if found, or (nil, false) otherwise.
func (m *Manager) Get(uid string) (*PlayerSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.players[uid]
	return sess, ok
}

// GetByName returns the active session of the named adventurer, ignoring
// case.
func (m *Manager) GetByName(name string) (*PlayerSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	uid, ok := m.names[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}
	sess, ok := m.players[uid]
	return sess, ok
}

// Names returns the names of everyone exploring, sorted.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.players))
	for _, sess := range m.players {
		names = append(names, sess.Name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of active sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.players)
}
