// Package story tracks narrative flags and seal collection for one player.
package story

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/crawl/internal/game/character"
	"github.com/cory-johannsen/crawl/internal/game/dungeon"
)

// MilestoneInterval is the depth spacing of milestone flags.
const MilestoneInterval = 10

const storeTimeout = 2 * time.Second

// ScheduledSeal assigns a seal to a depth.
type ScheduledSeal struct {
	Level int
	Seal  dungeon.SealType
}

// DefaultSchedule returns the stock seal placement.
func DefaultSchedule() []ScheduledSeal {
	return []ScheduledSeal{
		{Level: 5, Seal: dungeon.SealEmber},
		{Level: 12, Seal: dungeon.SealTide},
		{Level: 20, Seal: dungeon.SealGale},
		{Level: 30, Seal: dungeon.SealStone},
		{Level: 42, Seal: dungeon.SealDusk},
		{Level: 55, Seal: dungeon.SealDawn},
		{Level: 70, Seal: dungeon.SealVoid},
	}
}

// SealFlag returns the flag set when seal is collected.
func SealFlag(seal dungeon.SealType) string {
	return "seal_" + string(seal)
}

// MilestoneFlag returns the flag for reaching level and whether level is a
// milestone at all.
func MilestoneFlag(level int) (string, bool) {
	if level <= 0 || level%MilestoneInterval != 0 {
		return "", false
	}
	return fmt.Sprintf("reached_floor_%d", level), true
}

// Store persists flags and seal collections. Implementations must be safe
// for concurrent use by multiple trackers.
type Store interface {
	LoadFlags(ctx context.Context, playerID string) ([]string, error)
	SaveFlag(ctx context.Context, playerID, flag string) error
	RecordSeal(ctx context.Context, playerID string, seal dungeon.SealType, playerName string) error
}

// Tracker is the per-session story state. It is not safe for concurrent use.
type Tracker struct {
	playerID string
	flags    map[string]bool
	seals    []dungeon.SealType
	schedule []ScheduledSeal
	store    Store
	logger   *zap.Logger
}

// NewTracker creates a Tracker for playerID.
//
// Precondition: logger must not be nil. store may be nil for an in-memory
// tracker.
func NewTracker(playerID string, schedule []ScheduledSeal, store Store, logger *zap.Logger) *Tracker {
	return &Tracker{
		playerID: playerID,
		flags:    make(map[string]bool),
		schedule: schedule,
		store:    store,
		logger:   logger,
	}
}

// Load merges flags previously persisted for the player.
//
// Postcondition: Returns nil without I/O when the tracker has no store.
func (t *Tracker) Load(ctx context.Context) error {
	if t.store == nil {
		return nil
	}
	flags, err := t.store.LoadFlags(ctx, t.playerID)
	if err != nil {
		return fmt.Errorf("loading story flags: %w", err)
	}
	for _, f := range flags {
		t.flags[f] = true
	}
	return nil
}

// HasFlag reports whether flag is set.
func (t *Tracker) HasFlag(flag string) bool {
	return t.flags[flag]
}

// SetFlag sets flag. Persistence failures are logged, never returned.
func (t *Tracker) SetFlag(flag string) {
	if t.flags[flag] {
		return
	}
	t.flags[flag] = true
	if t.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := t.store.SaveFlag(ctx, t.playerID, flag); err != nil {
		t.logger.Warn("persisting story flag", zap.String("flag", flag), zap.Error(err))
	}
}

// Flags returns every set flag in sorted order.
func (t *Tracker) Flags() []string {
	out := make([]string, 0, len(t.flags))
	for f := range t.flags {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// CollectSeal records that player found seal and sets its flag.
func (t *Tracker) CollectSeal(seal dungeon.SealType, player *character.Player) {
	t.seals = append(t.seals, seal)
	t.logger.Info("seal collected", zap.String("seal", string(seal)), zap.String("player", player.Name))
	if t.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := t.store.RecordSeal(ctx, t.playerID, seal, player.Name); err != nil {
			t.logger.Warn("persisting seal", zap.String("seal", string(seal)), zap.Error(err))
		}
	}
	t.SetFlag(SealFlag(seal))
}

// Seals returns the seals collected in this session, in order.
func (t *Tracker) Seals() []dungeon.SealType {
	return append([]dungeon.SealType(nil), t.seals...)
}

// SealForLevel returns the seal a floor at level should carry, or nil when
// the schedule has none or it was already collected.
func (t *Tracker) SealForLevel(level int) *dungeon.SealType {
	for _, s := range t.schedule {
		if s.Level != level || t.HasFlag(SealFlag(s.Seal)) {
			continue
		}
		seal := s.Seal
		return &seal
	}
	return nil
}
