package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/crawl/internal/game/dungeon"
	"github.com/cory-johannsen/crawl/internal/game/story"
)

var _ story.Store = (*StoryRepository)(nil)

// ErrEmptyPlayerID is returned when a story row has no owner.
var ErrEmptyPlayerID = errors.New("player id must not be empty")

// SealCollection is one recorded seal discovery.
type SealCollection struct {
	PlayerID    string
	PlayerName  string
	Seal        dungeon.SealType
	CollectedAt time.Time
}

// StoryRepository stores story flags and seal discoveries. It implements
// story.Store.
type StoryRepository struct {
	db *pgxpool.Pool
}

// NewStoryRepository creates a StoryRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewStoryRepository(db *pgxpool.Pool) *StoryRepository {
	return &StoryRepository{db: db}
}

// LoadFlags returns every flag set for playerID, sorted by name.
//
// Postcondition: Returns an empty slice for an unknown player.
func (r *StoryRepository) LoadFlags(ctx context.Context, playerID string) ([]string, error) {
	if playerID == "" {
		return nil, ErrEmptyPlayerID
	}
	rows, err := r.db.Query(ctx,
		`SELECT flag FROM story_flags WHERE player_id = $1 ORDER BY flag`,
		playerID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying story flags: %w", err)
	}
	flags, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scanning story flags: %w", err)
	}
	return flags, nil
}

// SaveFlag sets flag for playerID. Setting a flag twice is a no-op.
func (r *StoryRepository) SaveFlag(ctx context.Context, playerID, flag string) error {
	if playerID == "" {
		return ErrEmptyPlayerID
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO story_flags (player_id, flag)
		 VALUES ($1, $2)
		 ON CONFLICT (player_id, flag) DO NOTHING`,
		playerID, flag,
	)
	if err != nil {
		return fmt.Errorf("saving story flag %q: %w", flag, err)
	}
	return nil
}

// RecordSeal stores a seal discovery. A player holds each seal at most
// once; later discoveries of the same seal are ignored.
func (r *StoryRepository) RecordSeal(ctx context.Context, playerID string, seal dungeon.SealType, playerName string) error {
	if playerID == "" {
		return ErrEmptyPlayerID
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO seal_collections (player_id, player_name, seal)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (player_id, seal) DO NOTHING`,
		playerID, playerName, string(seal),
	)
	if err != nil {
		return fmt.Errorf("recording seal %s: %w", seal, err)
	}
	return nil
}

// Collections returns the seals playerID has found, oldest first.
func (r *StoryRepository) Collections(ctx context.Context, playerID string) ([]SealCollection, error) {
	rows, err := r.db.Query(ctx,
		`SELECT player_id, player_name, seal, collected_at
		 FROM seal_collections
		 WHERE player_id = $1
		 ORDER BY collected_at, seal`,
		playerID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying seal collections: %w", err)
	}
	defer rows.Close()

	var out []SealCollection
	for rows.Next() {
		var c SealCollection
		var seal string
		if err := rows.Scan(&c.PlayerID, &c.PlayerName, &seal, &c.CollectedAt); err != nil {
			return nil, fmt.Errorf("scanning seal collection: %w", err)
		}
		c.Seal = dungeon.SealType(seal)
		out = append(out, c)
	}
	return out, rows.Err()
}
