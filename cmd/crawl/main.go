// Command crawl plays the dungeon crawl in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/cory-johannsen/crawl/internal/config"
	"github.com/cory-johannsen/crawl/internal/frontend/handlers"
	"github.com/cory-johannsen/crawl/internal/game/session"
	"github.com/cory-johannsen/crawl/internal/game/story"
	"github.com/cory-johannsen/crawl/internal/observability"
	"github.com/cory-johannsen/crawl/internal/storage/postgres"
)

func main() {
	path := flag.String("config", "", "path to configuration file; empty uses defaults and CRAWL_* environment variables")
	name := flag.String("name", "Wanderer", "adventurer name")
	seed := flag.Int64("seed", 0, "dice seed; 0 keeps the configured seed")
	depth := flag.Int("depth", 0, "starting depth; 0 keeps the configured depth")
	color := flag.Bool("color", true, "use ANSI colors")
	flag.Parse()

	if err := run(*path, *name, *seed, *depth, *color); err != nil {
		log.Fatal(err)
	}
}

func run(path, name string, seed int64, depth int, color bool) error {
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if seed != 0 {
		cfg.Dungeon.Seed = seed
	}
	if depth != 0 {
		cfg.Dungeon.StartLevel = depth
	}
	// The terminal belongs to the game; logs go to the file only.
	cfg.Logging.Stderr = false
	if err := handlers.ValidateName(name); err != nil {
		return err
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store story.Store
	if cfg.Database.Enabled {
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer pool.Close()
		store = postgres.NewStoryRepository(pool.DB())
	}

	engine, cleanup, err := session.NewEngine(cfg, store, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	manager := session.NewManager(engine, logger)
	sess, err := manager.Start(ctx, name)
	if err != nil {
		return err
	}
	defer func() { _ = manager.End(sess.UID) }()

	logger.Info("console session started", zap.String("name", sess.Name), zap.Int64("seed", sess.Seed))
	presenter := handlers.NewConsolePresenter(os.Stdin, os.Stdout, "> ")
	driver := handlers.NewDriver(sess.Explore, presenter, handlers.NewRenderer(color), logger)
	err = driver.Run(ctx)
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
