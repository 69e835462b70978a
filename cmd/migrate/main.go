// Command migrate applies or rolls back the embedded story schema on the
// configured database.
//
//	migrate -config configs/prod.yaml up
//	migrate -config configs/prod.yaml down 1
//	migrate -config configs/prod.yaml version
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"go.uber.org/zap"

	"github.com/cory-johannsen/crawl/internal/config"
	"github.com/cory-johannsen/crawl/internal/observability"
	"github.com/cory-johannsen/crawl/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	if err := run(*configPath, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}

func run(configPath string, args []string) error {
	start := time.Now()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if !cfg.Database.Enabled {
		return fmt.Errorf("database.enabled is false in %s", configPath)
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	command, steps, err := parseArgs(args)
	if err != nil {
		return err
	}
	m, err := postgres.NewMigrator(cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer m.Close()

	switch {
	case command == "up" && steps > 0:
		err = m.Steps(steps)
	case command == "up":
		err = m.Up()
	case command == "down" && steps > 0:
		err = m.Steps(-steps)
	case command == "down":
		err = m.Down()
	}
	unchanged := errors.Is(err, migrate.ErrNoChange)
	if err != nil && !unchanged {
		return fmt.Errorf("migrating %s: %w", command, err)
	}

	version, dirty, verr := m.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		return fmt.Errorf("reading version: %w", verr)
	}
	logger.Info("migration finished",
		zap.String("command", command),
		zap.Bool("changed", command != "version" && !unchanged),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// parseArgs accepts "up [n]", "down [n]" or "version". No arguments means up.
func parseArgs(args []string) (string, int, error) {
	if len(args) == 0 {
		return "up", 0, nil
	}
	command := args[0]
	switch command {
	case "up", "down":
	case "version":
		if len(args) > 1 {
			return "", 0, errors.New("version takes no arguments")
		}
		return command, 0, nil
	default:
		return "", 0, fmt.Errorf("unknown command %q: want up, down or version", command)
	}
	if len(args) == 1 {
		return command, 0, nil
	}
	if len(args) > 2 {
		return "", 0, fmt.Errorf("%s takes at most one step count", command)
	}
	steps, err := strconv.Atoi(args[1])
	if err != nil || steps < 1 {
		return "", 0, fmt.Errorf("step count %q must be a positive integer", args[1])
	}
	return command, steps, nil
}
