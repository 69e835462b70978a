package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/crawl/internal/config"
	"github.com/cory-johannsen/crawl/internal/frontend/telnet"
	"github.com/cory-johannsen/crawl/internal/game/session"
	"github.com/cory-johannsen/crawl/internal/game/story"
	"github.com/cory-johannsen/crawl/internal/observability"
	"github.com/cory-johannsen/crawl/internal/server"
	"github.com/cory-johannsen/crawl/internal/storage/postgres"
)

// healthInterval is the period of the database health check.
const healthInterval = 30 * time.Second

// configPath is the configuration file path given on the command line.
type configPath string

// App is the assembled server.
type App struct {
	Config    config.Config
	Logger    *zap.Logger
	Sessions  *session.Manager
	Acceptor  *telnet.Acceptor
	Lifecycle *server.Lifecycle
}

func provideConfig(path configPath) (config.Config, error) {
	return config.Load(string(path))
}

func provideLogger(cfg config.Config) (*zap.Logger, func(), error) {
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing logger: %w", err)
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func provideTelnetConfig(cfg config.Config) config.TelnetConfig {
	return cfg.Telnet
}

// providePool connects to PostgreSQL when persistence is enabled and returns
// nil otherwise.
func providePool(ctx context.Context, cfg config.Config, logger *zap.Logger) (*postgres.Pool, func(), error) {
	if !cfg.Database.Enabled {
		logger.Info("database disabled, story progress is kept in memory")
		return nil, func() {}, nil
	}
	start := time.Now()
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}
	logger.Info("database connected",
		zap.String("host", cfg.Database.Host),
		zap.Int("port", cfg.Database.Port),
		zap.String("database", cfg.Database.Name),
		zap.Duration("elapsed", time.Since(start)),
	)
	return pool, pool.Close, nil
}

func provideStore(pool *postgres.Pool) story.Store {
	if pool == nil {
		return nil
	}
	return postgres.NewStoryRepository(pool.DB())
}

func provideLifecycle(logger *zap.Logger, acceptor *telnet.Acceptor, pool *postgres.Pool) *server.Lifecycle {
	lc := server.NewLifecycle(logger)
	if pool != nil {
		quit := make(chan struct{})
		lc.Add("postgres", &server.FuncService{
			StartFn: func() error {
				ticker := time.NewTicker(healthInterval)
				defer ticker.Stop()
				for {
					select {
					case <-quit:
						return nil
					case <-ticker.C:
						if err := pool.Health(context.Background(), 5*time.Second); err != nil {
							logger.Warn("database health check failed", zap.Error(err))
						}
					}
				}
			},
			StopFn: func() { close(quit) },
		})
	}
	lc.Add("telnet", &server.FuncService{
		StartFn: acceptor.ListenAndServe,
		StopFn:  acceptor.Stop,
	})
	return lc
}
