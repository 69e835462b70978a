// Command crawlserver serves the dungeon crawl to Telnet clients.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"
)

func main() {
	start := time.Now()

	path := flag.String("config", "configs/dev.yaml", "path to configuration file; empty uses defaults and CRAWL_* environment variables")
	flag.Parse()

	ctx := context.Background()
	app, cleanup, err := initializeApp(ctx, configPath(*path))
	if err != nil {
		log.Fatalf("initializing server: %v", err)
	}
	defer cleanup()

	app.Logger.Info("crawl server initialized",
		zap.String("telnet_addr", app.Config.Telnet.Addr()),
		zap.Int("max_level", app.Config.Dungeon.MaxLevel),
		zap.Int64("seed", app.Config.Dungeon.Seed),
		zap.Duration("startup", time.Since(start)),
	)

	if err := app.Lifecycle.Run(ctx); err != nil {
		app.Logger.Error("server error", zap.Error(err))
		cleanup()
		log.Fatalf("server error: %v", err)
	}
	app.Logger.Info("crawl server exited", zap.Int("sessions_left", app.Sessions.Count()))
}
