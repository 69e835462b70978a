//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"github.com/cory-johannsen/crawl/internal/frontend/handlers"
	"github.com/cory-johannsen/crawl/internal/frontend/telnet"
	"github.com/cory-johannsen/crawl/internal/game/session"
)

func initializeApp(ctx context.Context, path configPath) (*App, func(), error) {
	wire.Build(
		provideConfig,
		provideLogger,
		provideTelnetConfig,
		providePool,
		provideStore,
		session.NewEngine,
		session.NewManager,
		wire.Bind(new(handlers.SessionStarter), new(*session.Manager)),
		handlers.NewCrawlHandler,
		wire.Bind(new(telnet.SessionHandler), new(*handlers.CrawlHandler)),
		telnet.NewAcceptor,
		provideLifecycle,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}
