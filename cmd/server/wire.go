// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"streamhub_backend/internal/allowlist"
	"streamhub_backend/internal/app"
	"streamhub_backend/internal/auth"
	"streamhub_backend/internal/config"
	"streamhub_backend/internal/jobs"
	"streamhub_backend/internal/news"
	"streamhub_backend/internal/platform/database"
	"streamhub_backend/internal/platform/elasticsearch"
	"streamhub_backend/internal/platform/logger"
	"streamhub_backend/internal/shared"
	"streamhub_backend/internal/streamer"
	"streamhub_backend/internal/user"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		database.NewGORM,
		elasticsearch.NewClient,
		provideCleanup,

		// Session tokens
		auth.NewJWTService,
		wire.Bind(new(shared.TokenService), new(*auth.JWTService)),

		// Users
		user.NewGORMRepository,
		user.NewService,
		wire.Bind(new(user.Service), new(*user.ServiceImplementation)),
		user.NewHandler,

		// Registration allow list
		allowlist.NewGORMRepository,
		allowlist.NewService,
		wire.Bind(new(allowlist.Service), new(*allowlist.ServiceImplementation)),
		allowlist.NewHandler,

		// OAuth login flow
		auth.NewOAuthService,
		auth.NewHandler,

		// Streamers
		streamer.NewGORMRepository,
		streamer.NewService,
		wire.Bind(new(streamer.Service), new(*streamer.ServiceImplementation)),
		streamer.NewHandler,

		// News
		news.NewGORMRepository,
		news.NewSearchIndexer,
		news.NewService,
		wire.Bind(new(news.Service), new(*news.ServiceImplementation)),
		news.NewHandler,

		// Jobs
		jobs.NewStatusSweeper,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}
