//go:build wireinject
// +build wireinject

package wire

import (
	"context"

	"github.com/google/wire"

	"github.com/prism-ai/prism/internal/app"
	"github.com/prism-ai/prism/internal/config"
	"github.com/prism-ai/prism/internal/db"
	"github.com/prism-ai/prism/internal/jobs"
	"github.com/prism-ai/prism/internal/mcp"
	"github.com/prism-ai/prism/internal/review"
	"github.com/prism-ai/prism/internal/server"
)

func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	wire.Build(
		app.NewApp,
		server.NewServer,
		config.LoadConfig,
		db.NewDatabase,
		mcp.NewService,
		jobs.NewCleanupJob,
		provideStore,
		provideAnalysisProvider,
		provideDispatcher,
		provideReviewService,
		provideLoggerConfig,
		provideLogWriter,
		provideSlogLogger,
		wire.Bind(new(mcp.Orchestrator), new(*review.Service)),
	)
	return &app.App{}, nil, nil
}
