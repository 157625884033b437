// Code generated manually. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package wire

import (
	"context"
	"fmt"

	"github.com/prism-ai/prism/internal/app"
	"github.com/prism-ai/prism/internal/config"
	"github.com/prism-ai/prism/internal/db"
	"github.com/prism-ai/prism/internal/jobs"
	"github.com/prism-ai/prism/internal/mcp"
	"github.com/prism-ai/prism/internal/server"
)

// InitializeApp creates and wires all application dependencies.
func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	loggerConfig := provideLoggerConfig(cfg)
	logWriter := provideLogWriter(cfg)
	slogLogger := provideSlogLogger(loggerConfig, logWriter)

	dbConn, dbCleanup, err := db.NewDatabase(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	store, err := provideStore(ctx, dbConn)
	if err != nil {
		dbCleanup()
		return nil, nil, fmt.Errorf("failed to create store: %w", err)
	}

	provider, err := provideAnalysisProvider(ctx, cfg, slogLogger)
	if err != nil {
		dbCleanup()
		return nil, nil, fmt.Errorf("failed to create analysis provider: %w", err)
	}

	cleanupJob := jobs.NewCleanupJob(store, slogLogger)
	dispatcher := provideDispatcher(cleanupJob, cfg, slogLogger)

	reviews := provideReviewService(provider, store, dispatcher, cfg, slogLogger)

	adapter, err := mcp.NewService(reviews, slogLogger)
	if err != nil {
		dbCleanup()
		return nil, nil, fmt.Errorf("failed to create protocol adapter: %w", err)
	}

	srv := server.NewServer(ctx, cfg, reviews, adapter, slogLogger)

	application := app.NewApp(ctx, cfg, srv, dispatcher, provider, slogLogger)

	cleanup := func() {
		dbCleanup()
	}

	return application, cleanup, nil
}
