// Package app initializes and orchestrates the main components of the Prism
// service. It ties together configuration, storage, the analysis provider,
// and the HTTP server.
package app

import (
	"context"
	"log/slog"

	"github.com/prism-ai/prism/internal/config"
	"github.com/prism-ai/prism/internal/core"
	"github.com/prism-ai/prism/internal/llm"
	"github.com/prism-ai/prism/internal/server"
)

// App holds the main application components. The database connection is
// owned by the wiring layer, which closes it after Stop returns.
type App struct {
	ctx        context.Context
	cfg        *config.Config
	server     *server.Server
	logger     *slog.Logger
	dispatcher core.JobDispatcher
	provider   *llm.GeminiProvider
}

// NewApp bundles the already-wired components into a runnable application.
func NewApp(ctx context.Context, cfg *config.Config, srv *server.Server, dispatcher core.JobDispatcher, provider *llm.GeminiProvider, logger *slog.Logger) *App {
	return &App{
		ctx:        ctx,
		cfg:        cfg,
		server:     srv,
		logger:     logger,
		dispatcher: dispatcher,
		provider:   provider,
	}
}

// Start runs the HTTP server.
func (a *App) Start() error {
	a.logger.Info("starting Prism",
		"server_port", a.cfg.ServerPort,
		"storage", a.cfg.Storage,
		"max_workers", a.cfg.MaxWorkers)

	if err := a.server.Start(); err != nil {
		a.logger.Error("failed to start HTTP server", "error", err)
		return err
	}
	return nil
}

// Stop shuts down the application cleanly.
func (a *App) Stop() error {
	a.logger.Info("shutting down Prism services")

	// Stop the HTTP server first to prevent new incoming requests.
	serverErr := a.server.Stop()
	if serverErr != nil {
		a.logger.Error("error during HTTP server shutdown", "error", serverErr)
		// Continue to stop other components even if the server failed.
	}

	// Stop the cleanup dispatcher, allowing queued tasks to finish.
	a.dispatcher.Stop()

	if err := a.provider.Close(); err != nil {
		a.logger.Error("error closing analysis provider", "error", err)
	}

	if serverErr != nil {
		a.logger.Error("Prism stopped with errors", "error", serverErr)
		return serverErr
	}

	a.logger.Info("Prism stopped successfully")
	return nil
}
