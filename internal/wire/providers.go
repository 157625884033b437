package wire

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prism-ai/prism/internal/config"
	"github.com/prism-ai/prism/internal/core"
	"github.com/prism-ai/prism/internal/db"
	"github.com/prism-ai/prism/internal/jobs"
	"github.com/prism-ai/prism/internal/llm"
	"github.com/prism-ai/prism/internal/logger"
	"github.com/prism-ai/prism/internal/review"
	"github.com/prism-ai/prism/internal/storage"
)

func provideStore(ctx context.Context, dbConn *db.DB) (storage.Store, error) {
	switch dbConn.Kind {
	case config.StoragePostgres:
		return storage.NewPostgresStore(dbConn.DB), nil
	case config.StorageSQLite:
		return storage.NewSQLiteStore(ctx, dbConn.DB)
	default:
		return nil, fmt.Errorf("unsupported storage kind: %s", dbConn.Kind)
	}
}

func provideAnalysisProvider(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*llm.GeminiProvider, error) {
	return llm.NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger)
}

func provideDispatcher(job core.Job, cfg *config.Config, logger *slog.Logger) core.JobDispatcher {
	return jobs.NewDispatcher(job, cfg.MaxWorkers, logger)
}

func provideReviewService(provider *llm.GeminiProvider, store storage.Store, dispatcher core.JobDispatcher, cfg *config.Config, logger *slog.Logger) *review.Service {
	return review.NewService(provider, store, dispatcher, cfg.RetentionDays, logger)
}

func provideLoggerConfig(cfg *config.Config) logger.Config {
	return cfg.Logging
}

func provideLogWriter(cfg *config.Config) io.Writer {
	switch cfg.Logging.Output {
	case "stdout":
		return os.Stdout
	case "stderr":
		return os.Stderr
	case "file":
		return openLogFile("prism.log")
	default:
		return os.Stdout
	}
}

// openLogFile opens the log sink for appending. When the file cannot be
// opened the process must not go silent, so it reports once and falls back
// to stdout.
func openLogFile(path string) io.Writer {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file %s: %v, logging to stdout\n", path, err)
		return os.Stdout
	}
	return f
}

func provideSlogLogger(loggerConfig logger.Config, writer io.Writer) *slog.Logger {
	return logger.NewLogger(loggerConfig, writer)
}
