package jobs

import (
	"context"
	"log/slog"

	"github.com/prism-ai/prism/internal/core"
	"github.com/prism-ai/prism/internal/storage"
)

// CleanupJob deletes reviews older than the task's cutoff. It only acts on
// backends that report retention support; elsewhere it is a no-op. Its
// errors are logged by the worker and never reach a request.
type CleanupJob struct {
	store  storage.Store
	logger *slog.Logger
}

// NewCleanupJob creates a retention cleanup job over the given store.
func NewCleanupJob(store storage.Store, logger *slog.Logger) core.Job {
	return &CleanupJob{store: store, logger: logger}
}

// Run deletes everything created before the cutoff. Deletion is idempotent,
// so concurrent runs triggered by overlapping analyze calls are safe.
func (j *CleanupJob) Run(ctx context.Context, task *core.CleanupTask) error {
	if !j.store.SupportsRetention() {
		return nil
	}

	deleted, err := j.store.DeleteOlderThan(ctx, task.Cutoff)
	if err != nil {
		return err
	}
	if deleted > 0 {
		j.logger.Info("retention cleanup removed old reviews", "deleted", deleted, "cutoff", task.Cutoff)
	}
	return nil
}
