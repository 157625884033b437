// Package jobs defines background tasks such as retention cleanup.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/prism-ai/prism/internal/core"
)

// dispatcher implements core.JobDispatcher and manages a pool of worker
// goroutines processing cleanup tasks off the request path.
type dispatcher struct {
	job        core.Job
	taskQueue  chan *core.CleanupTask
	maxWorkers int
	wg         sync.WaitGroup
	logger     *slog.Logger
}

// NewDispatcher initializes a dispatcher with a worker pool.
// If maxWorkers is 0 or negative, it defaults to 1.
func NewDispatcher(job core.Job, maxWorkers int, logger *slog.Logger) core.JobDispatcher {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	d := &dispatcher{
		job:        job,
		maxWorkers: maxWorkers,
		taskQueue:  make(chan *core.CleanupTask, 100),
		logger:     logger,
	}
	d.startWorkers()
	return d
}

func (d *dispatcher) startWorkers() {
	for i := range d.maxWorkers {
		d.wg.Add(1)
		go d.startWorker(i)
	}
}

// startWorker processes tasks from the queue until it's closed.
func (d *dispatcher) startWorker(workerID int) {
	defer d.wg.Done()
	d.logger.Debug("starting cleanup worker", "id", workerID)

	for task := range d.taskQueue {
		if err := d.job.Run(context.Background(), task); err != nil {
			d.logger.Error("cleanup job failed", "worker_id", workerID, "error", err)
		}
	}

	d.logger.Debug("shutting down cleanup worker", "id", workerID)
}

// Dispatch queues a task without blocking. A full queue rejects the task;
// callers log and move on.
func (d *dispatcher) Dispatch(_ context.Context, task *core.CleanupTask) error {
	select {
	case d.taskQueue <- task:
		return nil
	default:
		return fmt.Errorf("cleanup queue is full, cannot accept new task")
	}
}

// Stop gracefully shuts down the dispatcher, waiting for all workers to finish.
func (d *dispatcher) Stop() {
	close(d.taskQueue)
	d.wg.Wait()
}
