package core

import (
	"context"
	"time"
)

// CleanupTask asks the retention job to delete reviews created before Cutoff.
type CleanupTask struct {
	Cutoff time.Time
}

// JobDispatcher defines the contract for a system that accepts background
// tasks for asynchronous processing. It decouples the request path from the
// task execution mechanism: dispatching must never block the caller, and a
// task's failure must never be observable by the dispatching request.
type JobDispatcher interface {
	// Dispatch queues a cleanup task. It returns an error only if the task
	// cannot be accepted (for example, the queue is full); callers treat
	// that as a logged, non-fatal condition.
	Dispatch(ctx context.Context, task *CleanupTask) error

	// Stop drains the queue and waits for in-flight tasks to finish.
	Stop()
}

// Job is a single executable unit of background work.
type Job interface {
	// Run executes the job. Errors are reported to the worker for logging
	// and are never propagated to any request.
	Run(ctx context.Context, task *CleanupTask) error
}
