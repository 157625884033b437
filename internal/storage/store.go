// Package storage implements the session-scoped review history store over
// interchangeable backends.
package storage

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/prism-ai/prism/internal/core"
)

// Store defines the interface for all review-history operations. The store
// is the sole owner of record identity and timestamps; callers never
// fabricate ids. Backends are selected once at startup and injected.
type Store interface {
	// CreateReview persists a new record, assigning its id and creation
	// timestamp. Failures are reported as *core.StorageError.
	CreateReview(ctx context.Context, review *core.Review) (*core.Review, error)

	// ListBySession returns up to limit records, most recent first. Equal
	// timestamps are broken by id, which is time-ordered at assignment, so
	// repeated reads of one snapshot observe a stable order. An empty
	// sessionID returns records across all sessions.
	ListBySession(ctx context.Context, sessionID string, limit int) ([]core.Review, error)

	// ClearSession deletes every record of the session and returns the
	// deleted count. An empty sessionID is a no-op, not an error.
	ClearSession(ctx context.Context, sessionID string) (int64, error)

	// DeleteOlderThan removes records created before the cutoff. It is
	// idempotent: a second invocation with the same cutoff deletes nothing.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	// SupportsRetention reports whether retention cleanup is meaningful for
	// this backend.
	SupportsRetention() bool
}

// newReviewID returns a fresh ULID. ULIDs sort lexicographically by creation
// time, which gives history reads their insertion-order tie-break.
func newReviewID() string {
	return ulid.Make().String()
}
