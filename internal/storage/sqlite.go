package storage

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	// import db drivers
	_ "modernc.org/sqlite"

	"github.com/prism-ai/prism/internal/core"
)

// sqliteSchema is executed on open. The embedded backend is dev-local and
// ephemeral, so it manages its schema directly instead of via migrations.
const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS reviews (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL DEFAULT '',
		code TEXT NOT NULL,
		language TEXT NOT NULL,
		focus TEXT NOT NULL,
		feedback TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_reviews_session_created
		ON reviews(session_id, created_at DESC);
`

// sqliteStore is the embedded single-file backend used for local
// development. It reports no retention support: its data is ephemeral.
type sqliteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore creates a Store backed by an already-open SQLite handle and
// ensures the schema exists.
func NewSQLiteStore(ctx context.Context, db *sqlx.DB) (Store, error) {
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, core.NewStorageError("init schema", err)
	}
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) CreateReview(ctx context.Context, review *core.Review) (*core.Review, error) {
	review.ID = newReviewID()
	review.CreatedAt = time.Now().UTC()

	query := `INSERT INTO reviews (id, session_id, code, language, focus, feedback, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query,
		review.ID, review.SessionID, review.Code, review.Language, review.Focus, review.Feedback, review.CreatedAt)
	if err != nil {
		return nil, core.NewStorageError("create review", err)
	}
	return review, nil
}

func (s *sqliteStore) ListBySession(ctx context.Context, sessionID string, limit int) ([]core.Review, error) {
	var (
		reviews []core.Review
		err     error
	)
	if sessionID == "" {
		query := `SELECT id, session_id, code, language, focus, feedback, created_at
		          FROM reviews ORDER BY created_at DESC, id DESC LIMIT ?`
		err = s.db.SelectContext(ctx, &reviews, query, limit)
	} else {
		query := `SELECT id, session_id, code, language, focus, feedback, created_at
		          FROM reviews WHERE session_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`
		err = s.db.SelectContext(ctx, &reviews, query, sessionID, limit)
	}
	if err != nil {
		return nil, core.NewStorageError("list reviews", err)
	}
	return reviews, nil
}

func (s *sqliteStore) ClearSession(ctx context.Context, sessionID string) (int64, error) {
	if sessionID == "" {
		return 0, nil
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE session_id = ?`, sessionID)
	if err != nil {
		return 0, core.NewStorageError("clear session", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (s *sqliteStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, core.NewStorageError("delete old reviews", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (s *sqliteStore) SupportsRetention() bool { return false }
