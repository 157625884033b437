package storage

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	// import db drivers
	_ "github.com/lib/pq"

	"github.com/prism-ai/prism/internal/core"
)

// postgresStore is the networked relational backend. It is the only backend
// for which retention cleanup runs.
type postgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates a Store backed by PostgreSQL.
func NewPostgresStore(db *sqlx.DB) Store {
	return &postgresStore{db: db}
}

func (s *postgresStore) CreateReview(ctx context.Context, review *core.Review) (*core.Review, error) {
	review.ID = newReviewID()
	review.CreatedAt = time.Now().UTC()

	query := `INSERT INTO reviews (id, session_id, code, language, focus, feedback, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := s.db.ExecContext(ctx, query,
		review.ID, review.SessionID, review.Code, review.Language, review.Focus, review.Feedback, review.CreatedAt)
	if err != nil {
		return nil, core.NewStorageError("create review", err)
	}
	return review, nil
}

func (s *postgresStore) ListBySession(ctx context.Context, sessionID string, limit int) ([]core.Review, error) {
	var (
		reviews []core.Review
		err     error
	)
	if sessionID == "" {
		query := `SELECT id, session_id, code, language, focus, feedback, created_at
		          FROM reviews ORDER BY created_at DESC, id DESC LIMIT $1`
		err = s.db.SelectContext(ctx, &reviews, query, limit)
	} else {
		query := `SELECT id, session_id, code, language, focus, feedback, created_at
		          FROM reviews WHERE session_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2`
		err = s.db.SelectContext(ctx, &reviews, query, sessionID, limit)
	}
	if err != nil {
		return nil, core.NewStorageError("list reviews", err)
	}
	return reviews, nil
}

func (s *postgresStore) ClearSession(ctx context.Context, sessionID string) (int64, error) {
	if sessionID == "" {
		return 0, nil
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE session_id = $1`, sessionID)
	if err != nil {
		return 0, core.NewStorageError("clear session", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (s *postgresStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, core.NewStorageError("delete old reviews", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (s *postgresStore) SupportsRetention() bool { return true }
