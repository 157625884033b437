// Package review implements the analyze/persist/retrieve/clear pipeline
// that both the direct API and the protocol adapter drive.
package review

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/prism-ai/prism/internal/core"
	"github.com/prism-ai/prism/internal/storage"
)

const (
	// DefaultHistoryLimit bounds direct-API history reads.
	DefaultHistoryLimit = 20

	// degradedSummary replaces feedback that no longer parses. A record
	// with unreadable feedback degrades; it never fails the whole read.
	degradedSummary = "Error parsing feedback"
)

// Service orchestrates analysis, persistence, and history access.
type Service struct {
	provider  core.AnalysisProvider
	store     storage.Store
	cleanup   core.JobDispatcher
	retention time.Duration
	logger    *slog.Logger
}

// NewService creates the orchestrator. retentionDays bounds how long
// records live on backends that support retention cleanup.
func NewService(provider core.AnalysisProvider, store storage.Store, cleanup core.JobDispatcher, retentionDays int, logger *slog.Logger) *Service {
	if retentionDays <= 0 {
		retentionDays = 30
	}
	return &Service{
		provider:  provider,
		store:     store,
		cleanup:   cleanup,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		logger:    logger,
	}
}

// Analyze runs the provider, persists the outcome against the session, and
// returns the provider's result with the store-assigned review id. The
// provider never fails; a persistence failure is returned to the caller so
// a computed-but-unsaved analysis is reported as failed, not dropped.
func (s *Service) Analyze(ctx context.Context, req core.AnalysisRequest, sessionID string) (*core.AnalyzeResponse, error) {
	result := s.provider.Analyze(ctx, req)

	feedback, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode feedback: %w", err)
	}

	language := result.DetectedLanguage
	if language == "" {
		language = req.Language
	}
	if language == "" {
		language = "plaintext"
	}

	saved, err := s.store.CreateReview(ctx, &core.Review{
		SessionID: sessionID,
		Code:      req.Code,
		Language:  language,
		Focus:     string(req.Focus),
		Feedback:  string(feedback),
	})
	if err != nil {
		return nil, err
	}

	s.triggerCleanup(ctx)

	return &core.AnalyzeResponse{
		ReviewID:         saved.ID,
		Summary:          result.Summary,
		Score:            result.Score,
		Issues:           result.Issues,
		DetectedLanguage: result.DetectedLanguage,
	}, nil
}

// GetModels returns the model identifiers the provider offers.
func (s *Service) GetModels(ctx context.Context) []string {
	return s.provider.ListModels(ctx)
}

// GetHistory returns the session's reviews, most recent first, with each
// record's feedback flattened into the view. Records whose feedback no
// longer parses are degraded individually instead of failing the read. An
// empty sessionID reads across all sessions.
func (s *Service) GetHistory(ctx context.Context, sessionID string, limit int) ([]core.HistoryItem, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	reviews, err := s.store.ListBySession(ctx, sessionID, limit)
	if err != nil {
		return nil, err
	}

	items := make([]core.HistoryItem, 0, len(reviews))
	for _, r := range reviews {
		items = append(items, s.flatten(r))
	}
	return items, nil
}

// ClearHistory deletes the session's reviews. An empty sessionID is a no-op
// here as well as in the store.
func (s *Service) ClearHistory(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	deleted, err := s.store.ClearSession(ctx, sessionID)
	if err != nil {
		return err
	}
	s.logger.Info("cleared review history", "session", sessionID, "deleted", deleted)
	return nil
}

// flatten merges a record and its decoded feedback into one view object.
func (s *Service) flatten(r core.Review) core.HistoryItem {
	item := core.HistoryItem{
		ID:        r.ID,
		SessionID: r.SessionID,
		Code:      r.Code,
		Language:  r.Language,
		Focus:     r.Focus,
		CreatedAt: r.CreatedAt,
	}

	var feedback core.AnalysisResult
	if err := json.Unmarshal([]byte(r.Feedback), &feedback); err != nil {
		s.logger.Warn("stored feedback is unreadable, degrading record", "review", r.ID, "error", err)
		item.Summary = degradedSummary
		item.Score = 0
		return item
	}

	item.Summary = feedback.Summary
	item.Score = feedback.Score
	item.Issues = feedback.Issues
	item.DetectedLanguage = feedback.DetectedLanguage
	return item
}

// triggerCleanup hands a retention task to the background dispatcher. The
// request path does not wait for it and cannot observe its failure.
func (s *Service) triggerCleanup(ctx context.Context) {
	if !s.store.SupportsRetention() {
		return
	}
	task := &core.CleanupTask{Cutoff: time.Now().UTC().Add(-s.retention)}
	if err := s.cleanup.Dispatch(ctx, task); err != nil {
		s.logger.Warn("failed to queue retention cleanup", "error", err)
	}
}
