package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/prism-ai/prism/internal/core"
)

// ReviewService is the slice of the orchestrator the review handler needs.
type ReviewService interface {
	Analyze(ctx context.Context, req core.AnalysisRequest, sessionID string) (*core.AnalyzeResponse, error)
	GetModels(ctx context.Context) []string
	GetHistory(ctx context.Context, sessionID string, limit int) ([]core.HistoryItem, error)
	ClearHistory(ctx context.Context, sessionID string) error
}

// ReviewHandler serves the direct review API.
type ReviewHandler struct {
	reviews ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a review API handler.
func NewReviewHandler(reviews ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, logger: logger}
}

// GetModels returns the available model identifiers.
func (h *ReviewHandler) GetModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.reviews.GetModels(r.Context()))
}

// Analyze validates the request body, runs the pipeline scoped to the
// session header, and returns the persisted analysis.
func (h *ReviewHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Code     string `json:"code"`
		Focus    string `json:"focus"`
		Language string `json:"language"`
		Model    string `json:"model"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Code == "" {
		writeError(w, http.StatusBadRequest, "code must not be empty")
		return
	}
	focus, err := core.ParseFocus(body.Focus)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.reviews.Analyze(r.Context(), core.AnalysisRequest{
		Code:     body.Code,
		Focus:    focus,
		Language: body.Language,
		Model:    body.Model,
	}, r.Header.Get(sessionHeader))
	if err != nil {
		h.logger.Error("analysis could not be saved", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save review")
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// GetHistory returns the session's flattened review history.
func (h *ReviewHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	items, err := h.reviews.GetHistory(r.Context(), r.Header.Get(sessionHeader), limit)
	if err != nil {
		h.logger.Error("failed to read review history", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to read history")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// ClearHistory deletes the session's reviews. A missing session header is a
// no-op, not an error.
func (h *ReviewHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := r.Header.Get(sessionHeader)
	if sessionID == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := h.reviews.ClearHistory(r.Context(), sessionID); err != nil {
		h.logger.Error("failed to clear review history", "error", err, "session", sessionID)
		writeError(w, http.StatusInternalServerError, "failed to clear history")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
