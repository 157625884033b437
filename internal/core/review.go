// Package core defines the essential interfaces and data structures that form the
// backbone of the application. These components are designed to be abstract,
// allowing for flexible and decoupled implementations of the application's logic.
package core

import (
	"fmt"
	"time"
)

// Focus is the closed set of analysis focus areas a caller may request.
type Focus string

const (
	FocusSecurity    Focus = "security"
	FocusPerformance Focus = "performance"
	FocusReadability Focus = "readability"
	FocusBugs        Focus = "bugs"
)

// Focuses lists every valid focus area in declaration order.
func Focuses() []Focus {
	return []Focus{FocusSecurity, FocusPerformance, FocusReadability, FocusBugs}
}

// ParseFocus validates a raw focus string against the closed set.
func ParseFocus(s string) (Focus, error) {
	switch Focus(s) {
	case FocusSecurity, FocusPerformance, FocusReadability, FocusBugs:
		return Focus(s), nil
	}
	return "", fmt.Errorf("invalid focus %q: must be one of security, performance, readability, bugs", s)
}

// Severity classifies how serious a single review issue is.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// AnalysisRequest is a single immutable request to review a code snippet.
type AnalysisRequest struct {
	Code     string `json:"code"`
	Focus    Focus  `json:"focus"`
	Language string `json:"language,omitempty"`
	Model    string `json:"model,omitempty"`
}

// Issue is one piece of feedback tied to a line of the submitted snippet.
type Issue struct {
	Line       int      `json:"line"`
	Severity   Severity `json:"severity"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// AnalysisResult is the structured outcome of one analysis, produced fresh
// per call by the analysis provider.
type AnalysisResult struct {
	Summary          string  `json:"summary"`
	Score            int     `json:"score"`
	Issues           []Issue `json:"issues"`
	DetectedLanguage string  `json:"detectedLanguage,omitempty"`
}

// AnalyzeResponse is the caller-visible result of a persisted analysis.
// It mirrors AnalysisResult with the store-assigned review id attached.
type AnalyzeResponse struct {
	ReviewID         string  `json:"reviewId"`
	Summary          string  `json:"summary"`
	Score            int     `json:"score"`
	Issues           []Issue `json:"issues"`
	DetectedLanguage string  `json:"detectedLanguage,omitempty"`
}

// Review represents a single persisted code review. The id and timestamp are
// assigned by the store; a record is never mutated after creation.
type Review struct {
	ID        string    `db:"id" json:"id"`
	SessionID string    `db:"session_id" json:"sessionId,omitempty"`
	Code      string    `db:"code" json:"code"`
	Language  string    `db:"language" json:"language"`
	Focus     string    `db:"focus" json:"focus"`
	Feedback  string    `db:"feedback" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// HistoryItem is the flattened read view of a Review: the record's own
// fields plus the deserialized feedback fields side by side.
type HistoryItem struct {
	ID               string    `json:"id"`
	SessionID        string    `json:"sessionId,omitempty"`
	Code             string    `json:"code"`
	Language         string    `json:"language"`
	Focus            string    `json:"focus"`
	Summary          string    `json:"summary"`
	Score            int       `json:"score"`
	Issues           []Issue   `json:"issues,omitempty"`
	DetectedLanguage string    `json:"detectedLanguage,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}
