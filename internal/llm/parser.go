package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/prism-ai/prism/internal/core"
)

// decodeAnalysis parses a model response into an AnalysisResult. It tolerates
// the common quirk of the response being wrapped in a ```json fence despite
// the JSON response MIME type, and clamps the score into [0,100].
func decodeAnalysis(text string) (*core.AnalysisResult, error) {
	var result core.AnalysisResult
	if err := json.Unmarshal([]byte(stripJSONFence(text)), &result); err != nil {
		return nil, fmt.Errorf("failed to parse analysis response: %w", err)
	}
	if result.Summary == "" {
		return nil, fmt.Errorf("analysis response has no summary")
	}

	if result.Score < 0 {
		result.Score = 0
	} else if result.Score > 100 {
		result.Score = 100
	}
	if result.Issues == nil {
		result.Issues = []core.Issue{}
	}
	return &result, nil
}

// stripJSONFence removes ```json ... ``` wrapping that some models add around
// their output.
func stripJSONFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	idx := strings.Index(trimmed, "\n")
	if idx < 0 {
		return trimmed
	}
	inner := trimmed[idx+1:]
	if lastFence := strings.LastIndex(inner, "```"); lastFence >= 0 {
		inner = inner[:lastFence]
	}
	return strings.TrimSpace(inner)
}
