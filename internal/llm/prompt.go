package llm

import (
	"fmt"
	"strings"

	"github.com/prism-ai/prism/internal/core"
)

const promptShape = `{
  "summary": "Brief high-level summary",
  "score": number (0-100),
  "issues": [
    {
      "line": number,
      "severity": "info" | "warning" | "critical",
      "message": "Short explanation",
      "suggestion": "Refactored code snippet if applicable (optional)"
    }
  ],
  "detectedLanguage": "Detected programming language (optional)"
}`

// reviewPrompt builds the single-turn prompt sent to the model. The model is
// pinned to a constrained JSON shape so the response can be decoded directly.
func reviewPrompt(req core.AnalysisRequest) string {
	var sb strings.Builder
	sb.WriteString("You are Prism, an elite code review AI.\n")
	fmt.Fprintf(&sb, "Your goal is to review the code with a focus on: %s.\n", strings.ToUpper(string(req.Focus)))
	if req.Language != "" {
		fmt.Fprintf(&sb, "The code is written in %s.\n", req.Language)
	}
	sb.WriteString("Return ONLY valid JSON matching this structure:\n")
	sb.WriteString(promptShape)
	sb.WriteString("\nNo markdown, no conversation. Just the JSON.\n\n")
	sb.WriteString("Code to review:\n\n")
	sb.WriteString(req.Code)
	return sb.String()
}
