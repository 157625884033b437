package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prism-ai/prism/internal/core"
)

type fakeOrchestrator struct {
	analyzeResp  *core.AnalyzeResponse
	analyzeErr   error
	analyzeCalls int
	lastRequest  core.AnalysisRequest
	lastSession  string

	models []string

	history     []core.HistoryItem
	historyErr  error
	lastHistory struct {
		session string
		limit   int
	}
}

func (f *fakeOrchestrator) Analyze(_ context.Context, req core.AnalysisRequest, sessionID string) (*core.AnalyzeResponse, error) {
	f.analyzeCalls++
	f.lastRequest = req
	f.lastSession = sessionID
	return f.analyzeResp, f.analyzeErr
}

func (f *fakeOrchestrator) GetModels(_ context.Context) []string { return f.models }

func (f *fakeOrchestrator) GetHistory(_ context.Context, sessionID string, limit int) ([]core.HistoryItem, error) {
	f.lastHistory.session = sessionID
	f.lastHistory.limit = limit
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return f.history, nil
}

func newTestAdapter(t *testing.T, reviews *fakeOrchestrator) *Service {
	t.Helper()
	svc, err := NewService(reviews, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return svc
}

func TestManifest(t *testing.T) {
	svc := newTestAdapter(t, &fakeOrchestrator{})

	m := svc.Manifest()
	assert.Equal(t, "2024-11-05", m.ProtocolVersion)
	assert.Equal(t, "prism-code-review", m.ServerInfo.Name)
	assert.Equal(t, "1.0.0", m.ServerInfo.Version)
}

func TestListTools(t *testing.T) {
	svc := newTestAdapter(t, &fakeOrchestrator{})

	list := svc.ListTools()
	require.Len(t, list.Tools, 3)
	assert.Equal(t, "analyze_code", list.Tools[0].Name)
	assert.Equal(t, "get_available_models", list.Tools[1].Name)
	assert.Equal(t, "get_review_history", list.Tools[2].Name)
	for _, tool := range list.Tools {
		assert.NotEmpty(t, tool.Description)
		assert.NotEmpty(t, tool.InputSchema)
	}
}

func TestCallToolValidation(t *testing.T) {
	tests := []struct {
		name string
		tool string
		args string
	}{
		{"unknown tool", "delete_everything", `{}`},
		{"analyze without code", "analyze_code", `{"focus":"security"}`},
		{"analyze with empty code", "analyze_code", `{"code":"","focus":"security"}`},
		{"analyze without focus", "analyze_code", `{"code":"x"}`},
		{"analyze with bad focus", "analyze_code", `{"code":"x","focus":"vibes"}`},
		{"arguments not JSON", "analyze_code", `{{{`},
		{"history with wrong limit type", "get_review_history", `{"limit":"ten"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reviews := &fakeOrchestrator{}
			svc := newTestAdapter(t, reviews)

			_, err := svc.CallTool(context.Background(), tt.tool, json.RawMessage(tt.args))
			require.Error(t, err)
			assert.True(t, IsBadRequest(err))
			// Validation failures never reach the pipeline.
			assert.Zero(t, reviews.analyzeCalls)
		})
	}
}

func TestCallToolAnalyzeCode(t *testing.T) {
	reviews := &fakeOrchestrator{analyzeResp: &core.AnalyzeResponse{
		ReviewID: "rev-1",
		Summary:  "All good.",
		Score:    95,
		Issues:   []core.Issue{},
	}}
	svc := newTestAdapter(t, reviews)

	args := json.RawMessage(`{"code":"package main","focus":"security","language":"go"}`)
	result, err := svc.CallTool(context.Background(), "analyze_code", args)
	require.NoError(t, err)

	assert.Equal(t, core.FocusSecurity, reviews.lastRequest.Focus)
	assert.Equal(t, "go", reviews.lastRequest.Language)
	assert.Equal(t, "mcp-session", reviews.lastSession)

	require.Len(t, result.Content, 1)
	assert.Equal(t, "text", result.Content[0].Type)

	var decoded core.AnalyzeResponse
	require.NoError(t, json.Unmarshal([]byte(result.Content[0].Text), &decoded))
	assert.Equal(t, "rev-1", decoded.ReviewID)
	assert.Equal(t, 95, decoded.Score)
}

func TestCallToolGetAvailableModels(t *testing.T) {
	reviews := &fakeOrchestrator{models: []string{"gemini-2.5-flash"}}
	svc := newTestAdapter(t, reviews)

	result, err := svc.CallTool(context.Background(), "get_available_models", nil)
	require.NoError(t, err)
	require.Len(t, result.Content, 1)

	var decoded struct {
		Models []string `json:"models"`
	}
	require.NoError(t, json.Unmarshal([]byte(result.Content[0].Text), &decoded))
	assert.Equal(t, []string{"gemini-2.5-flash"}, decoded.Models)
}

func TestCallToolGetReviewHistory(t *testing.T) {
	reviews := &fakeOrchestrator{history: []core.HistoryItem{
		{ID: "rev-1", Summary: "ok", Score: 80},
	}}
	svc := newTestAdapter(t, reviews)

	t.Run("defaults apply", func(t *testing.T) {
		result, err := svc.CallTool(context.Background(), "get_review_history", nil)
		require.NoError(t, err)

		assert.Equal(t, "mcp-session", reviews.lastHistory.session)

		var decoded struct {
			History []core.HistoryItem `json:"history"`
			Total   int                `json:"total"`
		}
		require.NoError(t, json.Unmarshal([]byte(result.Content[0].Text), &decoded))
		assert.Equal(t, 1, decoded.Total)
		require.Len(t, decoded.History, 1)
		assert.Equal(t, "rev-1", decoded.History[0].ID)
	})

	t.Run("explicit session", func(t *testing.T) {
		args := json.RawMessage(`{"sessionId":"agent-7"}`)
		_, err := svc.CallTool(context.Background(), "get_review_history", args)
		require.NoError(t, err)
		assert.Equal(t, "agent-7", reviews.lastHistory.session)
	})

	t.Run("total counts beyond the page", func(t *testing.T) {
		many := &fakeOrchestrator{}
		for i := range 15 {
			many.history = append(many.history, core.HistoryItem{ID: fmt.Sprintf("rev-%d", i), Score: 70})
		}
		svc := newTestAdapter(t, many)

		args := json.RawMessage(`{"limit":3}`)
		result, err := svc.CallTool(context.Background(), "get_review_history", args)
		require.NoError(t, err)

		var decoded struct {
			History []core.HistoryItem `json:"history"`
			Total   int                `json:"total"`
		}
		require.NoError(t, json.Unmarshal([]byte(result.Content[0].Text), &decoded))
		assert.Equal(t, 15, decoded.Total)
		assert.Len(t, decoded.History, 3)
	})
}

func TestListResources(t *testing.T) {
	reviews := &fakeOrchestrator{history: []core.HistoryItem{
		{ID: "rev-2", Language: "go", Focus: "security", Score: 91},
		{ID: "rev-1", Language: "", Focus: "bugs", Score: 0},
	}}
	svc := newTestAdapter(t, reviews)

	list, err := svc.ListResources(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, list.Resources, 4)

	assert.Equal(t, "prism://models", list.Resources[0].URI)
	assert.Equal(t, "prism://history/mcp-session", list.Resources[1].URI)

	assert.Equal(t, "prism://review/rev-2", list.Resources[2].URI)
	assert.Equal(t, "Review 1: go", list.Resources[2].Name)
	assert.Equal(t, "security analysis - Score: 91", list.Resources[2].Description)

	// A degraded record has no language and no real score.
	assert.Equal(t, "Review 2: unknown", list.Resources[3].Name)
	assert.Equal(t, "bugs analysis - Score: N/A", list.Resources[3].Description)
}

func TestReadResource(t *testing.T) {
	reviews := &fakeOrchestrator{
		models: []string{"gemini-2.5-flash"},
		history: []core.HistoryItem{
			{ID: "rev-1", Summary: "ok", Score: 80},
		},
	}
	svc := newTestAdapter(t, reviews)
	ctx := context.Background()

	t.Run("models", func(t *testing.T) {
		contents, err := svc.ReadResource(ctx, "prism://models", "")
		require.NoError(t, err)
		require.Len(t, contents.Contents, 1)
		assert.Equal(t, "prism://models", contents.Contents[0].URI)
		assert.Equal(t, "application/json", contents.Contents[0].MimeType)
		assert.Contains(t, contents.Contents[0].Text, "gemini-2.5-flash")
	})

	t.Run("history URI session wins over parameter", func(t *testing.T) {
		_, err := svc.ReadResource(ctx, "prism://history/uri-session", "param-session")
		require.NoError(t, err)
		assert.Equal(t, "uri-session", reviews.lastHistory.session)
	})

	t.Run("history falls back to parameter then default", func(t *testing.T) {
		_, err := svc.ReadResource(ctx, "prism://history/", "param-session")
		require.NoError(t, err)
		assert.Equal(t, "param-session", reviews.lastHistory.session)

		_, err = svc.ReadResource(ctx, "prism://history/", "")
		require.NoError(t, err)
		assert.Equal(t, "mcp-session", reviews.lastHistory.session)
	})

	t.Run("review found in session history", func(t *testing.T) {
		contents, err := svc.ReadResource(ctx, "prism://review/rev-1", "")
		require.NoError(t, err)
		require.Len(t, contents.Contents, 1)

		var item core.HistoryItem
		require.NoError(t, json.Unmarshal([]byte(contents.Contents[0].Text), &item))
		assert.Equal(t, "rev-1", item.ID)
	})

	t.Run("review not in history", func(t *testing.T) {
		_, err := svc.ReadResource(ctx, "prism://review/rev-404", "")
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
	})

	t.Run("unknown URI", func(t *testing.T) {
		_, err := svc.ReadResource(ctx, "prism://nope", "")
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
	})
}

func TestListPrompts(t *testing.T) {
	svc := newTestAdapter(t, &fakeOrchestrator{})

	list := svc.ListPrompts()
	require.Len(t, list.Prompts, 3)

	names := make([]string, 0, len(list.Prompts))
	for _, p := range list.Prompts {
		names = append(names, p.Name)
		require.Len(t, p.Arguments, 2)
		assert.True(t, p.Arguments[0].Required)
		assert.False(t, p.Arguments[1].Required)
	}
	assert.ElementsMatch(t, []string{"security_review", "performance_review", "readability_review"}, names)
}

func TestGetPrompt(t *testing.T) {
	svc := newTestAdapter(t, &fakeOrchestrator{})

	t.Run("renders with arguments", func(t *testing.T) {
		prompt, err := svc.GetPrompt("security_review", map[string]string{
			"code":     "SELECT * FROM users",
			"language": "sql",
		})
		require.NoError(t, err)
		require.Len(t, prompt.Messages, 1)

		msg := prompt.Messages[0]
		assert.Equal(t, "user", msg.Role)
		assert.Equal(t, "text", msg.Content.Type)
		assert.Contains(t, msg.Content.Text, "SELECT * FROM users")
		assert.Contains(t, msg.Content.Text, "sql")
		assert.Contains(t, msg.Content.Text, "SQL injection")
	})

	t.Run("placeholders for omitted arguments", func(t *testing.T) {
		prompt, err := svc.GetPrompt("performance_review", nil)
		require.NoError(t, err)
		text := prompt.Messages[0].Content.Text
		assert.Contains(t, text, "[code will be inserted here]")
		assert.Contains(t, text, "following code")
	})

	t.Run("unknown prompt", func(t *testing.T) {
		_, err := svc.GetPrompt("compliance_review", nil)
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
	})
}
