package llm

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prism-ai/prism/internal/core"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMockResult(t *testing.T) {
	tests := []struct {
		name        string
		req         core.AnalysisRequest
		wantSummary string
	}{
		{
			name:        "language given",
			req:         core.AnalysisRequest{Code: "x = 1", Focus: core.FocusSecurity, Language: "python"},
			wantSummary: "(MOCK) Analyzed python for security. No API key provided.",
		},
		{
			name:        "no language falls back to code",
			req:         core.AnalysisRequest{Code: "x = 1", Focus: core.FocusPerformance},
			wantSummary: "(MOCK) Analyzed code for performance. No API key provided.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mockResult(tt.req)
			assert.Equal(t, tt.wantSummary, got.Summary)
			assert.Equal(t, 88, got.Score)
			require.Len(t, got.Issues, 1)
			issue := got.Issues[0]
			assert.Equal(t, 2, issue.Line)
			assert.Equal(t, core.SeverityWarning, issue.Severity)
			assert.Contains(t, issue.Message, "mock issue")
			assert.Equal(t, "const real = true;", issue.Suggestion)
		})
	}
}

func TestProviderWithoutKeyUsesMockPath(t *testing.T) {
	ctx := context.Background()
	p, err := NewGeminiProvider(ctx, "", "gemini-2.5-flash", testLogger())
	require.NoError(t, err)
	defer p.Close()

	result := p.Analyze(ctx, core.AnalysisRequest{Code: "package main", Focus: core.FocusBugs, Language: "go"})
	require.NotNil(t, result)
	assert.Equal(t, 88, result.Score)
	assert.Contains(t, result.Summary, "(MOCK)")

	assert.Equal(t, []string{"mock-model"}, p.ListModels(ctx))
}

func TestAnalyzeFallsBackOnBackendFailure(t *testing.T) {
	req := core.AnalysisRequest{Code: "x = 1", Focus: core.FocusSecurity, Language: "python"}
	mock := mockResult(req)

	tests := []struct {
		name     string
		generate func(context.Context, core.AnalysisRequest) (string, error)
		want     *core.AnalysisResult
	}{
		{
			name: "backend call fails",
			generate: func(context.Context, core.AnalysisRequest) (string, error) {
				return "", context.DeadlineExceeded
			},
			want: mock,
		},
		{
			name: "backend returns non-JSON",
			generate: func(context.Context, core.AnalysisRequest) (string, error) {
				return "Here is my review: the code looks fine.", nil
			},
			want: mock,
		},
		{
			name: "backend returns JSON without summary",
			generate: func(context.Context, core.AnalysisRequest) (string, error) {
				return `{"score":70,"issues":[]}`, nil
			},
			want: mock,
		},
		{
			name: "backend returns a valid analysis",
			generate: func(context.Context, core.AnalysisRequest) (string, error) {
				return `{"summary":"Tight loop allocation.","score":61,"issues":[],"detectedLanguage":"python"}`, nil
			},
			want: &core.AnalysisResult{
				Summary:          "Tight loop allocation.",
				Score:            61,
				Issues:           []core.Issue{},
				DetectedLanguage: "python",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &GeminiProvider{logger: testLogger(), generateFn: tt.generate}

			got := p.Analyze(context.Background(), req)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListModelsFallsBackOnListingFailure(t *testing.T) {
	tests := []struct {
		name string
		list func(context.Context) ([]string, error)
		want []string
	}{
		{
			name: "listing fails",
			list: func(context.Context) ([]string, error) {
				return nil, context.DeadlineExceeded
			},
			want: fallbackModels,
		},
		{
			name: "listing yields nothing usable",
			list: func(context.Context) ([]string, error) {
				return nil, nil
			},
			want: fallbackModels,
		},
		{
			name: "listing succeeds",
			list: func(context.Context) ([]string, error) {
				return []string{"gemini-2.5-flash", "gemini-2.5-pro"}, nil
			},
			want: []string{"gemini-2.5-flash", "gemini-2.5-pro"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &GeminiProvider{logger: testLogger(), listFn: tt.list}
			assert.Equal(t, tt.want, p.ListModels(context.Background()))
		})
	}
}

func TestSupportsGeneration(t *testing.T) {
	assert.True(t, supportsGeneration([]string{"countTokens", "generateContent"}))
	assert.False(t, supportsGeneration([]string{"embedContent"}))
	assert.False(t, supportsGeneration(nil))
}

func TestReviewPrompt(t *testing.T) {
	req := core.AnalysisRequest{
		Code:     "def f():\n    pass",
		Focus:    core.FocusReadability,
		Language: "python",
	}
	prompt := reviewPrompt(req)

	assert.Contains(t, prompt, "focus on: READABILITY")
	assert.Contains(t, prompt, "python")
	assert.Contains(t, prompt, req.Code)
	assert.Contains(t, prompt, `"detectedLanguage"`)
}
