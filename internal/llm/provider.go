// Package llm implements the analysis provider backed by Google's Gemini
// models, with a deterministic mock fallback for unconfigured or failing
// backends.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/prism-ai/prism/internal/core"
)

const (
	// mockScore is the fixed sentinel score of every mock result.
	mockScore = 88

	generateContentMethod = "generateContent"
)

// fallbackModels is returned when the backend's model listing fails.
var fallbackModels = []string{"gemini-2.5-flash", "gemini-2.5-pro", "gemini-1.5-flash"}

// GeminiProvider implements core.AnalysisProvider. With no API key the
// backend seams stay nil and every call takes the mock path; with a key each
// analysis makes exactly one backend attempt before falling back.
type GeminiProvider struct {
	client       *genai.Client
	defaultModel string
	logger       *slog.Logger

	// generateFn and listFn are the backend seams. They are nil in mock
	// mode and point at the genai-backed methods otherwise.
	generateFn func(ctx context.Context, req core.AnalysisRequest) (string, error)
	listFn     func(ctx context.Context) ([]string, error)
}

// NewGeminiProvider creates the provider. An empty apiKey is not an error:
// the provider runs in mock mode and must never fail a request.
func NewGeminiProvider(ctx context.Context, apiKey, defaultModel string, logger *slog.Logger) (*GeminiProvider, error) {
	p := &GeminiProvider{defaultModel: defaultModel, logger: logger}
	if apiKey == "" {
		logger.Warn("no GEMINI_API_KEY configured, analysis runs in mock mode")
		return p, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	p.client = client
	p.generateFn = p.generate
	p.listFn = p.listModels
	return p, nil
}

// Close releases the underlying client, if any.
func (p *GeminiProvider) Close() error {
	if p.client == nil {
		return nil
	}
	return p.client.Close()
}

// Analyze reviews the snippet with the requested focus. Backend errors and
// unparseable responses degrade to the mock result; they are never surfaced.
func (p *GeminiProvider) Analyze(ctx context.Context, req core.AnalysisRequest) *core.AnalysisResult {
	if p.generateFn == nil {
		return mockResult(req)
	}

	text, err := p.generateFn(ctx, req)
	if err != nil {
		p.logger.Warn("model call failed, falling back to mock result", "error", err)
		return mockResult(req)
	}

	result, err := decodeAnalysis(text)
	if err != nil {
		p.logger.Warn("model response was not valid analysis JSON, falling back to mock result", "error", err)
		return mockResult(req)
	}
	return result
}

// generate makes the single backend attempt and returns the raw response text.
func (p *GeminiProvider) generate(ctx context.Context, req core.AnalysisRequest) (string, error) {
	name := req.Model
	if name == "" {
		name = p.defaultModel
	}

	model := p.client.GenerativeModel(name)
	model.SetTemperature(0.2)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(reviewPrompt(req)))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("model returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("model returned no text parts")
	}
	return sb.String(), nil
}

// ListModels returns the models that support content generation. Without a
// credential it returns the mock sentinel; on listing failure it returns a
// static set of known-good identifiers.
func (p *GeminiProvider) ListModels(ctx context.Context) []string {
	if p.listFn == nil {
		return []string{"mock-model"}
	}

	models, err := p.listFn(ctx)
	if err != nil {
		p.logger.Warn("model listing failed, using fallback list", "error", err)
		return fallbackModels
	}
	if len(models) == 0 {
		return fallbackModels
	}
	return models
}

// listModels walks the backend's model iterator, keeping only models that
// can generate content.
func (p *GeminiProvider) listModels(ctx context.Context) ([]string, error) {
	var models []string
	it := p.client.ListModels(ctx)
	for {
		info, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		if supportsGeneration(info.SupportedGenerationMethods) {
			models = append(models, strings.TrimPrefix(info.Name, "models/"))
		}
	}
	return models, nil
}

func supportsGeneration(methods []string) bool {
	for _, m := range methods {
		if m == generateContentMethod {
			return true
		}
	}
	return false
}

// mockResult is the deterministic placeholder analysis. It is clearly tagged
// and identical for every request with the same focus and language.
func mockResult(req core.AnalysisRequest) *core.AnalysisResult {
	lang := req.Language
	if lang == "" {
		lang = "code"
	}
	return &core.AnalysisResult{
		Summary: fmt.Sprintf("(MOCK) Analyzed %s for %s. No API key provided.", lang, req.Focus),
		Score:   mockScore,
		Issues: []core.Issue{
			{
				Line:       2,
				Severity:   core.SeverityWarning,
				Message:    "This is a mock issue. Configure GEMINI_API_KEY to see real results.",
				Suggestion: "const real = true;",
			},
		},
	}
}

var _ core.AnalysisProvider = (*GeminiProvider)(nil)
