package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/prism-ai/prism/internal/core"
)

const (
	protocolVersion = "2024-11-05"
	serverName      = "prism-code-review"
	serverVersion   = "1.0.0"

	// defaultSession scopes protocol-initiated reviews when the agent does
	// not supply its own session id.
	defaultSession = "mcp-session"

	// defaultHistoryLimit bounds protocol-side history reads.
	defaultHistoryLimit = 10

	jsonMimeType = "application/json"
)

// Orchestrator is the slice of the review pipeline the adapter drives.
type Orchestrator interface {
	Analyze(ctx context.Context, req core.AnalysisRequest, sessionID string) (*core.AnalyzeResponse, error)
	GetModels(ctx context.Context) []string
	GetHistory(ctx context.Context, sessionID string, limit int) ([]core.HistoryItem, error)
}

// Service is the protocol adapter. It owns no persistent state beyond its
// static catalogs; every operation is a thin transformation over the
// orchestrator.
type Service struct {
	reviews Orchestrator
	tools   *toolCatalog
	prompts *promptManager
	logger  *slog.Logger
}

// NewService builds the adapter, compiling the tool schemas and parsing the
// prompt templates once.
func NewService(reviews Orchestrator, logger *slog.Logger) (*Service, error) {
	tools, err := newToolCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to build tool catalog: %w", err)
	}
	prompts, err := newPromptManager()
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt templates: %w", err)
	}
	return &Service{reviews: reviews, tools: tools, prompts: prompts, logger: logger}, nil
}

// Manifest returns the static server identity.
func (s *Service) Manifest() *Manifest {
	return &Manifest{
		ProtocolVersion: protocolVersion,
		ServerInfo: ServerInfo{
			Name:        serverName,
			Version:     serverVersion,
			Description: "AI-powered code review assistant with security, performance, and readability analysis",
		},
	}
}

// ListTools returns the static tool catalog.
func (s *Service) ListTools() *ToolList {
	return &ToolList{Tools: s.tools.list()}
}

// CallTool validates the arguments against the tool's declared schema and
// dispatches over the closed tool set. Unknown names and invalid arguments
// fail as BadRequestError before anything executes.
func (s *Service) CallTool(ctx context.Context, name string, args json.RawMessage) (*ToolResult, error) {
	tool := toolName(name)
	if err := s.tools.validate(tool, args); err != nil {
		return nil, err
	}

	switch tool {
	case toolAnalyzeCode:
		return s.analyzeCodeTool(ctx, args)
	case toolGetAvailableModels:
		return s.getModelsTool(ctx)
	case toolGetReviewHistory:
		return s.getHistoryTool(ctx, args)
	}
	// validate already rejected unknown names.
	return nil, &BadRequestError{Msg: fmt.Sprintf("Unknown tool: %s", name)}
}

func (s *Service) analyzeCodeTool(ctx context.Context, args json.RawMessage) (*ToolResult, error) {
	var in struct {
		Code     string `json:"code"`
		Focus    string `json:"focus"`
		Language string `json:"language"`
	}
	if err := json.Unmarshal(args, &in); err != nil {
		return nil, &BadRequestError{Msg: fmt.Sprintf("Invalid arguments: %v", err)}
	}
	focus, err := core.ParseFocus(in.Focus)
	if err != nil {
		return nil, &BadRequestError{Msg: err.Error()}
	}

	result, err := s.reviews.Analyze(ctx, core.AnalysisRequest{
		Code:     in.Code,
		Focus:    focus,
		Language: in.Language,
	}, defaultSession)
	if err != nil {
		return nil, err
	}
	return textResult(result)
}

func (s *Service) getModelsTool(ctx context.Context) (*ToolResult, error) {
	models := s.reviews.GetModels(ctx)
	return textResult(map[string]any{"models": models})
}

func (s *Service) getHistoryTool(ctx context.Context, args json.RawMessage) (*ToolResult, error) {
	var in struct {
		SessionID string `json:"sessionId"`
		Limit     int    `json:"limit"`
	}
	if len(args) > 0 {
		if err := json.Unmarshal(args, &in); err != nil {
			return nil, &BadRequestError{Msg: fmt.Sprintf("Invalid arguments: %v", err)}
		}
	}

	sessionID := in.SessionID
	if sessionID == "" {
		sessionID = defaultSession
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	// Fetch the orchestrator's default window and page locally, so total
	// reports the session's recent count rather than the page size.
	history, err := s.reviews.GetHistory(ctx, sessionID, 0)
	if err != nil {
		return nil, err
	}
	total := len(history)
	if limit < len(history) {
		history = history[:limit]
	}
	return textResult(map[string]any{"history": history, "total": total})
}

// ListResources returns the fixed models resource, the resolved session's
// history resource, and one addressable resource per history record.
func (s *Service) ListResources(ctx context.Context, sessionID string) (*ResourceList, error) {
	sid := sessionID
	if sid == "" {
		sid = defaultSession
	}

	history, err := s.reviews.GetHistory(ctx, sid, 0)
	if err != nil {
		return nil, err
	}

	resources := []ResourceDescriptor{
		{
			URI:         modelsURI,
			Name:        "Available AI Models",
			Description: "List of AI models available for code analysis",
			MimeType:    jsonMimeType,
		},
		{
			URI:         historyPrefix + sid,
			Name:        "Review History",
			Description: fmt.Sprintf("Code review history for session %s", sid),
			MimeType:    jsonMimeType,
		},
	}
	for i, item := range history {
		language := item.Language
		if language == "" {
			language = "unknown"
		}
		// A zero score marks a degraded record; it has no real score to show.
		score := "N/A"
		if item.Score > 0 {
			score = strconv.Itoa(item.Score)
		}
		resources = append(resources, ResourceDescriptor{
			URI:         reviewPrefix + item.ID,
			Name:        fmt.Sprintf("Review %d: %s", i+1, language),
			Description: fmt.Sprintf("%s analysis - Score: %s", item.Focus, score),
			MimeType:    jsonMimeType,
		})
	}
	return &ResourceList{Resources: resources}, nil
}

// ReadResource resolves a URI against the scheme matchers. A session segment
// embedded in a history URI takes precedence over the sessionID parameter.
func (s *Service) ReadResource(ctx context.Context, uri, sessionID string) (*ResourceContents, error) {
	ref, ok := parseResourceURI(uri)
	if !ok {
		return nil, &NotFoundError{Msg: fmt.Sprintf("Resource not found: %s", uri)}
	}

	switch ref.kind {
	case resourceModels:
		models := s.reviews.GetModels(ctx)
		return resourceText(uri, map[string]any{"models": models})

	case resourceHistory:
		sid := ref.session
		if sid == "" {
			sid = sessionID
		}
		if sid == "" {
			sid = defaultSession
		}
		history, err := s.reviews.GetHistory(ctx, sid, 0)
		if err != nil {
			return nil, err
		}
		return resourceText(uri, map[string]any{"history": history, "total": len(history)})

	case resourceReview:
		sid := sessionID
		if sid == "" {
			sid = defaultSession
		}
		history, err := s.reviews.GetHistory(ctx, sid, 0)
		if err != nil {
			return nil, err
		}
		for _, item := range history {
			if item.ID == ref.reviewID {
				return resourceText(uri, item)
			}
		}
		return nil, &NotFoundError{Msg: fmt.Sprintf("Review not found: %s", ref.reviewID)}
	}
	return nil, &NotFoundError{Msg: fmt.Sprintf("Resource not found: %s", uri)}
}

// ListPrompts returns the static prompt catalog.
func (s *Service) ListPrompts() *PromptList {
	return &PromptList{Prompts: s.prompts.list()}
}

// GetPrompt renders a named template with the supplied arguments,
// substituting placeholders for whatever is omitted.
func (s *Service) GetPrompt(name string, args map[string]string) (*Prompt, error) {
	return s.prompts.render(name, args["code"], args["language"])
}

// textResult wraps a value as the protocol's text content envelope.
func textResult(v any) (*ToolResult, error) {
	text, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode tool result: %w", err)
	}
	return &ToolResult{Content: []ContentItem{{Type: "text", Text: string(text)}}}, nil
}

// resourceText wraps a value as the protocol's resource content envelope.
func resourceText(uri string, v any) (*ResourceContents, error) {
	text, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode resource: %w", err)
	}
	return &ResourceContents{
		Contents: []ResourceContent{{URI: uri, MimeType: jsonMimeType, Text: string(text)}},
	}, nil
}
