package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/prism-ai/prism/internal/mcp"
)

// MCPService is the slice of the protocol adapter the handler needs.
type MCPService interface {
	Manifest() *mcp.Manifest
	ListTools() *mcp.ToolList
	CallTool(ctx context.Context, name string, args json.RawMessage) (*mcp.ToolResult, error)
	ListResources(ctx context.Context, sessionID string) (*mcp.ResourceList, error)
	ReadResource(ctx context.Context, uri, sessionID string) (*mcp.ResourceContents, error)
	ListPrompts() *mcp.PromptList
	GetPrompt(name string, args map[string]string) (*mcp.Prompt, error)
}

// MCPHandler exposes the protocol adapter over HTTP.
type MCPHandler struct {
	adapter MCPService
	logger  *slog.Logger
}

// NewMCPHandler creates a protocol adapter handler.
func NewMCPHandler(adapter MCPService, logger *slog.Logger) *MCPHandler {
	return &MCPHandler{adapter: adapter, logger: logger}
}

// Discovery returns the server manifest.
func (h *MCPHandler) Discovery(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.adapter.Manifest())
}

// ListTools returns the tool catalog.
func (h *MCPHandler) ListTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.adapter.ListTools())
}

// CallTool validates and dispatches a tool invocation.
func (h *MCPHandler) CallTool(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.adapter.CallTool(r.Context(), body.Name, body.Arguments)
	if err != nil {
		h.respondError(w, err, "tool call failed", "tool", body.Name)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ListResources returns the resources visible to the given session.
func (h *MCPHandler) ListResources(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SessionID string `json:"sessionId"`
	}
	if err := decodeOptionalBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	list, err := h.adapter.ListResources(r.Context(), body.SessionID)
	if err != nil {
		h.respondError(w, err, "resource listing failed", "session", body.SessionID)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// ReadResource resolves a resource URI and returns its contents.
func (h *MCPHandler) ReadResource(w http.ResponseWriter, r *http.Request) {
	var body struct {
		URI       string `json:"uri"`
		SessionID string `json:"sessionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	contents, err := h.adapter.ReadResource(r.Context(), body.URI, body.SessionID)
	if err != nil {
		h.respondError(w, err, "resource read failed", "uri", body.URI)
		return
	}
	writeJSON(w, http.StatusOK, contents)
}

// ListPrompts returns the prompt catalog.
func (h *MCPHandler) ListPrompts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.adapter.ListPrompts())
}

// GetPrompt renders a named prompt template.
func (h *MCPHandler) GetPrompt(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name      string            `json:"name"`
		Arguments map[string]string `json:"arguments"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	prompt, err := h.adapter.GetPrompt(body.Name, body.Arguments)
	if err != nil {
		h.respondError(w, err, "prompt rendering failed", "prompt", body.Name)
		return
	}
	writeJSON(w, http.StatusOK, prompt)
}

// respondError maps adapter errors onto HTTP statuses. Caller-side errors
// keep their message; anything else is logged and masked.
func (h *MCPHandler) respondError(w http.ResponseWriter, err error, msg string, attrs ...any) {
	switch {
	case mcp.IsBadRequest(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case mcp.IsNotFound(err):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Error(msg, append(attrs, "error", err)...)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeOptionalBody decodes a JSON body when one is present. An empty body
// leaves dst untouched.
func decodeOptionalBody(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
