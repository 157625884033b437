// Package mcp exposes the review pipeline as a Model Context Protocol
// surface: discoverable tools, addressable resources, and prompt templates
// for external AI agents.
package mcp

import "encoding/json"

// Manifest is the static server identity returned by discovery.
type Manifest struct {
	ProtocolVersion string       `json:"protocolVersion"`
	ServerInfo      ServerInfo   `json:"serverInfo"`
	Capabilities    Capabilities `json:"capabilities"`
}

// ServerInfo identifies this MCP server.
type ServerInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

// Capabilities advertises the request families the server answers.
type Capabilities struct {
	Tools     struct{} `json:"tools"`
	Resources struct{} `json:"resources"`
	Prompts   struct{} `json:"prompts"`
}

// ToolDescriptor describes one invokable tool and its input schema.
type ToolDescriptor struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// ToolList is the tools/list response envelope.
type ToolList struct {
	Tools []ToolDescriptor `json:"tools"`
}

// ContentItem is one element of a tool result.
type ContentItem struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ToolResult is the tools/call response envelope.
type ToolResult struct {
	Content []ContentItem `json:"content"`
}

// ResourceDescriptor describes one addressable resource.
type ResourceDescriptor struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MimeType    string `json:"mimeType"`
}

// ResourceList is the resources/list response envelope.
type ResourceList struct {
	Resources []ResourceDescriptor `json:"resources"`
}

// ResourceContent is one element of a resources/read response.
type ResourceContent struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType"`
	Text     string `json:"text"`
}

// ResourceContents is the resources/read response envelope.
type ResourceContents struct {
	Contents []ResourceContent `json:"contents"`
}

// PromptArgument describes one argument a prompt template accepts.
type PromptArgument struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// PromptDescriptor describes one named prompt template.
type PromptDescriptor struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Arguments   []PromptArgument `json:"arguments"`
}

// PromptList is the prompts/list response envelope.
type PromptList struct {
	Prompts []PromptDescriptor `json:"prompts"`
}

// PromptContent is the text payload of a prompt message.
type PromptContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// PromptMessage is one rendered message of a prompt.
type PromptMessage struct {
	Role    string        `json:"role"`
	Content PromptContent `json:"content"`
}

// Prompt is the prompts/get response: a rendered template.
type Prompt struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Messages    []PromptMessage `json:"messages"`
}
