package mcp

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// toolName is the closed set of invokable tools. Dispatch happens over
// these constants, never over free-form strings.
type toolName string

const (
	toolAnalyzeCode        toolName = "analyze_code"
	toolGetAvailableModels toolName = "get_available_models"
	toolGetReviewHistory   toolName = "get_review_history"
)

const (
	analyzeCodeSchema = `{
		"type": "object",
		"properties": {
			"code": {
				"type": "string",
				"minLength": 1,
				"description": "The code to analyze"
			},
			"focus": {
				"type": "string",
				"enum": ["security", "performance", "readability", "bugs"],
				"description": "Analysis focus area"
			},
			"language": {
				"type": "string",
				"description": "Programming language (optional, auto-detected if not provided)"
			}
		},
		"required": ["code", "focus"]
	}`

	getModelsSchema = `{
		"type": "object",
		"properties": {}
	}`

	getHistorySchema = `{
		"type": "object",
		"properties": {
			"sessionId": {
				"type": "string",
				"description": "Session ID to retrieve history for"
			},
			"limit": {
				"type": "number",
				"description": "Maximum number of reviews to return (default: 10)"
			}
		}
	}`
)

// catalogEntry pairs a tool descriptor with its compiled input schema.
type catalogEntry struct {
	descriptor ToolDescriptor
	schema     *jsonschema.Schema
}

// toolCatalog holds the static tool surface, with every input schema
// compiled once at construction.
type toolCatalog struct {
	entries map[toolName]catalogEntry
	order   []toolName
}

func newToolCatalog() (*toolCatalog, error) {
	specs := []struct {
		name        toolName
		description string
		schema      string
	}{
		{toolAnalyzeCode, "Analyze code for security, performance, readability, or bug issues using AI", analyzeCodeSchema},
		{toolGetAvailableModels, "Get list of available AI models for code analysis", getModelsSchema},
		{toolGetReviewHistory, "Retrieve code review history for a session", getHistorySchema},
	}

	cat := &toolCatalog{entries: make(map[toolName]catalogEntry, len(specs))}
	for _, spec := range specs {
		compiled, err := compileSchema(string(spec.name), spec.schema)
		if err != nil {
			return nil, fmt.Errorf("tool %s: %w", spec.name, err)
		}
		cat.entries[spec.name] = catalogEntry{
			descriptor: ToolDescriptor{
				Name:        string(spec.name),
				Description: spec.description,
				InputSchema: json.RawMessage(spec.schema),
			},
			schema: compiled,
		}
		cat.order = append(cat.order, spec.name)
	}
	return cat, nil
}

func compileSchema(name, src string) (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("invalid schema document: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := name + ".json"
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("schema resource error: %w", err)
	}
	return c.Compile(url)
}

// list returns the descriptors in declaration order.
func (c *toolCatalog) list() []ToolDescriptor {
	out := make([]ToolDescriptor, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.entries[name].descriptor)
	}
	return out
}

// validate checks raw tool arguments against the tool's declared schema.
// A nil payload validates as an empty object.
func (c *toolCatalog) validate(name toolName, args json.RawMessage) error {
	entry, ok := c.entries[name]
	if !ok {
		return &BadRequestError{Msg: fmt.Sprintf("Unknown tool: %s", name)}
	}

	if len(args) == 0 {
		args = json.RawMessage(`{}`)
	}
	var decoded any
	if err := json.Unmarshal(args, &decoded); err != nil {
		return &BadRequestError{Msg: fmt.Sprintf("Tool arguments are not valid JSON: %v", err)}
	}
	if err := entry.schema.Validate(decoded); err != nil {
		return &BadRequestError{Msg: fmt.Sprintf("Invalid arguments for %s: %v", name, err)}
	}
	return nil
}
