package mcp

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed prompts/*.tmpl
var promptFiles embed.FS

// codePlaceholder is substituted when a caller fetches a prompt template
// without supplying code.
const codePlaceholder = "[code will be inserted here]"

var promptDescriptions = map[string]string{
	"security_review":    "Analyze code for security vulnerabilities",
	"performance_review": "Analyze code for performance issues",
	"readability_review": "Analyze code for readability improvements",
}

// promptData is what the embedded templates interpolate.
type promptData struct {
	Code     string
	Language string
}

// promptManager renders the fixed set of named review prompts from
// templates embedded in the binary.
type promptManager struct {
	templates map[string]*template.Template
	order     []string
}

func newPromptManager() (*promptManager, error) {
	files, err := promptFiles.ReadDir("prompts")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded prompts directory: %w", err)
	}

	pm := &promptManager{templates: make(map[string]*template.Template, len(files))}
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		name := strings.TrimSuffix(file.Name(), ".tmpl")

		content, err := promptFiles.ReadFile("prompts/" + file.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded prompt file %s: %w", file.Name(), err)
		}
		tmpl, err := template.New(name).Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("could not parse prompt template %s: %w", name, err)
		}

		pm.templates[name] = tmpl
		pm.order = append(pm.order, name)
	}
	return pm, nil
}

// list returns the prompt descriptors; every template takes the same pair
// of arguments.
func (pm *promptManager) list() []PromptDescriptor {
	args := []PromptArgument{
		{Name: "code", Description: "Code to analyze", Required: true},
		{Name: "language", Description: "Programming language", Required: false},
	}

	out := make([]PromptDescriptor, 0, len(pm.order))
	for _, name := range pm.order {
		out = append(out, PromptDescriptor{
			Name:        name,
			Description: promptDescriptions[name],
			Arguments:   args,
		})
	}
	return out
}

// render produces the prompt for name, filling placeholders for omitted
// arguments. An unknown name is a NotFoundError.
func (pm *promptManager) render(name, code, language string) (*Prompt, error) {
	tmpl, ok := pm.templates[name]
	if !ok {
		return nil, &NotFoundError{Msg: fmt.Sprintf("Prompt not found: %s", name)}
	}

	data := promptData{Code: code, Language: language}
	if data.Code == "" {
		data.Code = codePlaceholder
	}
	if data.Language == "" {
		data.Language = "code"
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render prompt %s: %w", name, err)
	}

	return &Prompt{
		Name:        name,
		Description: promptDescriptions[name],
		Messages: []PromptMessage{
			{Role: "user", Content: PromptContent{Type: "text", Text: buf.String()}},
		},
	}, nil
}
