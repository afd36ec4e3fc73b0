package factory

import (
	"notebookrag/pkg/apperror"
	"notebookrag/pkg/llm"
	"notebookrag/pkg/llm/groq"
	"notebookrag/pkg/llm/ollama"
)

// Params carries the connection details a backend may need. Each builder
// picks what it uses.
type Params struct {
	Model         string
	OllamaBaseURL string
	GroqApiKey    string
}

type builder func(Params) llm.Provider

// registry maps provider identifiers to constructors. Adding a backend is
// one entry here plus its implementation package; the dispatcher never
// changes.
var registry = map[string]builder{
	"groq": func(p Params) llm.Provider {
		return groq.New(p.GroqApiKey, p.Model)
	},
	"ollama": func(p Params) llm.Provider {
		baseURL := p.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.New(baseURL, p.Model)
	},
}

// Register adds or replaces a backend constructor under an identifier.
// Follows the database/sql driver registration pattern.
func Register(providerType string, build func(Params) llm.Provider) {
	registry[providerType] = build
}

// New resolves a provider identifier. An unknown identifier is an error at
// call time, never a silent fallback.
func New(providerType string, params Params) (llm.Provider, error) {
	build, ok := registry[providerType]
	if !ok {
		return nil, apperror.Provider(nil, "invalid LLM provider: %s", providerType)
	}
	return build(params), nil
}

// Known reports whether a provider identifier is registered.
func Known(providerType string) bool {
	_, ok := registry[providerType]
	return ok
}
