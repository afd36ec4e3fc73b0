package dto

type ChatRequest struct {
	Query    string `json:"query" validate:"required"`
	Provider string `json:"provider"` // optional, defaults from settings
	Model    string `json:"model"`    // optional, defaults from settings
}

type ChatEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatResponse struct {
	Answer  string       `json:"answer"`
	History []*ChatEntry `json:"history"`
}

type ChatHistoryResponse struct {
	History []*ChatEntry `json:"history"`
}

type LLMSettingsResponse struct {
	DefaultProvider string              `json:"default_provider"`
	DefaultModel    string              `json:"default_model"`
	Providers       map[string][]string `json:"providers"`
}

type SystemPromptResponse struct {
	SystemPrompt string `json:"system_prompt"`
}
