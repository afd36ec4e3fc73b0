package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"notebookrag/pkg/apperror"
	"notebookrag/pkg/llm"
)

const defaultBaseURL = "https://api.groq.com/openai/v1"

// Provider talks to the Groq cloud chat-completions API (OpenAI-compatible).
type Provider struct {
	BaseURL   string
	ApiKey    string
	ModelName string
	Client    *http.Client
}

var _ llm.Provider = &Provider{}

func New(apiKey, modelName string) *Provider {
	return &Provider{
		BaseURL:   defaultBaseURL,
		ApiKey:    apiKey,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (g *Provider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	if g.ApiKey == "" {
		return "", apperror.Config(nil, "GROQ_API_KEY is not set")
	}

	options := &llm.Options{
		Temperature: 0.7,
	}
	for _, opt := range opts {
		opt(options)
	}

	messages := make([]chatMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = "assistant"
		}
		messages[i] = chatMessage{
			Role:    role,
			Content: msg.Content,
		}
	}

	model := g.ModelName
	if options.Model != "" {
		model = options.Model
	}

	reqPayload := chatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: options.Temperature,
	}
	if options.MaxTokens > 0 {
		reqPayload.MaxTokens = options.MaxTokens
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return "", apperror.Provider(err, "marshal request")
	}

	url := g.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", apperror.Provider(err, "create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.ApiKey)

	resp, err := g.Client.Do(req)
	if err != nil {
		return "", apperror.Provider(err, "generation failed")
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperror.Provider(err, "read response")
	}

	if resp.StatusCode != http.StatusOK {
		return "", apperror.Provider(
			fmt.Errorf("status %d, body: %s", resp.StatusCode, string(bodyBytes)),
			"generation failed",
		)
	}

	var groqResp chatCompletionResponse
	if err := json.Unmarshal(bodyBytes, &groqResp); err != nil {
		return "", apperror.Provider(err, "unmarshal response")
	}

	if len(groqResp.Choices) == 0 {
		return "", apperror.Provider(nil, "generation failed: empty choices")
	}

	return groqResp.Choices[0].Message.Content, nil
}

func (g *Provider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return g.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}
