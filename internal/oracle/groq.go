package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// GroqClient calls the Groq OpenAI-compatible chat completions API.
type GroqClient struct {
	apiKey     string
	baseURL    string
	model      string
	maxTokens  int
	httpClient *http.Client
}

type groqResponseFormat struct {
	Type string `json:"type"`
}

type groqChatRequest struct {
	Model          string              `json:"model"`
	Messages       []Message           `json:"messages"`
	Temperature    float64             `json:"temperature,omitempty"`
	MaxTokens      int                 `json:"max_tokens,omitempty"`
	ResponseFormat *groqResponseFormat `json:"response_format,omitempty"`
}

type groqChatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// NewGroqClient создает клиент Groq.
func NewGroqClient(cfg ClientConfig) *GroqClient {
	return &GroqClient{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		maxTokens:  cfg.MaxTokens,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Chat отправляет сообщения в Groq и возвращает текст ответа и сырое тело API.
func (c *GroqClient) Chat(ctx context.Context, messages []Message) (string, []byte, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return "", nil, errors.New("groq api key is missing")
	}

	request := groqChatRequest{
		Model:          c.model,
		Messages:       messages,
		Temperature:    defaultTemperature,
		MaxTokens:      resolveMaxTokens(c.maxTokens),
		ResponseFormat: &groqResponseFormat{Type: "json_object"},
	}

	headers := map[string]string{"Authorization": "Bearer " + c.apiKey}
	raw, err := postJSON(ctx, c.httpClient, "groq", c.baseURL+"/chat/completions", headers, request)
	if err != nil {
		return "", raw, err
	}

	var parsed groqChatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", raw, err
	}
	if len(parsed.Choices) == 0 {
		return "", raw, errors.New("groq response missing choices")
	}

	return parsed.Choices[0].Message.Content, raw, nil
}
