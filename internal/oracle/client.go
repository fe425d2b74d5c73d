package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultMaxTokens   = 4096
	defaultTemperature = 0.2
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client is a chat-style LLM transport. Chat returns the reply text and the raw API body.
type Client interface {
	Chat(ctx context.Context, messages []Message) (string, []byte, error)
}

type ClientConfig struct {
	APIKey    string
	BaseURL   string
	Model     string
	Timeout   time.Duration
	MaxTokens int
}

// NewClient создает клиента LLM для указанного провайдера.
func NewClient(provider string, cfg ClientConfig) Client {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "groq":
		return NewGroqClient(cfg)
	default:
		return NewGeminiClient(cfg)
	}
}

func resolveMaxTokens(value int) int {
	if value > 0 {
		return value
	}

	return defaultMaxTokens
}

type apiError struct {
	Message string `json:"message"`
}

// postJSON sends payload and returns the response body; non-2xx answers become errors
// carrying the provider message when the body has one.
func postJSON(ctx context.Context, httpClient *http.Client, provider, endpoint string, headers map[string]string, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		request.Header.Set(key, value)
	}

	response, err := httpClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		var envelope struct {
			Error *apiError `json:"error"`
		}
		if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error != nil {
			return raw, fmt.Errorf("%s api error: %s", provider, envelope.Error.Message)
		}
		return raw, fmt.Errorf("%s api error: %s", provider, strings.TrimSpace(string(raw)))
	}

	return raw, nil
}
