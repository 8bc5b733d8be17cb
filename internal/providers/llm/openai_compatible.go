package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sandevgo/motivate/internal/core"
)

// OpenAICompatible speaks the /v1/chat/completions wire format used by OpenRouter,
// Ollama and most self-hosted servers.
type OpenAICompatible struct {
	baseProvider
	authHeader   string
	authPrefix   string
	extraHeaders map[string]string
}

type OpenAICompatibleConfig struct {
	BaseURL      string
	APIKey       string
	Model        string
	AuthHeader   string // e.g., "Authorization"
	AuthPrefix   string // e.g., "Bearer "
	ExtraHeaders map[string]string
	Timeout      time.Duration
}

func NewOpenAICompatible(cfg OpenAICompatibleConfig) *OpenAICompatible {
	return &OpenAICompatible{
		baseProvider: newBaseProvider(cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.Timeout),
		authHeader:   cfg.AuthHeader,
		authPrefix:   cfg.AuthPrefix,
		extraHeaders: cfg.ExtraHeaders,
	}
}

func (o *OpenAICompatible) Generate(ctx context.Context, messages []core.ChatTurn) (core.InferenceResult, error) {
	payload := map[string]any{
		"model":    o.model,
		"messages": messages,
	}

	headers := make(map[string]string)
	if o.authHeader != "" && o.apiKey != "" {
		headers[o.authHeader] = o.authPrefix + o.apiKey
	}
	for k, v := range o.extraHeaders {
		headers[k] = v
	}

	data, err := o.postJSON(ctx, "/v1/chat/completions", payload, headers)
	if err != nil {
		return core.InferenceResult{}, err
	}
	return parseOpenAIResponse(data)
}

// parseOpenAIResponse maps choices[0].message.content to the response field and the
// legacy choices[0].text to the result field. A body with no choices is a valid but
// empty result.
func parseOpenAIResponse(data []byte) (core.InferenceResult, error) {
	var result struct {
		Choices []struct {
			Message struct {
				Content json.RawMessage `json:"content"`
			} `json:"message"`
			Text json.RawMessage `json:"text"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return core.InferenceResult{}, fmt.Errorf("decode: %w", err)
	}
	if len(result.Choices) == 0 {
		return core.InferenceResult{}, nil
	}
	choice := result.Choices[0]
	return core.InferenceResult{Response: choice.Message.Content, Result: choice.Text}, nil
}
