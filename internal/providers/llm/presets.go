package llm

import (
	"time"

	"github.com/sandevgo/motivate/internal/core"
)

const (
	defaultOpenRouterURL = "https://openrouter.ai/api"
	defaultOllamaURL     = "http://localhost:11434"
)

// Bearer-token presets over the chat completions wire format.
type (
	OpenRouter   struct{ *OpenAICompatible }
	Ollama       struct{ *OpenAICompatible }
	CustomOpenAI struct{ *OpenAICompatible }
)

func bearerCompatible(baseURL, apiKey, model string, timeout time.Duration, headers map[string]string) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{
		BaseURL:      baseURL,
		APIKey:       apiKey,
		Model:        model,
		AuthHeader:   "Authorization",
		AuthPrefix:   "Bearer ",
		ExtraHeaders: headers,
		Timeout:      timeout,
	})
}

// NewOpenRouter identifies the app through the attribution headers OpenRouter reads.
func NewOpenRouter(baseURL, apiKey, model string, timeout time.Duration) *OpenRouter {
	if baseURL == "" {
		baseURL = defaultOpenRouterURL
	}
	return &OpenRouter{bearerCompatible(baseURL, apiKey, model, timeout, map[string]string{
		"HTTP-Referer": core.MotivateRepositoryURL,
		"X-Title":      core.MotivateName,
	})}
}

// NewOllama talks to a local Ollama. The key only matters behind an auth proxy.
func NewOllama(baseURL, apiKey, model string, timeout time.Duration) *Ollama {
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}
	return &Ollama{bearerCompatible(baseURL, apiKey, model, timeout, nil)}
}

func NewCustomOpenAI(baseURL, apiKey, model string, timeout time.Duration) *CustomOpenAI {
	return &CustomOpenAI{bearerCompatible(baseURL, apiKey, model, timeout, nil)}
}
