package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProviderConfig struct {
	provider, model, apiKey, baseURL, accountID string
}

func (s stubProviderConfig) GetProvider() string       { return s.provider }
func (s stubProviderConfig) GetModel() string          { return s.model }
func (s stubProviderConfig) GetAPIKey() string         { return s.apiKey }
func (s stubProviderConfig) GetBaseURL() string        { return s.baseURL }
func (s stubProviderConfig) GetAccountID() string      { return s.accountID }
func (s stubProviderConfig) GetTimeout() time.Duration { return time.Second }
func (s stubProviderConfig) GetTokenStats() bool       { return false }

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     stubProviderConfig
		want    any
		wantErr string
	}{
		{name: "workersai", cfg: stubProviderConfig{provider: "workersai", accountID: "acc"}, want: &WorkersAI{}},
		{name: "workersai without account", cfg: stubProviderConfig{provider: "workersai"}, wantErr: "CLOUDFLARE_ACCOUNT_ID"},
		{name: "openai", cfg: stubProviderConfig{provider: "openai"}, want: &OpenAI{}},
		{name: "anthropic", cfg: stubProviderConfig{provider: "anthropic"}, want: &Anthropic{}},
		{name: "gemini", cfg: stubProviderConfig{provider: "gemini", apiKey: "k"}, want: &Gemini{}},
		{name: "openrouter", cfg: stubProviderConfig{provider: "openrouter"}, want: &OpenRouter{}},
		{name: "ollama", cfg: stubProviderConfig{provider: "ollama"}, want: &Ollama{}},
		{name: "custom", cfg: stubProviderConfig{provider: "custom", baseURL: "http://localhost:1"}, want: &CustomOpenAI{}},
		{name: "custom without url", cfg: stubProviderConfig{provider: "custom"}, wantErr: "LLM_BASE_URL"},
		{name: "unknown", cfg: stubProviderConfig{provider: "bard"}, wantErr: "unknown llm provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(context.Background(), tt.cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, p)
		})
	}
}
