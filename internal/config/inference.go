package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/motivate/pkg/log"
)

const DefaultWorkersAIModel = "@cf/meta/llama-3.3-70b-instruct-fp8-fast"

type InferenceConfig struct {
	Provider string `env:"LLM_PROVIDER" envDefault:"workersai"`
	Model    string `env:"LLM_MODEL" envDefault:"@cf/meta/llama-3.3-70b-instruct-fp8-fast"`
	APIKey   string `env:"LLM_API_KEY"`
	// Overrides the provider's default endpoint (ollama, custom, tests)
	BaseURL string `env:"LLM_BASE_URL"`
	// Cloudflare account for the Workers AI REST endpoint
	AccountID string        `env:"CLOUDFLARE_ACCOUNT_ID"`
	Timeout   time.Duration `env:"LLM_TIMEOUT" envDefault:"120s"`
	// Log prompt/reply token estimates per call (cl100k_base)
	TokenStats bool `env:"LLM_TOKEN_STATS"`
}

func ParseInferenceConfig() (*InferenceConfig, error) {
	c := &InferenceConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	return c, nil
}

func NewInferenceConfig(ctx context.Context) *InferenceConfig {
	c, err := ParseInferenceConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Inference config")
	}
	return c
}

func (c InferenceConfig) GetProvider() string  { return c.Provider }
func (c InferenceConfig) GetModel() string     { return c.Model }
func (c InferenceConfig) GetAPIKey() string    { return c.APIKey }
func (c InferenceConfig) GetBaseURL() string   { return c.BaseURL }
func (c InferenceConfig) GetAccountID() string { return c.AccountID }
func (c InferenceConfig) GetTimeout() time.Duration {
	return c.Timeout
}

func (c InferenceConfig) GetTokenStats() bool {
	return c.TokenStats
}
