package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/motivate/internal/core"
	"github.com/sandevgo/motivate/pkg/log"
)

// NewProvider creates the inference backend named by the configuration.
func NewProvider(ctx context.Context, cfg core.ProviderConfig) (core.Inference, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.GetProvider()).
		Str("model", cfg.GetModel()).
		Msg("starting llm provider")

	var (
		provider core.Inference
		err      error
	)

	switch cfg.GetProvider() {
	case "workersai":
		if cfg.GetAccountID() == "" {
			return nil, fmt.Errorf("CLOUDFLARE_ACCOUNT_ID is required for workersai")
		}
		provider = NewWorkersAI(cfg.GetBaseURL(), cfg.GetAccountID(), cfg.GetAPIKey(), cfg.GetModel(), cfg.GetTimeout())
	case "openai":
		provider = NewOpenAI(cfg.GetBaseURL(), cfg.GetAPIKey(), cfg.GetModel(), cfg.GetTimeout())
	case "anthropic":
		provider = NewAnthropic(cfg.GetBaseURL(), cfg.GetAPIKey(), cfg.GetModel(), cfg.GetTimeout())
	case "gemini":
		provider, err = NewGemini(ctx, cfg.GetBaseURL(), cfg.GetAPIKey(), cfg.GetModel(), cfg.GetTimeout())
	case "openrouter":
		provider = NewOpenRouter(cfg.GetBaseURL(), cfg.GetAPIKey(), cfg.GetModel(), cfg.GetTimeout())
	case "ollama":
		provider = NewOllama(cfg.GetBaseURL(), cfg.GetAPIKey(), cfg.GetModel(), cfg.GetTimeout())
	case "custom":
		if cfg.GetBaseURL() == "" {
			return nil, fmt.Errorf("LLM_BASE_URL is required for custom provider")
		}
		provider = NewCustomOpenAI(cfg.GetBaseURL(), cfg.GetAPIKey(), cfg.GetModel(), cfg.GetTimeout())
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.GetProvider())
	}
	if err != nil {
		return nil, err
	}

	if cfg.GetTokenStats() {
		if counter := Cl100kCounter(); counter != nil {
			provider = NewMetered(provider, counter)
		}
	}

	return provider, nil
}
