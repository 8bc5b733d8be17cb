package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/sandevgo/motivate/internal/core"
)

const anthropicMaxTokens = 1024

type Anthropic struct {
	client anthropic.Client
	model  string
}

func NewAnthropic(baseURL, apiKey, model string, timeout time.Duration) *Anthropic {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(timeout),
		option.WithHeader("User-Agent", core.MotivateUserAgent),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &Anthropic{
		client: anthropic.NewClient(opts...),
		model:  model,
	}
}

func (a *Anthropic) Generate(ctx context.Context, messages []core.ChatTurn) (core.InferenceResult, error) {
	turns, system := toAnthropicMessages(messages)

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: anthropicMaxTokens,
		Messages:  turns,
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	message, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return core.InferenceResult{}, fmt.Errorf("anthropic request failed: %w", err)
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return core.TextResult(sb.String()), nil
}

// toAnthropicMessages splits system turns out into the top-level system prompt.
func toAnthropicMessages(turns []core.ChatTurn) ([]anthropic.MessageParam, string) {
	out := make([]anthropic.MessageParam, 0, len(turns))
	var system []string
	for _, t := range turns {
		switch t.Role {
		case core.RoleSystem:
			system = append(system, t.Content)
		case core.RoleAssistant:
			out = append(out, anthropic.NewAssistantMessage(anthropic.NewTextBlock(t.Content)))
		default:
			out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(t.Content)))
		}
	}
	return out, strings.Join(system, "\n\n")
}
