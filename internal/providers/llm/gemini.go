package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/sandevgo/motivate/internal/core"
)

type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, baseURL, apiKey, model string, timeout time.Duration) (*Gemini, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Generate(ctx context.Context, messages []core.ChatTurn) (core.InferenceResult, error) {
	contents, system := toGeminiContents(messages)

	config := &genai.GenerateContentConfig{}
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return core.InferenceResult{}, fmt.Errorf("gemini request failed: %w", err)
	}
	return core.TextResult(geminiText(result)), nil
}

// toGeminiContents maps assistant turns to the "model" role and lifts system turns
// into the system instruction.
func toGeminiContents(turns []core.ChatTurn) ([]*genai.Content, string) {
	contents := make([]*genai.Content, 0, len(turns))
	var system []string
	for _, t := range turns {
		role := genai.RoleUser
		switch t.Role {
		case core.RoleSystem:
			system = append(system, t.Content)
			continue
		case core.RoleAssistant:
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: t.Content}},
		})
	}
	return contents, strings.Join(system, "\n\n")
}

// geminiText concatenates the visible text parts, skipping thought blocks.
func geminiText(result *genai.GenerateContentResponse) string {
	if result == nil {
		return ""
	}
	var sb strings.Builder
	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.Text == "" || part.Thought {
				continue
			}
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}
