package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/motivate/internal/core"
)

const defaultCloudflareURL = "https://api.cloudflare.com"

// WorkersAI calls Cloudflare Workers AI through the REST "ai/run" endpoint.
type WorkersAI struct {
	baseProvider
	accountID string
}

func NewWorkersAI(baseURL, accountID, apiToken, model string, timeout time.Duration) *WorkersAI {
	if baseURL == "" {
		baseURL = defaultCloudflareURL
	}
	return &WorkersAI{
		baseProvider: newBaseProvider(strings.TrimRight(baseURL, "/"), apiToken, model, timeout),
		accountID:    accountID,
	}
}

type workersAIEnvelope struct {
	Result  json.RawMessage `json:"result"`
	Success bool            `json:"success"`
	Errors  []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

func (w *WorkersAI) Generate(ctx context.Context, messages []core.ChatTurn) (core.InferenceResult, error) {
	path := fmt.Sprintf("/client/v4/accounts/%s/ai/run/%s", w.accountID, w.model)
	headers := map[string]string{
		"Authorization": "Bearer " + w.apiKey,
	}

	data, err := w.postJSON(ctx, path, map[string]any{"messages": messages}, headers)
	if err != nil {
		return core.InferenceResult{}, err
	}

	var env workersAIEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return core.InferenceResult{}, fmt.Errorf("decode: %w", err)
	}
	if !env.Success {
		msgs := make([]string, 0, len(env.Errors))
		for _, e := range env.Errors {
			msgs = append(msgs, fmt.Sprintf("%d: %s", e.Code, e.Message))
		}
		return core.InferenceResult{}, fmt.Errorf("workers ai: %s", strings.Join(msgs, "; "))
	}

	return unwrapRunResult(env.Result), nil
}

// unwrapRunResult lifts the model output object's "response" and "result" fields to
// the boundary record. Anything that is not an object becomes the result field.
func unwrapRunResult(raw json.RawMessage) core.InferenceResult {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return core.InferenceResult{Result: raw}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return core.InferenceResult{Result: raw}
	}
	return core.InferenceResult{Response: fields["response"], Result: fields["result"]}
}
