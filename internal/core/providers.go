package core

import (
	"context"
	"encoding/json"
)

// InferenceResult is the boundary shape of a successful inference call. Backends
// fill whichever field they produce; either may be absent.
type InferenceResult struct {
	Response json.RawMessage `json:"response,omitempty"`
	Result   json.RawMessage `json:"result,omitempty"`
}

// TextResult wraps plain generated text as a primary response field.
func TextResult(text string) InferenceResult {
	raw, _ := json.Marshal(text)
	return InferenceResult{Response: raw}
}

// Inference generates a reply for an ordered, oldest-first list of turns.
type Inference interface {
	Generate(ctx context.Context, messages []ChatTurn) (InferenceResult, error)
}
