package llm

import (
	"context"
	"sync"
	"time"

	"github.com/pkoukk/tiktoken-go"

	"github.com/sandevgo/motivate/internal/core"
	"github.com/sandevgo/motivate/pkg/log"
)

// TokenCounter returns the number of tokens in text.
type TokenCounter func(text string) int

var (
	tkOnce sync.Once
	tk     *tiktoken.Tiktoken
)

// Cl100kCounter counts with the cl100k_base encoding. It returns nil if the encoding
// cannot be loaded.
func Cl100kCounter() TokenCounter {
	tkOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err == nil {
			tk = enc
		}
	})
	if tk == nil {
		return nil
	}
	return func(text string) int {
		return len(tk.Encode(text, nil, nil))
	}
}

// Metered logs prompt and reply token estimates around another backend.
type Metered struct {
	next  core.Inference
	count TokenCounter
}

func NewMetered(next core.Inference, count TokenCounter) *Metered {
	return &Metered{next: next, count: count}
}

func (m *Metered) Generate(ctx context.Context, messages []core.ChatTurn) (core.InferenceResult, error) {
	logger := log.FromCtx(ctx)

	prompt := m.PromptTokens(messages)
	start := time.Now()
	res, err := m.next.Generate(ctx, messages)
	if err != nil {
		return res, err
	}

	logger.Info().
		Int("prompt_tokens", prompt).
		Int("reply_tokens", m.count(string(res.Response))+m.count(string(res.Result))).
		Int("turns", len(messages)).
		Dur("elapsed", time.Since(start)).
		Msg("inference completed")

	return res, nil
}

// PromptTokens sums token estimates over the role and content of every turn.
func (m *Metered) PromptTokens(messages []core.ChatTurn) int {
	total := 0
	for _, msg := range messages {
		total += m.count(string(msg.Role)) + m.count(msg.Content)
	}
	return total
}
