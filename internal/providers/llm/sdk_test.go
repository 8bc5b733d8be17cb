package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/sandevgo/motivate/internal/core"
)

var sampleTurns = []core.ChatTurn{
	core.SystemTurn(),
	{Role: core.RoleUser, Content: "hello"},
	{Role: core.RoleAssistant, Content: "hi, how can I help?"},
	{Role: core.RoleUser, Content: "motivate me"},
}

func TestOpenAI_Generate(t *testing.T) {
	var roles []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Messages []struct {
				Role string `json:"role"`
			} `json:"messages"`
		}
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &body)
		for _, m := range body.Messages {
			roles = append(roles, m.Role)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"c1","object":"chat.completion","created":1,"model":"gpt","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"One step at a time."}}]}`)
	}))
	defer srv.Close()

	p := NewOpenAI(srv.URL+"/v1/", "key", "gpt", time.Second)
	res, err := p.Generate(context.Background(), sampleTurns)
	require.NoError(t, err)

	assert.Equal(t, []string{"system", "user", "assistant", "user"}, roles)
	assert.JSONEq(t, `"One step at a time."`, string(res.Response))
}

func TestOpenAI_NoRetryOnFailure(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, `{"error":{"message":"overloaded"}}`)
	}))
	defer srv.Close()

	_, err := NewOpenAI(srv.URL+"/v1/", "key", "gpt", time.Second).Generate(context.Background(), sampleTurns)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestAnthropic_Generate(t *testing.T) {
	var gotSystem string
	var gotCount int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			System []struct {
				Text string `json:"text"`
			} `json:"system"`
			Messages []json.RawMessage `json:"messages"`
		}
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &body)
		if len(body.System) > 0 {
			gotSystem = body.System[0].Text
		}
		gotCount = len(body.Messages)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"msg_1","type":"message","role":"assistant","model":"claude","content":[{"type":"text","text":"Keep "},{"type":"text","text":"going."}],"stop_reason":"end_turn","usage":{"input_tokens":10,"output_tokens":3}}`)
	}))
	defer srv.Close()

	p := NewAnthropic(srv.URL, "key", "claude", time.Second)
	res, err := p.Generate(context.Background(), sampleTurns)
	require.NoError(t, err)

	assert.Equal(t, core.SystemPreamble, gotSystem)
	assert.Equal(t, 3, gotCount)
	assert.JSONEq(t, `"Keep going."`, string(res.Response))
}

func TestToAnthropicMessages(t *testing.T) {
	msgs, system := toAnthropicMessages(sampleTurns)
	assert.Equal(t, core.SystemPreamble, system)
	require.Len(t, msgs, 3)
	assert.EqualValues(t, "user", msgs[0].Role)
	assert.EqualValues(t, "assistant", msgs[1].Role)
}

func TestToGeminiContents(t *testing.T) {
	contents, system := toGeminiContents(sampleTurns)
	assert.Equal(t, core.SystemPreamble, system)
	require.Len(t, contents, 3)
	assert.Equal(t, genai.RoleUser, contents[0].Role)
	assert.Equal(t, genai.RoleModel, contents[1].Role)
	assert.Equal(t, "motivate me", contents[2].Parts[0].Text)
}

func TestGeminiText(t *testing.T) {
	res := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{
				{Text: "thinking...", Thought: true},
				{Text: "Start small."},
			}}},
			{Content: nil},
		},
	}
	assert.Equal(t, "Start small.", geminiText(res))
	assert.Equal(t, "", geminiText(nil))
}
