package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/motivate/internal/core"
)

type fakeChat struct {
	turns map[string]core.Transcript
	err   error
}

func newFakeChat() *fakeChat {
	return &fakeChat{turns: map[string]core.Transcript{}}
}

func (f *fakeChat) HandleTurn(_ context.Context, key, message string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	t, ok := f.turns[key]
	if !ok {
		t = core.NewTranscript()
	}
	reply := "echo: " + message
	f.turns[key] = append(t,
		core.ChatTurn{Role: core.RoleUser, Content: message},
		core.ChatTurn{Role: core.RoleAssistant, Content: reply},
	)
	return reply, nil
}

func (f *fakeChat) History(_ context.Context, key string) (core.Transcript, error) {
	if t, ok := f.turns[key]; ok {
		return t, nil
	}
	return core.NewTranscript(), nil
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "unexpected content type %T", res.Content[0])
	return text.Text
}

func TestHandleChat(t *testing.T) {
	chat := newFakeChat()
	s := NewServer(chat, &bytes.Buffer{}, &bytes.Buffer{})

	res, err := s.handleChat(context.Background(), callRequest(toolChat, map[string]any{
		"session_key": "agent-1",
		"message":     "plan my week",
	}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "echo: plan my week", resultText(t, res))
	assert.Len(t, chat.turns["agent-1"], 3)
}

func TestHandleChat_InvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
	}{
		{name: "missing key", args: map[string]any{"message": "hi"}},
		{name: "missing message", args: map[string]any{"session_key": "a"}},
		{name: "blank key", args: map[string]any{"session_key": "  ", "message": "hi"}},
		{name: "blank message", args: map[string]any{"session_key": "a", "message": " "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chat := newFakeChat()
			s := NewServer(chat, &bytes.Buffer{}, &bytes.Buffer{})

			res, err := s.handleChat(context.Background(), callRequest(toolChat, tt.args))
			require.NoError(t, err)
			assert.True(t, res.IsError)
			assert.Empty(t, chat.turns)
		})
	}
}

func TestHandleChat_TurnError(t *testing.T) {
	chat := newFakeChat()
	chat.err = errors.New("inference failed: timeout")
	s := NewServer(chat, &bytes.Buffer{}, &bytes.Buffer{})

	res, err := s.handleChat(context.Background(), callRequest(toolChat, map[string]any{
		"session_key": "a",
		"message":     "hi",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "timeout")
}

func TestHandleHistory(t *testing.T) {
	chat := newFakeChat()
	s := NewServer(chat, &bytes.Buffer{}, &bytes.Buffer{})

	_, err := s.handleChat(context.Background(), callRequest(toolChat, map[string]any{
		"session_key": "k",
		"message":     "hello",
	}))
	require.NoError(t, err)

	res, err := s.handleHistory(context.Background(), callRequest(toolHistory, map[string]any{"session_key": "k"}))
	require.NoError(t, err)

	var turns core.Transcript
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &turns))
	require.Len(t, turns, 3)
	assert.Equal(t, core.RoleSystem, turns[0].Role)
	assert.Equal(t, "hello", turns[1].Content)
}
