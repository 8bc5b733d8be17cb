package command

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/motivate/internal/core"
)

type historyChat struct {
	turns core.Transcript
	err   error
}

func (h historyChat) HandleTurn(context.Context, string, string) (string, error) {
	return "", errors.New("not used")
}

func (h historyChat) History(context.Context, string) (core.Transcript, error) {
	return h.turns, h.err
}

func withTurns(n int) core.Transcript {
	t := core.NewTranscript()
	for i := 0; i < n; i++ {
		t = append(t, core.ChatTurn{Role: core.RoleUser, Content: fmt.Sprintf("msg %d", i)})
	}
	return t
}

func TestRouter_PassesThroughPlainText(t *testing.T) {
	r := New(NewCommands(historyChat{}))

	out, handled := r.Execute(context.Background(), "k", "hello there")
	assert.False(t, handled)
	assert.Empty(t, out)
}

func TestRouter_Unknown(t *testing.T) {
	r := New(NewCommands(historyChat{}))

	out, handled := r.Execute(context.Background(), "k", "/reset")
	assert.True(t, handled)
	assert.Contains(t, out, "Unknown command: /reset")
}

func TestRouter_Help(t *testing.T) {
	r := New(NewCommands(historyChat{}))

	out, handled := r.Execute(context.Background(), "k", "/help")
	require.True(t, handled)
	assert.Contains(t, out, "/help")
	assert.Contains(t, out, "/history")
	assert.Contains(t, out, "/session")

	names := []string{}
	for _, c := range r.ListCommands() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"help", "history", "session"}, names)
}

func TestRouter_BotSuffix(t *testing.T) {
	r := New(NewCommands(historyChat{}))

	out, handled := r.Execute(context.Background(), "telegram-1", "/session@motivate_bot")
	require.True(t, handled)
	assert.Contains(t, out, "telegram-1")
}

func TestHistoryCommand(t *testing.T) {
	tests := []struct {
		name     string
		chat     historyChat
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "fresh session",
			chat:     historyChat{turns: core.NewTranscript()},
			input:    "/history",
			contains: []string{"No messages yet."},
		},
		{
			name:     "default window",
			chat:     historyChat{turns: withTurns(12)},
			input:    "/history",
			contains: []string{"Last 10 turns", "msg 11", "msg 2"},
			excludes: []string{"msg 1\n", core.SystemPreamble},
		},
		{
			name:     "explicit count",
			chat:     historyChat{turns: withTurns(5)},
			input:    "/history 2",
			contains: []string{"Last 2 turns", "msg 4", "msg 3"},
			excludes: []string{"msg 2"},
		},
		{
			name:     "invalid count",
			chat:     historyChat{turns: withTurns(5)},
			input:    "/history many",
			contains: []string{"Command error", "positive number"},
		},
		{
			name:     "store error",
			chat:     historyChat{err: errors.New("database is locked")},
			input:    "/history",
			contains: []string{"database is locked"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(NewCommands(tt.chat))
			out, handled := r.Execute(context.Background(), "k", tt.input)
			require.True(t, handled)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}
