package command

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sandevgo/motivate/internal/core"
)

const (
	helpName    = "help"
	historyName = "history"
	sessionName = "session"

	defaultHistoryTurns = 10
)

type helpCommand struct {
	router *Router
}

func (h *helpCommand) Name() string        { return helpName }
func (h *helpCommand) Description() string { return "List available commands" }

func (h *helpCommand) Execute(context.Context, string, []string) (string, error) {
	var sb strings.Builder
	sb.WriteString(formatter.Title("Commands"))
	for _, cmd := range h.router.ListCommands() {
		fmt.Fprintf(&sb, "/%s  %s\n", cmd.Name(), cmd.Description())
	}
	return sb.String(), nil
}

type HistoryCommand struct {
	chat core.ChatService
}

func NewHistoryCommand(chat core.ChatService) *HistoryCommand {
	return &HistoryCommand{chat: chat}
}

func (h *HistoryCommand) Name() string { return historyName }
func (h *HistoryCommand) Description() string {
	return "Show the last turns of this conversation: /history [n]"
}

func (h *HistoryCommand) Execute(ctx context.Context, sessionKey string, args []string) (string, error) {
	limit := defaultHistoryTurns
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return "", fmt.Errorf("turn count must be a positive number, got %q", args[0])
		}
		limit = n
	}

	turns, err := h.chat.History(ctx, sessionKey)
	if err != nil {
		return "", err
	}

	// The system preamble is not part of the visible conversation.
	if len(turns) > 0 && turns[0].Role == core.RoleSystem {
		turns = turns[1:]
	}
	if len(turns) == 0 {
		return "No messages yet.", nil
	}
	if len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}

	var sb strings.Builder
	sb.WriteString(formatter.Title(fmt.Sprintf("Last %d turns", len(turns))))
	for _, t := range turns {
		fmt.Fprintf(&sb, "**%s**\n%s\n\n", t.Role, formatter.Quote(t.Content))
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

type SessionCommand struct{}

func NewSessionCommand() *SessionCommand { return &SessionCommand{} }

func (s *SessionCommand) Name() string        { return sessionName }
func (s *SessionCommand) Description() string { return "Show the session key of this chat" }

func (s *SessionCommand) Execute(_ context.Context, sessionKey string, _ []string) (string, error) {
	return formatter.Label("Session", sessionKey), nil
}
