package core

import "context"

// CmdRouter dispatches slash commands typed into a chat transport.
type CmdRouter interface {
	Execute(ctx context.Context, sessionKey, input string) (string, bool)
	ListCommands() []Command
}

type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, sessionKey string, args []string) (string, error)
}
