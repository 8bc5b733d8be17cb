package command

import (
	"github.com/sandevgo/motivate/internal/core"
)

func NewCommands(chat core.ChatService) []core.Command {
	return []core.Command{
		NewHistoryCommand(chat),
		NewSessionCommand(),
	}
}
