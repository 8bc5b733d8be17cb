// Package command implements the slash commands shared by the chat transports.
package command

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sandevgo/motivate/internal/core"
)

type Router struct {
	commands map[string]core.Command
}

func New(commands []core.Command) *Router {
	c := &Router{
		commands: make(map[string]core.Command),
	}

	for _, cmd := range commands {
		c.commands[cmd.Name()] = cmd
	}
	c.commands[helpName] = &helpCommand{router: c}
	return c
}

// Execute runs input when it is a slash command. The bool reports whether input was
// consumed; anything else should go to the coordinator as a chat turn.
func (c *Router) Execute(ctx context.Context, sessionKey, input string) (string, bool) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return "", false
	}

	parts := strings.Fields(input)
	// Telegram appends the bot name in groups: /history@motivate_bot
	name, _, _ := strings.Cut(strings.TrimPrefix(parts[0], "/"), "@")
	args := parts[1:]

	cmd, ok := c.commands[name]
	if !ok {
		return fmt.Sprintf("Unknown command: /%s. Try /%s.", name, helpName), true
	}

	result, err := cmd.Execute(ctx, sessionKey, args)
	if err != nil {
		return formatter.Error(err), true
	}
	return result, true
}

// ListCommands returns commands sorted by name.
func (c *Router) ListCommands() []core.Command {
	res := make([]core.Command, 0, len(c.commands))
	for _, cmd := range c.commands {
		res = append(res, cmd)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name() < res[j].Name() })
	return res
}
