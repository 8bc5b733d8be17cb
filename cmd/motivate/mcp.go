package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sandevgo/motivate/internal/transport/mcp"
	"github.com/sandevgo/motivate/pkg/srv"
)

var mcpCmd = &cobra.Command{
	Use:          "mcp",
	Short:        "Serve the chat tool over MCP stdio",
	Long:         `Exposes "chat" and "history" tools to MCP clients. Logs go to stderr.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupStderrLogger(cmd.Context())
		defer flushLog()

		deps, err := newChatDeps(ctx)
		if err != nil {
			return err
		}

		services := append(deps.services, mcp.NewServer(deps.chat, os.Stdin, os.Stdout))
		return srv.Run(ctx, services...)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
