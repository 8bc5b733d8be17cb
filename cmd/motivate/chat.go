package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sandevgo/motivate/internal/core"
	"github.com/sandevgo/motivate/internal/service/command"
	"github.com/sandevgo/motivate/internal/transport/cli"
	"github.com/sandevgo/motivate/pkg/srv"
)

var (
	chatSession string
	chatMessage string
	chatPlain   bool
)

var chatCmd = &cobra.Command{
	Use:          "chat",
	Short:        "Chat from the terminal",
	Long:         `Opens an interactive prompt bound to one session key, or sends a single message with -m.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupStderrLogger(cmd.Context())
		defer flushLog()

		deps, err := newChatDeps(ctx)
		if err != nil {
			return err
		}
		defer closeAll(ctx, deps.services)

		key := core.KeyOrDefault(chatSession)
		renderer := cli.NewRenderer(!chatPlain, 80)

		if chatMessage != "" {
			return cli.OneShot(ctx, deps.chat, key, chatMessage, renderer, os.Stdout)
		}

		commands := command.New(command.NewCommands(deps.chat))
		rl, err := cli.NewReadLine(deps.chat, commands, key, deps.app.GetInputHistoryPath(), renderer)
		if err != nil {
			return err
		}
		return srv.Run(ctx, rl)
	},
}

func init() {
	chatCmd.Flags().StringVarP(&chatSession, "session", "s", "cli-local", "session key")
	chatCmd.Flags().StringVarP(&chatMessage, "message", "m", "", "send one message and exit")
	chatCmd.Flags().BoolVar(&chatPlain, "plain", false, "print replies without terminal styling")
	rootCmd.AddCommand(chatCmd)
}
