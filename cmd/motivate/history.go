package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sandevgo/motivate/internal/core"
	"github.com/sandevgo/motivate/internal/transport/cli"
)

var historyJSON bool

var historyCmd = &cobra.Command{
	Use:          "history <session-key>",
	Short:        "Print the stored transcript of a session",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupStderrLogger(cmd.Context())
		defer flushLog()

		key, err := core.ValidateKey(args[0])
		if err != nil {
			return err
		}

		deps, err := newChatDeps(ctx)
		if err != nil {
			return err
		}
		defer closeAll(ctx, deps.services)

		turns, err := deps.chat.History(ctx, key)
		if err != nil {
			return err
		}

		if historyJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(turns)
		}
		_, err = fmt.Fprintln(os.Stdout, cli.FormatTranscript(turns))
		return err
	},
}

func init() {
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "print the stored JSON layout")
	rootCmd.AddCommand(historyCmd)
}
