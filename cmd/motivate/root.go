package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/sandevgo/motivate/internal/config"
	"github.com/sandevgo/motivate/internal/core"
	"github.com/sandevgo/motivate/internal/service/ui"
	"github.com/sandevgo/motivate/pkg/log"
)

var (
	debug bool
)

var rootCmd = &cobra.Command{
	Use:     "motivate",
	Short:   "Motivate: a coach that remembers the conversation",
	Long:    `Motivate keeps a short per-user transcript and answers each message through an LLM.`,
	Version: core.MotivateVersion,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", config.IsDebug(), "enable debug logging")
}

func setupLogger(ctx context.Context) (context.Context, func()) {
	return log.NewContextWithLogger(ctx, debug || config.IsDebug())
}

// setupStderrLogger is used by commands that own stdout.
func setupStderrLogger(ctx context.Context) (context.Context, func()) {
	return log.NewContextWithLoggerTo(ctx, os.Stderr, debug || config.IsDebug())
}

func CustomizeHelp(rootCmd *cobra.Command) {
	cobra.AddTemplateFunc("StyleTitle", func(s string) string { return ui.TitleStyle.Render(s) })
	cobra.AddTemplateFunc("StyleUsage", func(s string) string { return ui.UsageStyle.Render(s) })
	cobra.AddTemplateFunc("StyleFlag", func(s string) string { return ui.FlagStyle.Render(s) })
	cobra.AddTemplateFunc("StyleDesc", func(s string) string { return ui.DescStyle.Render(s) })

	template := `
{{StyleTitle "USAGE"}}
  {{StyleUsage .UseLine}}
{{if gt (len .Commands) 0}}{{StyleTitle "AVAILABLE COMMANDS"}}
{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding}} {{StyleDesc .Short}}{{end}}
{{end}}{{end}}
{{if .HasAvailableLocalFlags}}{{StyleTitle "FLAGS"}}
{{StyleFlag (.LocalFlags.FlagUsages | trimTrailingWhitespaces)}}
{{end}}
`
	rootCmd.SetHelpTemplate(template)
}
