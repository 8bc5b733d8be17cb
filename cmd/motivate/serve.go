package main

import (
	"github.com/spf13/cobra"

	"github.com/sandevgo/motivate/internal/config"
	"github.com/sandevgo/motivate/internal/observability"
	"github.com/sandevgo/motivate/internal/service/command"
	"github.com/sandevgo/motivate/internal/service/session"
	"github.com/sandevgo/motivate/internal/transport/httpapi"
	"github.com/sandevgo/motivate/internal/transport/telegram"
	"github.com/sandevgo/motivate/pkg/log"
	"github.com/sandevgo/motivate/pkg/srv"
)

const metricsNamespace = "motivate"

var serveCmd = &cobra.Command{
	Use:          "serve",
	Short:        "Run the HTTP API and the optional Telegram bot",
	Long:         `Starts every enabled transport in front of one session store and inference backend.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Str("version", cmdVersion()).Msg("starting motivate")

		metrics := observability.NewMetrics(metricsNamespace)

		deps, err := newChatDeps(ctx, session.WithRecorder(metrics))
		if err != nil {
			return err
		}
		services := deps.services

		if deps.app.EnableHTTP {
			services = append(services, httpapi.New(config.NewHTTPConfig(ctx), deps.chat, metrics))
		}

		if deps.app.IsTelegramSelected() {
			commands := command.New(command.NewCommands(deps.chat))
			bot, err := telegram.NewBot(ctx, config.NewTelegramConfig(ctx), deps.chat, commands)
			if err != nil {
				closeAll(ctx, services)
				return err
			}
			services = append(services, bot)
		}

		if err := srv.Run(ctx, services...); err != nil {
			logger.Error().Err(err).Msg("service failed")
			return err
		}

		logger.Info().Msg("motivate has been shut down gracefully")
		return nil
	},
}

func cmdVersion() string {
	return rootCmd.Version
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
