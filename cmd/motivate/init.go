package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sandevgo/motivate/internal/config"
	"github.com/sandevgo/motivate/internal/service/installer"
	"github.com/sandevgo/motivate/pkg/env"
	"github.com/sandevgo/motivate/pkg/log"
)

// envFile is the subset of configuration `init` can write.
type envFile = installer.Values

var (
	initForce bool
	initVals  envFile
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a .env file into the runtime directory",
	Long: `Write a .env file into the runtime directory.

Without configuration flags an interactive setup wizard asks for the provider,
store and channels.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()
		logger := log.FromCtx(ctx)

		vals := &initVals
		if !hasValueFlags(cmd) {
			collected, err := installer.RunWizard()
			if err != nil {
				return err
			}
			vals = collected
		}

		runtimePath := config.GetRuntimePath()
		path, err := writeEnvFile(runtimePath, vals, initForce)
		if err != nil {
			return err
		}

		logger.Info().Str("path", path).Msg("configuration written")
		logger.Info().Msg("You can now run 'motivate serve' or 'motivate chat'.")
		return nil
	},
}

// hasValueFlags reports whether any flag other than --force and --debug was given.
func hasValueFlags(cmd *cobra.Command) bool {
	found := false
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if f.Name != "force" && f.Name != "debug" {
			found = true
		}
	})
	return found
}

func writeEnvFile(runtimePath string, vals *envFile, force bool) (string, error) {
	if err := os.MkdirAll(runtimePath, 0700); err != nil {
		return "", fmt.Errorf("failed to create runtime directory: %w", err)
	}

	path := filepath.Join(runtimePath, ".env")
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%s already exists, use --force to overwrite", path)
	}

	content, err := env.MarshalEnv(vals)
	if err != nil {
		return "", fmt.Errorf("failed to render env: %w", err)
	}

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return "", fmt.Errorf("failed to write env file: %w", err)
	}
	return path, nil
}

func init() {
	f := initCmd.Flags()
	f.BoolVar(&initForce, "force", false, "overwrite an existing .env")
	f.StringVar(&initVals.App.StoreDriver, "store", "", "session store: memory, sqlite or postgres")
	f.StringVar(&initVals.App.DatabaseURL, "database-url", "", "postgres connection string")
	f.StringVar(&initVals.Inference.Provider, "provider", "", "workersai, openai, anthropic, gemini, openrouter, ollama or custom")
	f.StringVar(&initVals.Inference.Model, "model", "", "model name")
	f.StringVar(&initVals.Inference.APIKey, "api-key", "", "provider API key or Cloudflare API token")
	f.StringVar(&initVals.Inference.BaseURL, "base-url", "", "override the provider endpoint")
	f.StringVar(&initVals.Inference.AccountID, "account-id", "", "Cloudflare account id")
	f.StringVar(&initVals.HTTP.Addr, "http-addr", "", "HTTP listen address")
	f.StringVar(&initVals.Telegram.Token, "telegram-token", "", "Telegram bot token")
	f.Int64Var(&initVals.Telegram.OwnerID, "telegram-owner", 0, "only answer this Telegram user id")
	rootCmd.AddCommand(initCmd)
}
