package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteEnvFile(t *testing.T) {
	dir := t.TempDir()

	vals := &envFile{}
	vals.App.StoreDriver = "postgres"
	vals.App.DatabaseURL = "postgres://localhost/motivate"
	vals.Inference.Provider = "workersai"
	vals.Inference.AccountID = "acc"
	vals.Telegram.OwnerID = 42

	path, err := writeEnvFile(dir, vals, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".env"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	parsed, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"MOTIVATE_STORE":        "postgres",
		"DATABASE_URL":          "postgres://localhost/motivate",
		"LLM_PROVIDER":          "workersai",
		"CLOUDFLARE_ACCOUNT_ID": "acc",
		"TELEGRAM_OWNER_ID":     "42",
	}, parsed)

	_, err = writeEnvFile(dir, vals, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	_, err = writeEnvFile(dir, vals, true)
	require.NoError(t, err)
}

func TestHasValueFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "init"}
	cmd.Flags().Bool("force", false, "")
	cmd.Flags().String("provider", "", "")

	require.NoError(t, cmd.ParseFlags([]string{"--force"}))
	assert.False(t, hasValueFlags(cmd))

	require.NoError(t, cmd.ParseFlags([]string{"--provider", "ollama"}))
	assert.True(t, hasValueFlags(cmd))
}
