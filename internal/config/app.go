package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/motivate/pkg/log"
)

const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

type AppConfig struct {
	RuntimePath string `env:"MOTIVATE_RUNTIME_PATH" envDefault:".motivate"`

	// Session storage backend: memory, sqlite or postgres
	StoreDriver string `env:"MOTIVATE_STORE" envDefault:"sqlite"`
	DatabaseURL string `env:"DATABASE_URL"`

	// Serialize overlapping turns on the same session key
	SerializeTurns bool `env:"SESSION_SERIALIZE_TURNS" envDefault:"true"`

	// Transport Flags
	EnableHTTP     bool `env:"ENABLE_HTTP" envDefault:"true"`
	EnableTelegram bool `env:"ENABLE_TELEGRAM" envDefault:"false"`
}

func ParseAppConfig() (*AppConfig, error) {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	c.RuntimePath = resolveRuntimePath(c.RuntimePath)

	switch c.StoreDriver {
	case StoreMemory, StoreSQLite:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the %s store", StorePostgres)
		}
	default:
		return nil, fmt.Errorf("unknown session store: %q", c.StoreDriver)
	}
	return c, nil
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c, err := ParseAppConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "motivate.db")
}

func (c AppConfig) GetStoreDriver() string {
	return c.StoreDriver
}

func (c AppConfig) GetDatabaseURL() string {
	return c.DatabaseURL
}

func (c AppConfig) GetInputHistoryPath() string {
	return filepath.Join(c.RuntimePath, "input_history")
}

func (c AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}
