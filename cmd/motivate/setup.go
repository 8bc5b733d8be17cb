package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/sandevgo/motivate/internal/config"
	"github.com/sandevgo/motivate/internal/core"
	"github.com/sandevgo/motivate/internal/providers/llm"
	"github.com/sandevgo/motivate/internal/service/session"
	"github.com/sandevgo/motivate/internal/storage/memory"
	"github.com/sandevgo/motivate/internal/storage/postgres"
	"github.com/sandevgo/motivate/internal/storage/sqlite"
	"github.com/sandevgo/motivate/pkg/log"
	"github.com/sandevgo/motivate/pkg/srv"
)

// chatDeps is the wired core shared by every command.
type chatDeps struct {
	app      *config.AppConfig
	chat     *session.Coordinator
	services []srv.Service
}

// newChatDeps loads configuration, opens the session store and builds the coordinator.
// The returned services close what was opened.
func newChatDeps(ctx context.Context, opts ...session.Option) (*chatDeps, error) {
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		return nil, fmt.Errorf("failed to init env: %w", err)
	}

	appCfg, err := config.ParseAppConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to parse app config: %w", err)
	}

	store, closeStore, err := initStorage(ctx, appCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	services := []srv.Service{srv.NewCleanup(closeStore)}

	infCfg, err := config.ParseInferenceConfig()
	if err != nil {
		_ = closeStore()
		return nil, fmt.Errorf("failed to parse inference config: %w", err)
	}
	ai, err := llm.NewProvider(ctx, infCfg)
	if err != nil {
		_ = closeStore()
		return nil, fmt.Errorf("failed to initialize LLM provider: %w", err)
	}

	if appCfg.SerializeTurns {
		opts = append(opts, session.WithKeyLock())
	}

	return &chatDeps{
		app:      appCfg,
		chat:     session.NewCoordinator(store, ai, opts...),
		services: services,
	}, nil
}

func initStorage(ctx context.Context, cfg core.AppConfig) (core.SessionStore, func() error, error) {
	logger := log.FromCtx(ctx)
	logger.Info().Str("store", cfg.GetStoreDriver()).Msg("opening session store")

	switch cfg.GetStoreDriver() {
	case config.StoreMemory:
		s := memory.NewStore()
		return s, s.Close, nil
	case config.StorePostgres:
		s, err := postgres.NewStore(ctx, cfg.GetDatabaseURL())
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewSessionRepo(db), db.Close, nil
	}
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}

func closeAll(ctx context.Context, services []srv.Service) {
	srv.ShutdownServices(ctx, services)
}
