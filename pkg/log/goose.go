package log

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// MigrationLogger routes goose output into the context logger.
type MigrationLogger struct {
	logger zerolog.Logger
}

func NewMigrationLogger(ctx context.Context) *MigrationLogger {
	return &MigrationLogger{
		logger: FromCtx(ctx).With().Str("component", "goose").Logger(),
	}
}

func (m *MigrationLogger) Printf(format string, v ...interface{}) {
	m.logger.Debug().Msgf(strings.TrimSuffix(format, "\n"), v...)
}

func (m *MigrationLogger) Fatalf(format string, v ...interface{}) {
	m.logger.Fatal().Msgf(strings.TrimSuffix(format, "\n"), v...)
}
