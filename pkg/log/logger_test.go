package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	ctx := logger.WithContext(context.Background())

	ctx, id := WithRequestID(ctx)
	FromCtx(ctx).Info().Msg("hello")

	assert.NotEmpty(t, id)
	assert.Contains(t, buf.String(), `"request_id":"`+id+`"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	ctx := logger.WithContext(context.Background())

	ctx = WithFields(ctx, map[string]string{"session": "demo_user"})
	FromCtx(ctx).Info().Msg("turn")

	assert.Contains(t, buf.String(), `"session":"demo_user"`)
}

func TestMigrationLogger_Printf(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	ctx := logger.WithContext(context.Background())

	NewMigrationLogger(ctx).Printf("applied %d migrations\n", 1)

	assert.Contains(t, buf.String(), `"message":"applied 1 migrations"`)
	assert.Contains(t, buf.String(), `"component":"goose"`)
}
