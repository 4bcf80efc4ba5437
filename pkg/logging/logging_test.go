package logging_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/registrysync/pkg/logging"
)

func TestDefaultConfig(t *testing.T) {
	cfg := logging.DefaultConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "auto", cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
	assert.False(t, cfg.AddCaller)
}

func TestNewLoggerFromConfigWritesFile(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(originalLevel) })

	path := filepath.Join(t.TempDir(), "sync.log")
	logger := logging.NewLoggerFromConfig(&logging.Config{
		Level:  "warn",
		Format: "json",
		Output: path,
		Fields: map[string]any{"run": "ih"},
	})

	logger.Info().Msg("hidden message")
	logger.Warn().Msg("visible message")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "hidden message")
	assert.Contains(t, string(content), "visible message")
	assert.Contains(t, string(content), `"run":"ih"`)
}

func TestConsoleFormat(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(originalLevel) })

	path := filepath.Join(t.TempDir(), "console.log")
	logger := logging.NewLoggerFromConfig(&logging.Config{
		Level:   "info",
		Format:  "console",
		Output:  path,
		NoColor: true,
	})
	logger.Info().Str("key", "value").Msg("console test")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "console test")
	assert.Contains(t, string(content), "INF")
}

func TestContextHelpers(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)

	ctx = logging.WithSource(ctx, "herbarium")
	ctx = logging.WithEntity(ctx, "institution", "k-1")
	ctx = logging.WithOperation(ctx, "update")
	logging.FromContext(ctx).Info().Msg("entity updated")

	tl.AssertContains(t, `"source":"herbarium"`)
	tl.AssertContains(t, `"entity_kind":"institution"`)
	tl.AssertContains(t, `"entity_key":"k-1"`)
	tl.AssertContains(t, `"operation":"update"`)
	assert.Len(t, tl.Lines(), 1)
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	//nolint:staticcheck // nil context is handled on purpose
	assert.Equal(t, logging.Default(), logging.FromContext(nil))
	assert.Equal(t, logging.Default(), logging.FromContext(context.Background()))
}

func TestCaptureLoggingForTest(t *testing.T) {
	tl := logging.CaptureLoggingForTest(t)
	logging.Warn().Msg("captured warning")
	assert.True(t, tl.Contains("captured warning"))
}
