package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/voyage/internal/infrastructure/config"
)

func TestNewLogger_WritesLogFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	logger, cleanup, err := NewLogger(config.LoggingConfig{
		Level:         "info",
		Format:        "json",
		EnableFileLog: true,
		LogDir:        dir,
		MaxSizeMB:     1,
	}, false)
	require.NoError(t, err)

	logger.Info().Str("window_id", "w1").Msg("window opened")
	logger.Debug().Msg("filtered")
	cleanup()

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"window_id":"w1"`)
	assert.NotContains(t, string(data), "filtered")
}

func TestNewLogger_DiscardsWithoutOutputs(t *testing.T) {
	logger, cleanup, err := NewLogger(config.LoggingConfig{Level: "debug"}, false)
	require.NoError(t, err)
	defer cleanup()

	logger.Info().Msg("dropped")
}
