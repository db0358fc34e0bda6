package log_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thunderx/thunder/internal/config"
	tlog "github.com/thunderx/thunder/internal/log"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, tlog.ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, tlog.ParseLevel("WARNING"))
	assert.Equal(t, slog.LevelError, tlog.ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, tlog.ParseLevel("verbose"))
}

func TestNewLogger_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := tlog.NewLogger(&buf, "WARN")

	logger.Info("dropped")
	logger.Warn("beacon failed", "error", "connection refused")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "beacon failed", entry["msg"])
	assert.Equal(t, "connection refused", entry["error"])
}

func TestSetupLogger_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "thunder.log")

	logger, err := tlog.SetupLogger(&config.LoggingConfig{File: path, Level: "INFO"})
	require.NoError(t, err)
	logger.Info("starting thunder")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "starting thunder")
}
