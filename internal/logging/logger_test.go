package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/masterdata-converter/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestNewWriter_JSONCarriesRunID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, "json", slog.LevelInfo)

	logger.Info("converted", slog.Int("records", 3))
	logger.Debug("hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "converted", entry["msg"])
	assert.Equal(t, float64(3), entry["records"])
	assert.Equal(t, logger.RunID, entry["run_id"])

	_, err := uuid.Parse(logger.RunID)
	assert.NoError(t, err)
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "masterdata.log")
	cfg := config.LoggingConfig{Level: "warn", Format: "text", Output: "file", FilePath: path}

	logger, err := New(cfg, false)
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept")
	require.NoError(t, logger.Close())
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "kept")
	assert.NotContains(t, string(data), "dropped")
}

func TestNew_VerboseForcesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	cfg := config.LoggingConfig{Level: "error", Format: "text", Output: "file", FilePath: path}

	logger, err := New(cfg, true)
	require.NoError(t, err)
	logger.Debug("details")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "details")
}
