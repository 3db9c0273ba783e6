package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	t.Run("nil context", func(t *testing.T) {
		logger := FromContext(nil) //nolint:staticcheck // testing nil guard
		require.NotNil(t, logger)
		assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
	})

	t.Run("stored logger", func(t *testing.T) {
		custom := slog.New(slog.NewTextHandler(io.Discard, nil))
		ctx := WithContext(context.Background(), custom)
		assert.Equal(t, custom, FromContext(ctx))
	})
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn := New(Config{Level: "info", Format: FormatJSON}, &buf)
	defer closeFn()

	logger.Info("book saved", slog.Int("contacts", 3))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "book saved", entry["msg"])
	assert.EqualValues(t, 3, entry["contacts"])
}

func TestNew_TextFormatHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := New(Config{Level: "warn", Format: FormatText}, &buf)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_PrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := New(Config{Level: "debug", Format: FormatPretty}, &buf)

	logger.Debug("pretty message")

	assert.Contains(t, buf.String(), "pretty message")
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "insurebook.log")
	var buf bytes.Buffer
	logger, closeFn := New(Config{
		Level:  "info",
		Format: FormatJSON,
		File:   FileConfig{Enabled: true, Path: path, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1},
	}, &buf)

	logger.Info("to file")
	require.NoError(t, closeFn())

	assert.Empty(t, buf.String())
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "to file")
}

func TestRedaction(t *testing.T) {
	tests := []struct {
		key          string
		value        string
		shouldRedact bool
	}{
		{KeyNationalID, "S0123456A", true},
		{KeyPhone, "94351253", true},
		{KeyEmail, "alice@example.com", true},
		{KeyAddress, "123, Jurong West Ave 6", true},
		{"name", "Alice Pauline", false},
		{"contract_id", "CON001", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			var buf bytes.Buffer
			logger, _ := New(Config{Format: FormatJSON}, &buf)

			logger.Info("contact", slog.String(tt.key, tt.value))

			if tt.shouldRedact {
				assert.NotContains(t, buf.String(), tt.value)
				assert.Contains(t, buf.String(), tt.key)
			} else {
				assert.Contains(t, buf.String(), tt.value)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}

func TestSlogToCharmLevel(t *testing.T) {
	tests := []struct {
		input slog.Level
		want  log.Level
	}{
		{slog.Level(-8), log.DebugLevel},
		{slog.LevelDebug, log.DebugLevel},
		{slog.LevelInfo, log.InfoLevel},
		{slog.LevelWarn, log.WarnLevel},
		{slog.LevelError, log.ErrorLevel},
		{slog.Level(12), log.ErrorLevel},
	}
	for _, tt := range tests {
		t.Run(tt.input.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, slogToCharmLevel(tt.input))
		})
	}
}
