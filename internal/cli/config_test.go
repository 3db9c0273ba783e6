package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/insurebook/pkg/types"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("INSUREBOOK_BACKEND", "")
	cfg, err := loadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	content := "backend: sqlite\ndata_dir: /srv/book\nlog:\n  level: debug\n  format: json\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileExt), []byte(content), 0o644))

	t.Setenv("INSUREBOOK_BACKEND", "")
	cfg, err := loadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, types.BackendSQLite, cfg.Backend)
	assert.Equal(t, "/srv/book", cfg.DataDir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 10, cfg.Log.File.MaxSize)

	t.Setenv("INSUREBOOK_BACKEND", "json")
	t.Setenv("INSUREBOOK_LOG_LEVEL", "error")
	cfg, err = loadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, types.BackendJSON, cfg.Backend)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoadConfigValidation(t *testing.T) {
	t.Setenv("INSUREBOOK_BACKEND", "")
	tests := []struct {
		name    string
		content string
	}{
		{"unknown backend", "backend: postgres\n"},
		{"unknown level", "log:\n  level: loud\n"},
		{"file without path", "log:\n  file:\n    enabled: true\n"},
		{"negative size", "log:\n  file:\n    max_size: -1\n"},
		{"malformed yaml", "backend: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, configFileExt), []byte(tt.content), 0o644))
			_, err := loadConfig(dir)
			require.Error(t, err)
			assert.Equal(t, exitUserError, exitCode(err))
		})
	}
}

func TestWriteConfigIfMissing(t *testing.T) {
	dir := t.TempDir()

	wrote, err := writeConfigIfMissing(dir, "/data")
	require.NoError(t, err)
	assert.True(t, wrote)

	raw, err := os.ReadFile(filepath.Join(dir, configFileExt))
	require.NoError(t, err)
	var cfg Config
	require.NoError(t, yaml.Unmarshal(raw, &cfg))
	assert.Equal(t, types.BackendJSON, cfg.Backend)
	assert.Equal(t, "/data", cfg.DataDir)

	wrote, err = writeConfigIfMissing(dir, "/elsewhere")
	require.NoError(t, err)
	assert.False(t, wrote)
}
