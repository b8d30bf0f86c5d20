package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 20, cfg.HistoryLimit)
	assert.Equal(t, 95, cfg.JPEGQuality)
}

func TestLoad_DefaultsWithoutEnvironment(t *testing.T) {
	t.Setenv(EnvConfigFile, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("DEBUG", "")
	t.Setenv(EnvJSONLogs, "")
	t.Setenv(EnvHistoryLimit, "")
	t.Setenv(EnvJPEGQuality, "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_TOMLFileThenEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "editor.toml")
	content := `
log_level = "warn"
history_limit = 5
jpeg_quality = 80
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv(EnvConfigFile, path)
	t.Setenv(EnvLogLevel, "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("DEBUG", "")
	t.Setenv(EnvJSONLogs, "true")
	t.Setenv(EnvHistoryLimit, "7")
	t.Setenv(EnvJPEGQuality, "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 7, cfg.HistoryLimit, "environment overrides the file")
	assert.Equal(t, 80, cfg.JPEGQuality)
	assert.True(t, cfg.JSONLogs)
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editor.toml")
	require.NoError(t, os.WriteFile(path, []byte("undo_depth = 3\n"), 0o600))
	t.Setenv(EnvConfigFile, path)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undo_depth")
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		check   func(t *testing.T, c Config)
		wantErr bool
	}{
		{
			name: "debug flag",
			env:  map[string]string{"DEBUG": "1"},
			check: func(t *testing.T, c Config) {
				assert.Equal(t, "debug", c.LogLevel)
			},
		},
		{
			name: "prefixed level wins over LOG_LEVEL",
			env:  map[string]string{EnvLogLevel: "error", "LOG_LEVEL": "debug"},
			check: func(t *testing.T, c Config) {
				assert.Equal(t, "error", c.LogLevel)
			},
		},
		{
			name:    "bad history limit",
			env:     map[string]string{EnvHistoryLimit: "many"},
			wantErr: true,
		},
		{
			name:    "bad json flag",
			env:     map[string]string{EnvJSONLogs: "sometimes"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			err := cfg.applyEnv(func(k string) string { return tt.env[k] })
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero history", func(c *Config) { c.HistoryLimit = 0 }},
		{"huge history", func(c *Config) { c.HistoryLimit = MaxHistoryLimit + 1 }},
		{"jpeg quality zero", func(c *Config) { c.JPEGQuality = 0 }},
		{"jpeg quality over 100", func(c *Config) { c.JPEGQuality = 101 }},
		{"tiny preview", func(c *Config) { c.PreviewMaxSize = 10 }},
		{"tiny window", func(c *Config) { c.WindowWidth = 100 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
