package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, dir, name, content string) string {
	t.Helper()

	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))

	return p
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir(), "")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.Format)
	assert.Zero(t, cfg.Workers)
	assert.NotNil(t, cfg.Severities)
}

func TestLoadConfig_YAML(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "guidelint.yaml", `
log_level: debug
format: json
workers: 3
disabled: [AV1000]
severities:
  AV1536: error
exclude: [Generated]
include_generated: true
`)

	cfg, err := LoadConfig(dir, "")
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, []string{"AV1000"}, cfg.Disabled)
	assert.Equal(t, map[string]string{"AV1536": "error"}, cfg.Severities)
	assert.Equal(t, []string{"Generated"}, cfg.Exclude)
	assert.True(t, cfg.IncludeGenerated)
}

func TestLoadConfig_TOML(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "custom.toml", `
format = "json"
db = "runs.db"
disabled = ["AV1547"]

[severities]
AV1135 = "info"
`)

	cfg, err := LoadConfig(dir, path)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "runs.db", cfg.DB)
	assert.Equal(t, []string{"AV1547"}, cfg.Disabled)
	assert.Equal(t, "info", cfg.Severities["AV1135"])
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir(), "nope.yaml")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "guidelint.yaml", "workers: [")

	_, err := LoadConfig(dir, "")
	assert.Error(t, err)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "guidelint.yaml", "format: text\nworkers: 1\n")

	t.Setenv("GUIDELINT_FORMAT", "json")
	t.Setenv("GUIDELINT_WORKERS", "8")
	t.Setenv("GUIDELINT_LOG_LEVEL", "warn")
	t.Setenv("GUIDELINT_DB", "history.db")

	cfg, err := LoadConfig(dir, "")
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "history.db", cfg.DB)

	t.Setenv("GUIDELINT_WORKERS", "many")
	_, err = LoadConfig(dir, "")
	assert.Error(t, err)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, ".env", "GUIDELINT_DB=from-dotenv.db\n")

	// godotenv never overrides variables already set.
	t.Setenv("GUIDELINT_DB", "")
	require.NoError(t, os.Unsetenv("GUIDELINT_DB"))

	cfg, err := LoadConfig(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv.db", cfg.DB)

	require.NoError(t, os.Unsetenv("GUIDELINT_DB"))
}
