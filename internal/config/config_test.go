package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", `
app:
  env: prod
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.App.Env)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, ":9980", cfg.App.HTTPAddr)
	assert.Equal(t, "data/vantage.db", cfg.Database.Path)
	assert.Equal(t, "binance", cfg.Exchange.Name)
	assert.Equal(t, "USDT", cfg.Exchange.Asset)
	assert.Equal(t, 10, cfg.Exchange.TimeoutSeconds)
	assert.Equal(t, 30, cfg.Analytics.CacheTTLSeconds)
	assert.Equal(t, 30, cfg.Analytics.HourlyWindowDays)
}

func TestLoadIncludeMerge(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "base.yaml", `
app:
  http_addr: ":8000"
  log_level: debug
`)
	path := writeConfig(t, dir, "config.yaml", `
include:
  - base.yaml
app:
  http_addr: ":9100"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	// the including file wins on conflicts, includes fill the gaps
	assert.Equal(t, ":9100", cfg.App.HTTPAddr)
	assert.Equal(t, "debug", cfg.App.LogLevel)
}

func TestLoadIncludeCycle(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "a.yaml", "include:\n  - b.yaml\n")
	path := writeConfig(t, dir, "b.yaml", "include:\n  - a.yaml\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestLoadRejectsUnknownExchange(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", `
exchange:
  name: kraken
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", `
app:
  log_level: verbose
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
