package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, 15*time.Minute, cfg.Provider.CacheTTL)
	assert.Equal(t, 256, cfg.Provider.CacheSize)
	assert.Equal(t, "https://query2.finance.yahoo.com/v1/finance/search", cfg.Search.BaseURL)
	assert.Equal(t, 8, cfg.Search.MaxResults)
	assert.Equal(t, 3, cfg.Search.Retries)
	assert.Equal(t, "table", cfg.Output.Format)
	assert.Equal(t, "en", cfg.Output.Lang)
	assert.True(t, cfg.Output.Color)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "Apple", cfg.Server.DefaultQuery)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FileInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fscore.yaml"), []byte(`
provider:
  timeout: 3s
output:
  format: csv
  lang: de
search:
  filter: EQUITY
`), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, "csv", cfg.Output.Format)
	assert.Equal(t, "de", cfg.Output.Lang)
	assert.Equal(t, "EQUITY", cfg.Search.Filter)
	assert.Equal(t, 256, cfg.Provider.CacheSize)
}

func TestLoad_EnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("FSCORE_OUTPUT_FORMAT", "json")
	t.Setenv("FSCORE_SERVER_ADDR", ":9090")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, ":9090", cfg.Server.Addr)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestInitLogger(t *testing.T) {
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "json"}))
	assert.True(t, zap.L().Core().Enabled(zap.DebugLevel))

	require.NoError(t, InitLogger(LogConfig{Level: "warn", Format: "console"}))
	assert.False(t, zap.L().Core().Enabled(zap.InfoLevel))

	assert.Error(t, InitLogger(LogConfig{Level: "loud"}))
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
