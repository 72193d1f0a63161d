package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.True(t, cfg.Extract.Strict)
	assert.False(t, cfg.Diff.OrderSensitive)
	assert.Equal(t, "infracost", cfg.Cost.Binary)
	assert.Equal(t, 2*time.Minute, cfg.Cost.Timeout)
	assert.Equal(t, "summary", cfg.Output.Format)
	assert.Equal(t, 200, cfg.Workers.Threshold)
	assert.Greater(t, cfg.Workers.WorkerCount(), 0)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "driftscan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
extract:
  strict: false
cost:
  binary: /usr/local/bin/infracost
  timeout: 30s
output:
  format: json
workers:
  count: 4
  threshold: 50
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.Extract.Strict)
	assert.Equal(t, "/usr/local/bin/infracost", cfg.Cost.Binary)
	assert.Equal(t, 30*time.Second, cfg.Cost.Timeout)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, 4, cfg.Workers.WorkerCount())
	assert.Equal(t, 50, cfg.Workers.Threshold)
}

func TestWorkersConfig_WorkerCount(t *testing.T) {
	assert.Equal(t, 4, WorkersConfig{Count: 4}.WorkerCount())
	assert.Greater(t, WorkersConfig{}.WorkerCount(), 0)
}
