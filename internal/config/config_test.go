package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, defaultPort, cfg.Port)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, 15, cfg.Scraper.TimeoutSeconds)
	assert.Equal(t, 10, cfg.Webhook.TimeoutSeconds)
	assert.Equal(t, 8, cfg.Webhook.MaxConcurrent)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: 9090
env: production
webhook:
  timeout_seconds: 20
  max_concurrent: 2
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, 20, cfg.Webhook.TimeoutSeconds)
	assert.Equal(t, 2, cfg.Webhook.MaxConcurrent)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TOOLSITE_PORT", "4242")
	t.Setenv("TOOLSITE_DSN", "user:pass@tcp(db:3306)/site")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, 4242, cfg.Port)
	assert.Equal(t, "user:pass@tcp(db:3306)/site", cfg.DSN())
}

func TestDSNAssembledFromParts(t *testing.T) {
	cfg := &AppConfig{}
	applyDefaults(cfg)
	assert.Equal(t,
		"root:password@tcp(127.0.0.1:3306)/toolsite?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DSN())
}
