package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"OPENAI_API_KEY", "JWT_SECRET", "DATABASE_DSN", "REDIS_URL"} {
		t.Setenv(key, "")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, defaultPort, cfg.Port)
	assert.True(t, cfg.IsDev())
	assert.Contains(t, cfg.DSN, "reportgen")
	assert.NotEmpty(t, cfg.ReportsDir())
	assert.NotEmpty(t, cfg.DataDir())
}

func TestLoadYAMLFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yml")
	raw := `
port: 9100
env: production
jwt_secret: s3cret
paths:
  reports: /tmp/rg-reports
  data: /tmp/rg-data
ai:
  enable_memory: true
  providers:
    - id: main
      type: openai
      api_key: sk-test
      default_model: gpt-4o-mini
      enabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, "/tmp/rg-reports", cfg.ReportsDir())
	assert.True(t, cfg.AI.EnableMemory)
	require.Len(t, cfg.AI.Providers, 1)
	assert.Equal(t, "main", cfg.AI.Providers[0].ID)
}

func TestEnvOverridesFillGapsOnly(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("OPENAI_API_KEY", "sk-env")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.JWTSecret)
	require.Len(t, cfg.AI.Providers, 1)
	assert.Equal(t, "openai-env", cfg.AI.Providers[0].ID)
	assert.True(t, cfg.AI.Providers[0].Enabled)
}

func TestEnvProviderNotAppendedWhenConfigured(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-env")

	path := filepath.Join(t.TempDir(), "config.yml")
	raw := `
ai:
  providers:
    - id: main
      type: openai
      api_key: sk-from-file
      enabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.AI.Providers, 1)
	assert.Equal(t, "main", cfg.AI.Providers[0].ID)
}
