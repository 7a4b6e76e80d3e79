package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  port: 9090
  allowed_origins:
    - "https://app.example.com"
storage:
  driver: sqlite
  database_path: "quotes_test.db"
calculator:
  total_tolerance: 0.05
observability:
  logging:
    level: debug
    format: json
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "quotes_test.db", cfg.Storage.DatabasePath)
	assert.Equal(t, 0.05, cfg.Calculator.TotalTolerance)
	assert.Equal(t, "debug", cfg.Observability.Logging.Level)
	assert.Equal(t, "json", cfg.Observability.Logging.Format)
}

func TestLoad_PartialFileGetsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("storage:\n  database_path: other.db\n"), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "other.db", cfg.Storage.DatabasePath)
	assert.Equal(t, 0.02, cfg.Calculator.TotalTolerance)
	assert.Equal(t, "info", cfg.Observability.Logging.Level)
	assert.NotEmpty(t, cfg.Server.AllowedOrigins)
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("server: [unclosed"), 0644))

	_, err := Load(configPath)
	assert.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/quotes")
	t.Setenv("PORT", "7070")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("TOTAL_TOLERANCE", "0.1")

	cfg := LoadFromEnv()
	assert.NotNil(t, cfg)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, "postgres://localhost/quotes", cfg.Storage.DatabaseURL)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 0.1, cfg.Calculator.TotalTolerance)
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	t.Setenv("DB_PATH", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("PORT", "")

	cfg := LoadFromEnv()
	assert.NotNil(t, cfg)
	assert.Equal(t, "quotes.db", cfg.Storage.DatabasePath)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadOrEnv_FallbackToEnv(t *testing.T) {
	t.Setenv("DB_PATH", "fallback.db")

	cfg := LoadOrEnvWithPath("nonexistent.yaml")
	assert.NotNil(t, cfg)
	assert.Equal(t, "fallback.db", cfg.Storage.DatabasePath)
}

func TestEnvVarExpansion(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
storage:
  driver: postgres
  database_url: "${TEST_DATABASE_URL}"
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	t.Setenv("TEST_DATABASE_URL", "postgres://user:pw@db/quotes")

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "postgres://user:pw@db/quotes", cfg.Storage.DatabaseURL)
}
