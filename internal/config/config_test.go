package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValidConfig(t *testing.T) {
	t.Parallel()

	content := `
server:
  host: "127.0.0.1"
  port: 8080

redis:
  addr: "redis:6379"
  password: "secret"
  db: 1

postgres:
  dsn: "host=db user=forca dbname=forca"

game:
  rounds: 8
  countdown: 5
  round_interval: 4
  cleanup_delay: 30
  word_category: "Comida"
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	err := os.WriteFile(configPath, []byte(content), 0o600)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "secret", cfg.Redis.Password)
	assert.Equal(t, 1, cfg.Redis.DB)
	assert.Equal(t, "host=db user=forca dbname=forca", cfg.Postgres.DSN)
	assert.Equal(t, 8, cfg.Game.Rounds)
	assert.Equal(t, 5, cfg.Game.Countdown)
	assert.Equal(t, "Comida", cfg.Game.WordCategory)
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	cfg, err := Load("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")
	err := os.WriteFile(configPath, []byte("invalid: yaml: :::"), 0o600)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Parallel()

	content := `{}`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "empty.yaml")
	err := os.WriteFile(configPath, []byte(content), 0o600)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 1780, cfg.Server.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 5, cfg.Game.Rounds)
	assert.Equal(t, 3, cfg.Game.Countdown)
	assert.Equal(t, 3, cfg.Game.RoundInterval)
	assert.Equal(t, 60, cfg.Game.CleanupDelay)
}

func TestPostgresDSN_FromEnv(t *testing.T) {
	// Not parallel because it modifies environment variables
	t.Setenv("DATABASE_URL", "host=envdb user=env dbname=env")

	cfg := Default()
	assert.Equal(t, "host=envdb user=env dbname=env", cfg.Postgres.DSN)
}

func TestGameConfig_DurationMethods(t *testing.T) {
	t.Parallel()

	cfg := &GameConfig{
		Rounds:        5,
		Countdown:     3,
		RoundInterval: 4,
		CleanupDelay:  60,
	}

	assert.Equal(t, 5, cfg.RoundsPerGame())
	assert.Equal(t, 3*time.Second, cfg.CountdownDuration())
	assert.Equal(t, 4*time.Second, cfg.RoundIntervalDuration())
	assert.Equal(t, 60*time.Second, cfg.CleanupDelayDuration())
}
