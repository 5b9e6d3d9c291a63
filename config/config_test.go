package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, key := range []string{"SERVER_PORT", "DB_DRIVER", "DB_DSN", "ENVIRONMENT", "RATE_LIMIT_PER_SECOND"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "musiclib.db", cfg.DBDSN)
	assert.Equal(t, 50.0, cfg.RateLimitPerSecond)
	assert.False(t, cfg.IsProduction())
}

func TestEnvironmentOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_MAX_BACKUPS", "not a number")
	t.Setenv("RATE_LIMIT_PER_SECOND", "0")

	cfg := Load()
	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 5, cfg.LogMaxBackups)
	assert.Equal(t, 0.0, cfg.RateLimitPerSecond)
}

func TestDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	// godotenv never overrides a variable that is already set, even to "".
	t.Setenv("DB_DSN", "")
	os.Unsetenv("DB_DSN")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DB_DSN=from-dotenv.db\n"), 0644))

	assert.Equal(t, "from-dotenv.db", Load().DBDSN)
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
}
