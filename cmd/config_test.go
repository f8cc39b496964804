package cmd_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"carrierlink/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"HTTP_PORT", "DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
	"DB_SSLMODE", "SQLITE_PATH", "JWT_SECRET", "TOKEN_TTL", "ACCEPT_ROLES", "STATS_CRON",
	"LOG_LEVEL", "LOG_FILE", "BCRYPT_COST",
}

// clearEnv unsets every config key; t.Setenv restores the originals.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := cmd.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, cmd.DriverMemory, cfg.DBDriver)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "carrier,both", cfg.AcceptRoles)
	assert.Equal(t, "0 * * * * *", cfg.StatsCron)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfig_FromEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("JWT_SECRET=from-file\nDB_DRIVER=SQLite\nTOKEN_TTL=90m\n"), 0o600))
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := cmd.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, cmd.DriverSQLite, cfg.DBDriver)
	assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
	assert.Equal(t, "9090", cfg.HTTPPort)
}

func TestLoadConfig_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "mysql")

	_, err := cmd.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadConfig_BadTTL(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TOKEN_TTL", "soon")

	_, err := cmd.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}
