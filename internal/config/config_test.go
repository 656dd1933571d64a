package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 23, c.Review.RequiredReports)
	assert.Equal(t, 0, c.Review.WindowLimit)
	assert.Equal(t, "mysql", c.Database.Driver)
	assert.Equal(t, ":5000", c.Addr())
}

func TestLoadFileThenEnv(t *testing.T) {
	path := writeFile(t, `
server:
  port: 8080
database:
  driver: postgres
  host: db.internal
review:
  required_reports: 10
  window_limit: 50
`)
	t.Setenv("DB_HOST", "override.internal")
	t.Setenv("REQUIRED_REPORTS", "12")

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, "postgres", c.Database.Driver)
	assert.Equal(t, "override.internal", c.Database.Host)
	assert.Equal(t, 12, c.Review.RequiredReports)
	assert.Equal(t, 50, c.Review.WindowLimit)
}

func TestLoadRejectsBadFile(t *testing.T) {
	_, err := Load(writeFile(t, "server: [unclosed"))
	assert.Error(t, err)
}

func TestLoadRejectsNonPositiveR(t *testing.T) {
	_, err := Load(writeFile(t, "review:\n  required_reports: 0\n"))
	assert.Error(t, err)
}

func TestOpenSQLite(t *testing.T) {
	c := Default()
	c.Database.Driver = "sqlite"
	c.Database.Path = ":memory:"

	db, err := c.OpenGormDB()
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()
	assert.NoError(t, sqlDB.Ping())
}

func TestOpenUnknownDriver(t *testing.T) {
	c := Default()
	c.Database.Driver = "oracle"
	_, err := c.OpenGormDB()
	assert.ErrorContains(t, err, "oracle")
}

func TestCheckSecrets(t *testing.T) {
	c := Default()
	assert.Error(t, c.CheckSecrets(), "built-in key at info level")

	c.Auth.JWTSecret = ""
	assert.Error(t, c.CheckSecrets(), "empty key")

	c.Log.Level = "DEBUG"
	c.Auth.JWTSecret = DevJWTSecret
	assert.NoError(t, c.CheckSecrets(), "debug runs may use the built-in key")

	c.Log.Level = "info"
	c.Auth.JWTSecret = "s3cret-from-env"
	assert.NoError(t, c.CheckSecrets())
}

func TestCheckSecretsAfterEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "rotated")
	c, err := Load(writeFile(t, "log:\n  level: info\n"))
	require.NoError(t, err)
	assert.NoError(t, c.CheckSecrets())
}
