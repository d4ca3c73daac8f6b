package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:3000", cfg.Server.Addr)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "data/softveda.db", cfg.Database.DSN)
	assert.Equal(t, "memory", cfg.Session.Backend)
	assert.Equal(t, "softveda.sid", cfg.Session.CookieName)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL())
	assert.True(t, cfg.Metrics.Enabled)
	assert.Empty(t, cfg.Auth.AdminSecret)

	require.Error(t, cfg.Validate(), "session secret is required")
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SOFTVEDA_SESSION_SECRET", "s3cret")
	t.Setenv("SOFTVEDA_SESSION_TTLMINUTES", "30")
	t.Setenv("SOFTVEDA_SESSION_BACKEND", "Redis")
	t.Setenv("SOFTVEDA_REDIS_ADDR", "localhost:6379")
	t.Setenv("SOFTVEDA_DATABASE_DRIVER", "postgres")
	t.Setenv("SOFTVEDA_DATABASE_DSN", "postgres://localhost/softveda")
	t.Setenv("SOFTVEDA_AUTH_ADMINSECRET", "boot")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Session.Secret)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL())
	assert.Equal(t, "redis", cfg.Session.Backend)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "boot", cfg.Auth.AdminSecret)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	var cfg Config
	cfg.Session.Secret = "x"
	cfg.Database.Driver = "sqlite"
	cfg.Session.Backend = "memory"
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.Database.Driver = "mysql"
	require.Error(t, bad.Validate())

	bad = cfg
	bad.Session.Backend = "redis"
	require.Error(t, bad.Validate())

	bad = cfg
	bad.Session.Backend = "cookie"
	require.Error(t, bad.Validate())
}

func TestLoadDotEnvKeepsExistingEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\nSOFTVEDA_TEST_NEW=\"fresh\"\nSOFTVEDA_TEST_KEEP=from-file\ninvalid line\n=novalue\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("SOFTVEDA_TEST_KEEP", "from-env")
	t.Setenv("SOFTVEDA_TEST_NEW", "")
	os.Unsetenv("SOFTVEDA_TEST_NEW")

	loadDotEnv(path)
	defer os.Unsetenv("SOFTVEDA_TEST_NEW")

	assert.Equal(t, "fresh", os.Getenv("SOFTVEDA_TEST_NEW"))
	assert.Equal(t, "from-env", os.Getenv("SOFTVEDA_TEST_KEEP"))
}
