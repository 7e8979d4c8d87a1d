package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.HTTPPort)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "local-auth.db", cfg.Storage.SQLitePath)
	assert.False(t, cfg.Auth.VerifyPassword)
	assert.Equal(t, "light", cfg.Theme.DefaultMode)
	assert.Equal(t, "local-auth:", cfg.Redis.KeyPrefix)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("AUTH_VERIFY_PASSWORD", "true")
	t.Setenv("THEME_DEFAULT_MODE", "dark")
	t.Setenv("APP_ENV", "production")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.True(t, cfg.Auth.VerifyPassword)
	assert.Equal(t, "dark", cfg.Theme.DefaultMode)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	content := "STORAGE_DRIVER=redis\nREDIS_PORT=6380\nHTTP_PORT=9090\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, DriverRedis, cfg.Storage.Driver)
	assert.Equal(t, "6380", cfg.Redis.Port)
	assert.Equal(t, "9090", cfg.App.HTTPPort)
	assert.True(t, cfg.UsesRedis())
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{"unknown driver", func(c *Config) { c.Storage.Driver = "mongo" }, "unknown STORAGE_DRIVER"},
		{"empty sqlite path", func(c *Config) { c.Storage.SQLitePath = "" }, "SQLITE_PATH"},
		{"bad port", func(c *Config) { c.App.HTTPPort = "http" }, "HTTP_PORT"},
		{"bcrypt cost", func(c *Config) { c.Auth.BcryptCost = 99 }, "AUTH_BCRYPT_COST"},
		{"theme", func(c *Config) { c.Theme.DefaultMode = "sepia" }, "THEME_DEFAULT_MODE"},
		{"rate limit", func(c *Config) {
			c.RateLimit.Enabled = true
			c.RateLimit.BurstCapacity = 0
		}, "RATE_LIMIT_BURST_CAPACITY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable", c.DSN())
}
