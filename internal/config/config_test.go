package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, StorageLocal, cfg.Storage.Type)
	assert.Equal(t, PreferencesDatabase, cfg.Preferences.Backend)
	assert.Equal(t, AuthModePresence, cfg.Auth.Mode)
	assert.Equal(t, 10*time.Minute, cfg.Jobs.CleanupGracePeriod)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
logger:
  level: debug
database:
  driver: sqlite
  path: /tmp/other.db
auth:
  mode: jwt
  jwt_secret: s3cret
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
	assert.Equal(t, AuthModeJWT, cfg.Auth.Mode)
	// untouched sections keep their defaults
	assert.Equal(t, "/api/studio", cfg.Server.BasePath)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
`)
	t.Setenv("PORT", "7070")
	t.Setenv("STORAGE_LOCAL_PATH", "/var/lib/studio")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "/var/lib/studio", cfg.Storage.LocalPath)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "server: [unterminated")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, true},
		{"postgres without url", func(c *Config) { c.Database.Driver = DriverPostgres }, true},
		{"postgres with url", func(c *Config) {
			c.Database.Driver = DriverPostgres
			c.Database.URL = "postgres://localhost/studio"
		}, false},
		{"s3 without bucket", func(c *Config) { c.Storage.Type = StorageS3 }, true},
		{"s3 complete", func(c *Config) {
			c.Storage.Type = StorageS3
			c.S3.Bucket = "studio"
			c.S3.Region = "us-east-1"
		}, false},
		{"unknown preferences backend", func(c *Config) { c.Preferences.Backend = "disk" }, true},
		{"bcrypt without credentials", func(c *Config) { c.Auth.Mode = AuthModeBcrypt }, true},
		{"jwt without secret", func(c *Config) { c.Auth.Mode = AuthModeJWT }, true},
		{"unknown auth mode", func(c *Config) { c.Auth.Mode = "oauth" }, true},
		{"zero cleanup grace", func(c *Config) { c.Jobs.CleanupGracePeriod = 0 }, true},
		{"negative cleanup grace", func(c *Config) { c.Jobs.CleanupGracePeriod = -time.Minute }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad_RejectsZeroCleanupGrace(t *testing.T) {
	path := writeConfig(t, `
jobs:
  cleanup_grace_period: 0s
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestGetDSN(t *testing.T) {
	d := DatabaseConfig{Driver: DriverSQLite, Path: "a.db", URL: "postgres://x"}
	assert.Equal(t, "a.db", d.GetDSN())

	d.Driver = DriverPostgres
	assert.Equal(t, "postgres://x", d.GetDSN())
}
