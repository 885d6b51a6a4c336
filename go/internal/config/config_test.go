package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
	assert.Equal(t, "localhost:8888", cfg.Server.Addr)
	assert.Equal(t, time.Hour, cfg.Session.Timeout)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := writeFile(t, "leagued.yaml", `
server:
  addr: 0.0.0.0:9000
  ws_addr: 0.0.0.0:9001
  max_connections: 50
storage:
  dir: /var/lib/leagued
session:
  timeout: 30m
log:
  level: debug
  pretty: true
`)

	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr)
	assert.Equal(t, "0.0.0.0:9001", cfg.Server.WSAddr)
	assert.Equal(t, 50, cfg.Server.MaxConnections)
	assert.Equal(t, "/var/lib/leagued", cfg.Storage.Dir)
	assert.Equal(t, 30*time.Minute, cfg.Session.Timeout)
	assert.True(t, cfg.Log.Pretty)
	// untouched keys keep their defaults
	assert.Equal(t, 5*time.Minute, cfg.Session.SweepInterval)
	assert.Equal(t, "admin", cfg.Admin.Username)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := writeFile(t, "leagued.yaml", "storage:\n  dir: from-yaml\n")
	t.Setenv("LEAGUE_STORAGE_DIR", "from-env")
	t.Setenv("LEAGUE_SESSION_TIMEOUT", "90s")
	t.Setenv("LEAGUE_NATS_URL", "nats://broker:4222")

	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Storage.Dir)
	assert.Equal(t, 90*time.Second, cfg.Session.Timeout)
	assert.Equal(t, "nats://broker:4222", cfg.NATS.URL)
}

func TestLoad_EnvFile(t *testing.T) {
	path := writeFile(t, ".env", "LEAGUE_ADMIN_PASSWORD=rotated\n")
	// registered so the value loaded from the file is cleared afterwards
	t.Setenv("LEAGUE_ADMIN_PASSWORD", "")
	require.NoError(t, os.Unsetenv("LEAGUE_ADMIN_PASSWORD"))

	cfg, err := Load("", path)
	require.NoError(t, err)
	assert.Equal(t, "rotated", cfg.Admin.Password)
}

func TestLoad_MissingEnvFileIsNotAnError(t *testing.T) {
	_, err := Load("", filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), "")
	assert.Error(t, err)

	bad := writeFile(t, "bad.yaml", "server: [")
	_, err = Load(bad, "")
	assert.Error(t, err)

	t.Setenv("LEAGUE_SESSION_TIMEOUT", "soon")
	_, err = Load("", "")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Server.Addr = " " }},
		{"empty storage dir", func(c *Config) { c.Storage.Dir = "" }},
		{"zero message size", func(c *Config) { c.Server.MaxMessageSize = 0 }},
		{"negative connections", func(c *Config) { c.Server.MaxConnections = -1 }},
		{"zero session timeout", func(c *Config) { c.Session.Timeout = 0 }},
		{"zero sweep interval", func(c *Config) { c.Session.SweepInterval = 0 }},
		{"empty admin password", func(c *Config) { c.Admin.Password = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	assert.NoError(t, Default().Validate())
}
