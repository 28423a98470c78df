package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	cfg, err := Load(writeConfig(t, ``))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, "Main", cfg.Booking.DefaultShopID)
	assert.Equal(t, 10, cfg.Booking.MaxListedSlots)
	assert.True(t, cfg.Booking.UseAtomicViews())
	assert.False(t, cfg.Booking.StrictSlotGuard)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_FileValues(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	cfg, err := Load(writeConfig(t, `
[server]
http_port = 9090

[storage]
backend = "postgres"
request_timeout = 3

[storage.postgres]
host = "db"
user = "app"
password = "secret"
dbname = "workshop"

[booking]
atomic_views = false
strict_slot_guard = true
`))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "host=db port=5432 user=app password=secret dbname=workshop sslmode=disable", cfg.Storage.Postgres.DSN())
	assert.False(t, cfg.Booking.UseAtomicViews())
	assert.True(t, cfg.Booking.StrictSlotGuard)
	assert.Equal(t, 3, cfg.Storage.RequestTimeout)
}

func TestLoad_EnvPathOverride(t *testing.T) {
	t.Setenv(EnvConfigPath, writeConfig(t, "[logs]\nlevel = \"debug\"\n"))

	cfg, err := Load("does-not-exist.toml")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logs.Level)
}

func TestValidate_CollectsErrors(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	_, err := Load(writeConfig(t, `
[logs]
level = "verbose"

[storage]
backend = "mongo"

[events]
enabled = true

[booking]
default_shop_id = "A#B"
`))
	require.Error(t, err)
	for _, part := range []string{"logs.level", "storage.mongo.uri", "events.brokers", "default_shop_id"} {
		assert.Contains(t, err.Error(), part)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
