package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clientdesk/internal/config"
)

// clearEnv unsets every variable Load reads so the host environment does not
// leak into assertions.
func clearEnv(t *testing.T) {
	for _, k := range []string{
		"CLIENTDESK_API_URL", "CLIENTDESK_STORAGE_BACKEND", "CLIENTDESK_HOME",
		"CLIENTDESK_PASSPHRASE", "CLIENTDESK_LOG_LEVEL", "REDIS_ADDR",
		"REDIS_PASSWORD", "REDIS_DB", "DDB_ENDPOINT", "DDB_TABLE", "AWS_REGION",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()

	cfg, err := config.Load(filepath.Join(home, "nope.toml"), home)
	require.NoError(t, err)

	assert.Equal(t, config.DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout.Duration)
	assert.Equal(t, config.BackendFile, cfg.Storage.Backend)
	assert.Equal(t, home, cfg.Storage.Dir)
	assert.Equal(t, filepath.Join(home, "clientdesk.db"), cfg.Storage.SQLite.Path)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "stderr", cfg.Log.Output)
	assert.Equal(t, 16, cfg.UI.PageSize)
	assert.Equal(t, []int{8, 16, 32}, cfg.UI.PageSizes)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[api]
base_url = "http://127.0.0.1:8080/"
timeout = "3s"
requests_per_second = 2.5

[storage]
backend = "sqlite"
compress = true

[storage.sqlite]
path = "/tmp/x.db"

[storage.redis]
addr = "redis:6379"
timeout = "250ms"

[log]
level = "debug"
format = "json"

[ui]
page_size = 8
page_sizes = [4, 8]
`), 0o600))

	cfg, err := config.Load(path, dir)
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8080", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout.Duration)
	assert.Equal(t, 2.5, cfg.API.RequestsPerSecond)
	assert.Equal(t, config.BackendSQLite, cfg.Storage.Backend)
	assert.True(t, cfg.Storage.Compress)
	assert.Equal(t, "/tmp/x.db", cfg.Storage.SQLite.Path)
	assert.Equal(t, "redis:6379", cfg.Storage.Redis.Addr)
	assert.Equal(t, 250*time.Millisecond, cfg.Storage.Redis.Timeout.Duration)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8, cfg.UI.PageSize)
	assert.Equal(t, []int{4, 8}, cfg.UI.PageSizes)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[api]
base_url = "http://from-file"
[storage]
backend = "file"
`), 0o600))

	t.Setenv("CLIENTDESK_API_URL", "http://from-env")
	t.Setenv("CLIENTDESK_STORAGE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "10.0.0.1:6380")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("DDB_TABLE", "envtable")

	cfg, err := config.Load(path, dir)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env", cfg.API.BaseURL)
	assert.Equal(t, config.BackendRedis, cfg.Storage.Backend)
	assert.Equal(t, "10.0.0.1:6380", cfg.Storage.Redis.Addr)
	assert.Equal(t, 3, cfg.Storage.Redis.DB)
	assert.Equal(t, "envtable", cfg.Storage.DynamoDB.Table)
}

func TestSetHome_OverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CLIENTDESK_HOME", "/from/env")

	cfg, err := config.Load("", "/fallback")
	require.NoError(t, err)
	require.Equal(t, "/from/env", cfg.Storage.Dir)

	cfg.SetHome("/from/flag")
	assert.Equal(t, "/from/flag", cfg.Storage.Dir)
	assert.Equal(t, filepath.Join("/from/flag", "clientdesk.db"), cfg.Storage.SQLite.Path)
}

func TestSetHome_KeepsExplicitSQLitePath(t *testing.T) {
	cfg := config.Default("/old")
	cfg.Storage.SQLite.Path = "/data/custom.db"

	cfg.SetHome("/new")
	assert.Equal(t, "/new", cfg.Storage.Dir)
	assert.Equal(t, "/data/custom.db", cfg.Storage.SQLite.Path)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cases := map[string]string{
		"bad toml":       `[api`,
		"bad duration":   "[api]\ntimeout = \"soon\"",
		"unknown store":  "[storage]\nbackend = \"floppy\"",
		"zero page size": "[ui]\npage_size = -1",
		"bad page sizes": "[ui]\npage_sizes = [8, 0]",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".toml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
			_, err := config.Load(path, dir)
			assert.Error(t, err)
		})
	}
}

func TestLoad_BadRedisDB(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_DB", "zero")
	_, err := config.Load("", t.TempDir())
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides a variable that is set, even when empty.
	require.NoError(t, os.Unsetenv("CLIENTDESK_LOG_LEVEL"))
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("CLIENTDESK_LOG_LEVEL=debug\n"), 0o600))

	require.NoError(t, config.LoadDotEnv(path))

	cfg, err := config.Load("", dir)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)

	assert.NoError(t, config.LoadDotEnv(filepath.Join(dir, "missing.env")))
}

func TestDefaultHome(t *testing.T) {
	t.Setenv("CLIENTDESK_HOME", "/srv/clientdesk")
	home, err := config.DefaultHome()
	require.NoError(t, err)
	assert.Equal(t, "/srv/clientdesk", home)
}

func TestDuration_MarshalText(t *testing.T) {
	b, err := config.Duration{Duration: 90 * time.Second}.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1m30s", string(b))
}
