package app_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/onsenswap/onsenswap/app"
)

func newFlags(home string) *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String(app.FlagHome, home, "")
	flags.String(app.FlagDBBackend, "goleveldb", "")
	if err := flags.Set(app.FlagHome, home); err != nil {
		panic(err)
	}
	return flags
}

func TestLoadConfig_Defaults(t *testing.T) {
	home := t.TempDir()

	cfg, err := app.LoadConfig(newFlags(home))
	require.NoError(t, err)
	require.Equal(t, home, cfg.Home)
	require.Equal(t, "goleveldb", cfg.DBBackend)
	require.Equal(t, app.DefaultConfig().API, cfg.API)
	require.Equal(t, filepath.Join(home, "data"), cfg.DataDir())
}

func TestLoadConfig_FileEnvAndFlags(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.toml"), []byte(`
log-level = "debug"
journal-size = 7

[api]
address = "0.0.0.0:9999"
rate-limit = 3
`), 0o644))
	t.Setenv("ONSENSWAP_LOG_LEVEL", "warn")

	flags := newFlags(home)
	require.NoError(t, flags.Set(app.FlagDBBackend, "memdb"))

	cfg, err := app.LoadConfig(flags)
	require.NoError(t, err)
	require.Equal(t, "memdb", cfg.DBBackend)
	require.Equal(t, "warn", cfg.LogLevel)
	require.Equal(t, 7, cfg.JournalSize)
	require.Equal(t, "0.0.0.0:9999", cfg.API.Address)
	require.Equal(t, 3, cfg.API.RateLimit)
}

func TestLoadConfig_Invalid(t *testing.T) {
	flags := newFlags(t.TempDir())
	require.NoError(t, flags.Set(app.FlagDBBackend, "rocksdb"))

	_, err := app.LoadConfig(flags)
	require.ErrorContains(t, err, "unsupported")

	t.Setenv("ONSENSWAP_API_AUTH_SECRET", "short")
	_, err = app.LoadConfig(newFlags(t.TempDir()))
	require.ErrorContains(t, err, app.FlagAPIAuthSecret)
}

func TestWriteConfigFile(t *testing.T) {
	cfg := app.DefaultConfig()
	cfg.Home = t.TempDir()
	cfg.LogLevel = "debug"

	path, err := cfg.WriteConfigFile()
	require.NoError(t, err)

	loaded, err := app.LoadConfig(newFlags(cfg.Home))
	require.NoError(t, err)
	require.Equal(t, "debug", loaded.LogLevel)

	again, err := cfg.WriteConfigFile()
	require.NoError(t, err)
	require.Equal(t, path, again)
}
