package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"FEEDWIRE_CONFIG_PATH",
		"FEEDWIRE_SERVER_HOST",
		"FEEDWIRE_SERVER_PORT",
		"FEEDWIRE_DB_PATH",
		"FEEDWIRE_LOG_LEVEL",
		"FEEDWIRE_LOG_PATH",
		"FEEDWIRE_TRANSPORT_MODE",
		"FEEDWIRE_VERB_CATALOG",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "feedwire.db", cfg.DB.Path)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "stdio", cfg.Transport.Mode)
	require.Empty(t, cfg.Verbs.CatalogPath)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := `
server:
  host: 127.0.0.1
  port: 9000
db:
  path: /tmp/feeds.db
transport:
  mode: http
verbs:
  catalog_path: /etc/feedwire/verbs.yaml
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	t.Setenv("FEEDWIRE_CONFIG_PATH", path)
	t.Setenv("FEEDWIRE_SERVER_PORT", "9100")
	t.Setenv("FEEDWIRE_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1", cfg.Server.Host)
	require.Equal(t, 9100, cfg.Server.Port)
	require.Equal(t, "/tmp/feeds.db", cfg.DB.Path)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "http", cfg.Transport.Mode)
	require.Equal(t, "/etc/feedwire/verbs.yaml", cfg.Verbs.CatalogPath)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)
	t.Setenv("FEEDWIRE_SERVER_PORT", "eighty")
	_, err := Load()
	require.Error(t, err)

	clearEnv(t)
	t.Setenv("FEEDWIRE_TRANSPORT_MODE", "carrier-pigeon")
	_, err = Load()
	require.Error(t, err)

	clearEnv(t)
	t.Setenv("FEEDWIRE_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err = Load()
	require.Error(t, err)
}
