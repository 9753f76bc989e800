// internal/config/load_test.go
package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeConfig(t, `
[server]
port = 8080
api_key = "secret"

[tmdb]
api_key = "tmdb-key"
cache_ttl = "10m"

[player]
strict_origin = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "secret", cfg.Server.APIKey)
	assert.Equal(t, "tmdb-key", cfg.TMDB.APIKey)
	assert.Equal(t, 10*time.Minute, cfg.TMDB.CacheTTL.Duration)
	assert.True(t, cfg.Player.StrictOrigin)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8585, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "./data/netlee.db", cfg.Database.Path)
	assert.Equal(t, "https://api.themoviedb.org", cfg.TMDB.BaseURL)
	assert.Equal(t, "https://image.tmdb.org/t/p/w780", cfg.TMDB.ImageBaseURL)
	assert.Equal(t, 24*time.Hour, cfg.TMDB.CacheTTL.Duration)
	assert.Equal(t, "www.youtube.com", cfg.Player.TrailerHost)
	assert.False(t, cfg.Player.StrictOrigin)
	assert.Equal(t, 30*24*time.Hour, cfg.Events.Retention.Duration)
	assert.Equal(t, time.Hour, cfg.Events.PruneInterval.Duration)
	assert.Empty(t, cfg.TMDB.APIKey, "catalog is disabled unless a key is set")
}

func TestLoad_EnvSubstitution(t *testing.T) {
	t.Setenv("NETLEE_TEST_TMDB_KEY", "from-env")
	cfg, err := Load(writeConfig(t, `
[tmdb]
api_key = "${NETLEE_TEST_TMDB_KEY}"
`))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.TMDB.APIKey)
}

func TestLoad_MissingEnvVar(t *testing.T) {
	_, err := Load(writeConfig(t, `
[tmdb]
api_key = "${NETLEE_TEST_MISSING_KEY}"
`))
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, []string{"NETLEE_TEST_MISSING_KEY"}, cfgErr.Missing)
	assert.Contains(t, err.Error(), "NETLEE_TEST_MISSING_KEY")
}

func TestLoad_ValidationError(t *testing.T) {
	_, err := Load(writeConfig(t, `
[server]
port = 70000
log_level = "verbose"
`))
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Len(t, cfgErr.Errors, 2)
	assert.Contains(t, err.Error(), "server.port")
	assert.Contains(t, err.Error(), "server.log_level")
}

func TestLoad_BadDuration(t *testing.T) {
	_, err := Load(writeConfig(t, `
[events]
retention = "forever"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/netlee/config.toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestLoadWithoutValidation(t *testing.T) {
	cfg, err := LoadWithoutValidation(writeConfig(t, `
[server]
port = 70000

[tmdb]
api_key = "${NETLEE_TEST_MISSING_KEY}"
`))
	require.NoError(t, err)
	assert.Equal(t, 70000, cfg.Server.Port)
	assert.Equal(t, "${NETLEE_TEST_MISSING_KEY}", cfg.TMDB.APIKey)
}

func TestLoad_DefaultConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, WriteDefault(path))

	cfg, err := Load(path)
	require.NoError(t, err, "the shipped example must load with no environment set")
	assert.Equal(t, 8585, cfg.Server.Port)
	assert.Equal(t, 720*time.Hour, cfg.Events.Retention.Duration)
}
