package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 10
  auto_migrate: true

auth:
  session_secret: "this-is-a-very-long-session-secret-for-tests"
  session_ttl: "2h"
  cookie_name: "yy_session"
  cookie_secure: false
  bcrypt_cost: 10

lexicon:
  link_inactive: true
  search_limit: 50
  recount_interval: "24h"
  recount_workers: 2

log:
  level: "debug"
  format: "text"

cors:
  allowed_origins: "https://editor.example.org, https://example.org"
  allow_credentials: true

rate_limit:
  login_per_minute: 5
`

func requiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/testdb")
	t.Setenv("AUTH_SESSION_SECRET", "this-is-a-very-long-session-secret-for-tests")
}

func configFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scribe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// inEmptyDir runs the rest of the test from a directory with no config.yaml.
func inEmptyDir(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadFile(t *testing.T) {
	cfg, err := LoadFile(configFile(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)

	assert.Equal(t, int32(10), cfg.Database.MaxConns)
	assert.True(t, cfg.Database.AutoMigrate)

	assert.Equal(t, 2*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, "yy_session", cfg.Auth.CookieName)
	assert.False(t, cfg.Auth.CookieSecure)
	assert.Equal(t, "scribe", cfg.Auth.Issuer, "issuer falls back to its default")

	assert.True(t, cfg.Lexicon.LinkInactive)
	assert.Equal(t, uint64(50), cfg.Lexicon.SearchLimit)
	assert.Equal(t, 24*time.Hour, cfg.Lexicon.RecountInterval)
	assert.Equal(t, 2, cfg.Lexicon.RecountWorkers)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"https://editor.example.org", "https://example.org"}, cfg.CORS.Origins())
	assert.Equal(t, 5, cfg.RateLimit.LoginPerMinute)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFile_Malformed(t *testing.T) {
	_, err := LoadFile(configFile(t, "server: [port"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read")
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", configFile(t, sampleYAML))
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LEXICON_LINK_INACTIVE", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.False(t, cfg.Lexicon.LinkInactive)
}

func TestLoad_ConfigPathMustExist(t *testing.T) {
	requiredEnv(t)
	t.Setenv("CONFIG_PATH", "/nonexistent/scribe.yaml")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_EnvOnlyDefaults(t *testing.T) {
	requiredEnv(t)
	t.Setenv("CONFIG_PATH", "")
	inEmptyDir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, uint64(200), cfg.Lexicon.SearchLimit)
	assert.False(t, cfg.Lexicon.LinkInactive)
	assert.Zero(t, cfg.Lexicon.RecountInterval, "scheduler off unless configured")
	assert.Equal(t, "scribe_session", cfg.Auth.CookieName)
	assert.False(t, cfg.CORS.AllowCredentials)
}

func TestLoad_EnvOnlyInvalid(t *testing.T) {
	requiredEnv(t)
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("AUTH_SESSION_SECRET", "short")
	inEmptyDir(t)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: validate")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"baseline", func(*Config) {}, false},
		{"short session secret", func(c *Config) { c.Auth.SessionSecret = "short" }, true},
		{"empty session secret", func(c *Config) { c.Auth.SessionSecret = "" }, true},
		{"zero session ttl", func(c *Config) { c.Auth.SessionTTL = 0 }, true},
		{"blank cookie name", func(c *Config) { c.Auth.CookieName = "  " }, true},
		{"bcrypt cost too low", func(c *Config) { c.Auth.BcryptCost = 2 }, true},
		{"bcrypt cost too high", func(c *Config) { c.Auth.BcryptCost = 32 }, true},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, true},
		{"search limit zero", func(c *Config) { c.Lexicon.SearchLimit = 0 }, true},
		{"negative recount interval", func(c *Config) { c.Lexicon.RecountInterval = -time.Second }, true},
		{"no recount workers", func(c *Config) { c.Lexicon.RecountWorkers = 0 }, true},
		{"negative login limit", func(c *Config) { c.RateLimit.LoginPerMinute = -1 }, true},
		{"login limit disabled", func(c *Config) { c.RateLimit.LoginPerMinute = 0 }, false},
		{"wildcard origin with credentials", func(c *Config) {
			c.CORS.AllowedOrigins = "*"
			c.CORS.AllowCredentials = true
		}, true},
		{"wildcard among origins with credentials", func(c *Config) {
			c.CORS.AllowedOrigins = "https://a.org, *"
			c.CORS.AllowCredentials = true
		}, true},
		{"explicit origin with credentials", func(c *Config) {
			c.CORS.AllowedOrigins = "https://a.org"
			c.CORS.AllowCredentials = true
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCORSConfig_Origins(t *testing.T) {
	got := CORSConfig{AllowedOrigins: " https://a.org,, https://b.org ,"}.Origins()
	assert.Equal(t, []string{"https://a.org", "https://b.org"}, got)
	assert.Nil(t, CORSConfig{}.Origins())
}

func baseConfig() Config {
	return Config{
		Server: ServerConfig{Port: 8080},
		Auth: AuthConfig{
			SessionSecret: "this-is-a-very-long-session-secret-for-tests",
			SessionTTL:    12 * time.Hour,
			CookieName:    "scribe_session",
			BcryptCost:    10,
		},
		Lexicon: LexiconConfig{
			SearchLimit:    200,
			RecountWorkers: 4,
		},
		CORS: CORSConfig{AllowedOrigins: "*"},
	}
}
