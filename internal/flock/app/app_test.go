package app

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/flock/pkg/slogx"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()

	return Config{
		LogConfig: LogConfig{Env: "dev", LogLevel: "info", LogFormat: "text"},
		StoreConfig: StoreConfig{
			DatabaseFile: filepath.Join(dir, "flock.db"),
			PepperFile:   filepath.Join(dir, "secrets", "pepper"),
		},
		Listen:               "127.0.0.1:0",
		AppURL:               "http://localhost:8080",
		SessionTTL:           24 * time.Hour,
		TrialLength:          14 * 24 * time.Hour,
		HousekeepingSchedule: "@every 1h",
		ShutdownGracePeriod:  time.Second,
		Limits:               LimitConfig{People: 10, Groups: 2, ServicePlans: 2},
		RateLimit: RateLimitConfig{
			Store:         "memory",
			LoginAttempts: 5,
			LoginWindow:   15 * time.Minute,
		},
	}
}

func TestNewServesHealth(t *testing.T) {
	cfg := testConfig(t)

	app, err := New(cfg, slogx.Discard())
	require.NoError(t, err)

	for _, path := range []string{"/livez", "/readyz", "/metrics"} {
		rec := httptest.NewRecorder()
		app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	require.NoError(t, app.Shutdown())
	assert.FileExists(t, cfg.PepperFile)
	assert.FileExists(t, cfg.DatabaseFile)
}

func TestNewReopensExistingDatabase(t *testing.T) {
	cfg := testConfig(t)

	first, err := New(cfg, slogx.Discard())
	require.NoError(t, err)
	require.NoError(t, first.Shutdown())

	second, err := New(cfg, slogx.Discard())
	require.NoError(t, err)
	require.NoError(t, second.Shutdown())
}

func TestNewUnreachableRedis(t *testing.T) {
	cfg := testConfig(t)
	cfg.RateLimit.Store = "redis"
	cfg.RateLimit.RedisAddr = "127.0.0.1:1"

	_, err := New(cfg, slogx.Discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis")
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"ok", func(*Config) {}, ""},
		{"short session", func(c *Config) { c.SessionTTL = time.Second }, "session ttl"},
		{"negative trial", func(c *Config) { c.TrialLength = -time.Hour }, "trial length"},
		{"negative limit", func(c *Config) { c.Limits.Groups = -1 }, "plan limits"},
		{"no login attempts", func(c *Config) { c.RateLimit.LoginAttempts = 0 }, "login rate limit"},
		{"redis without addr", func(c *Config) {
			c.RateLimit.Store = "redis"
			c.RateLimit.RedisAddr = ""
		}, "redis"},
		{"bad schedule", func(c *Config) { c.HousekeepingSchedule = "whenever" }, "housekeeping schedule"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLimitConfig(t *testing.T) {
	l := LimitConfig{People: 3, Groups: 2, ServicePlans: 1}.PlanLimits()
	assert.Equal(t, 3, l.People)
	assert.Equal(t, 2, l.Groups)
	assert.Equal(t, 1, l.ServicePlans)

	rl := RateLimitConfig{LoginAttempts: 7, LoginWindow: time.Minute}.Login()
	assert.Equal(t, 7, rl.Limit)
	assert.Equal(t, time.Minute, rl.Window)
}
