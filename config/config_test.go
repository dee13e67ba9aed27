package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/config"
)

// unset blanks every variable Load reads so the host environment cannot leak into a test.
func unset(t *testing.T) {
	for _, k := range []string{
		"ENVIRONMENT", "HOST", "PORT", "LOG_LEVEL", "SENTRY_DSN",
		"ROUTER_PREFIX", "TRANSACTION_MODE", "INVOKE_TIMEOUT", "METRICS_NAMESPACE",
		"AUTH_REQUIRED", "AUTH_AUTHORITY", "JWT_KEY", "GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_SECRET",
		"DATABASE_URL", "DATABASE_HOST", "DATABASE_NAME",
		"REDIS_URL", "REDIS_ADDR", "SURREAL_URL", "CORS_ORIGIN",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	// Arrange
	unset(t)

	// Act
	cfg, err := config.Load()

	// Assert
	require.Nil(t, err)
	require.Equal(t, waypoint.Development, cfg.Env)
	require.Equal(t, "localhost:3000", cfg.Addr())
	require.Equal(t, "INFO", cfg.LogLevel)
	require.Equal(t, 30*time.Second, cfg.Dispatch.InvokeTimeout)
	require.False(t, cfg.Dispatch.Transactions)
	require.False(t, cfg.Auth.Required)
	require.False(t, cfg.Postgres.Configured())
	require.False(t, cfg.Redis.Configured())
	require.False(t, cfg.Surreal.Configured())
	require.Empty(t, cfg.HTTP.Origins())
}

func TestLoad(t *testing.T) {
	// Arrange
	unset(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PORT", ":8080")
	t.Setenv("ROUTER_PREFIX", "api")
	t.Setenv("TRANSACTION_MODE", "true")
	t.Setenv("INVOKE_TIMEOUT", "2s")
	t.Setenv("DATABASE_URL", "postgres://localhost/waypoint")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("SURREAL_URL", "ws://localhost:8000")
	t.Setenv("CORS_ORIGIN", "https://a.example.com, https://b.example.com")

	// Act
	cfg, err := config.Load()

	// Assert
	require.Nil(t, err)
	require.Equal(t, waypoint.Production, cfg.Env)
	require.Equal(t, ":8080", cfg.Addr())
	require.Equal(t, "api", cfg.Dispatch.Prefix)
	require.True(t, cfg.Dispatch.Transactions)
	require.Equal(t, 2*time.Second, cfg.Dispatch.InvokeTimeout)
	require.True(t, cfg.Postgres.Configured())
	require.Equal(t, "postgres://localhost/waypoint", cfg.Postgres.CxnConfig().URL)
	require.True(t, cfg.Redis.Configured())
	require.Equal(t, "localhost:6379", cfg.Redis.Store().Addr)
	require.True(t, cfg.Surreal.Configured())
	require.Equal(t, "waypoint", cfg.Surreal.Client().Namespace)
	require.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.HTTP.Origins())
}

func TestPostgresConfigured(t *testing.T) {
	tcs := []struct {
		name     string
		pg       config.Postgres
		expected bool
	}{
		{"zero-value", config.Postgres{}, false},
		{"url", config.Postgres{URL: "postgres://localhost/db"}, true},
		{"host-only", config.Postgres{Host: "localhost"}, false},
		{"host-and-name", config.Postgres{Host: "localhost", Name: "db"}, true},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, tc.pg.Configured())
		})
	}
}

func TestLoadErr(t *testing.T) {
	tcs := []struct {
		name string
		env  map[string]string
	}{
		{"bad-environment", map[string]string{"ENVIRONMENT": "moon"}},
		{"bad-timeout", map[string]string{"INVOKE_TIMEOUT": "soon"}},
		{"negative-timeout", map[string]string{"INVOKE_TIMEOUT": "-1s"}},
		{"bad-bool", map[string]string{"TRANSACTION_MODE": "maybe"}},
		{"unknown-authority", map[string]string{"AUTH_REQUIRED": "true", "AUTH_AUTHORITY": "ldap"}},
		{"jwt-no-key", map[string]string{"AUTH_REQUIRED": "true", "AUTH_AUTHORITY": "jwt"}},
		{"redis-no-server", map[string]string{"AUTH_REQUIRED": "true", "AUTH_AUTHORITY": "redis"}},
		{"google-no-client", map[string]string{"AUTH_REQUIRED": "true", "AUTH_AUTHORITY": "google", "GOOGLE_CLIENT_ID": "id"}},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			unset(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			// Act
			_, err := config.Load()

			// Assert
			require.ErrorIs(t, err, waypoint.ErrBadConfig)
		})
	}
}

func TestLoadAuth(t *testing.T) {
	// Arrange
	unset(t)
	t.Setenv("AUTH_REQUIRED", "true")
	t.Setenv("AUTH_AUTHORITY", "redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")

	// Act
	cfg, err := config.Load()

	// Assert
	require.Nil(t, err)
	require.True(t, cfg.Auth.Required)
	require.Equal(t, config.AuthorityRedis, cfg.Auth.Authority)
	require.Equal(t, "access_token:", cfg.Auth.AccessTokenPrefix)
}
