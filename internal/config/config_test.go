package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "development", cfg.Environment)
	require.Equal(t, 3000, cfg.HTTP.Port)
	require.Equal(t, 24*time.Hour, cfg.Security.TokenTTL)
	require.Equal(t, 10, cfg.Security.LoginMaxAttempts)
	require.NotEmpty(t, cfg.Postgres.DSN)
	require.Contains(t, cfg.AllowCORSOrigins, "http://localhost:5173")

	// Redis is off until explicitly configured.
	require.Empty(t, cfg.Redis.Addr)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("VOYAGO_ENVIRONMENT", "production")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "production", cfg.Environment)
}
