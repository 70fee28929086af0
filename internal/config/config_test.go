package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "helpdesk-service", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, time.Hour, cfg.Auth.AccessTokenTTL())
	assert.False(t, cfg.Settings.AssistantEnabledDefault)
	assert.True(t, cfg.Postgres.RunMigrations)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "15")
	t.Setenv("ASSISTANT_ENABLED_DEFAULT", "true")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/helpdesk")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL())
	assert.True(t, cfg.Settings.AssistantEnabledDefault)
	assert.Equal(t, "postgres://localhost/helpdesk", cfg.Postgres.DSN)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestLoadRejectsBadRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}

func TestGetEnvAsIntIgnoresGarbage(t *testing.T) {
	t.Setenv("POSTGRES_MAX_CONNS", "many")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, int32(10), cfg.Postgres.MaxConns)
}
