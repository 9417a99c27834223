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

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, "pageturners", cfg.Database.Namespace)
	assert.Equal(t, time.Hour, cfg.Sweep.Interval)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SWEEP_INTERVAL", "30m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 30*time.Minute, cfg.Sweep.Interval)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
}

func TestValidate(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
}

func TestValidateErrors(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.Server.Env = "staging"
	cfg.Database.Host = ""
	cfg.Sweep.Interval = time.Second

	verr := cfg.Validate()
	require.Error(t, verr)
	assert.Contains(t, verr.Error(), "SERVER_ENV")
	assert.Contains(t, verr.Error(), "DB_HOST")
	assert.Contains(t, verr.Error(), "SWEEP_INTERVAL")
}

func TestValidateProductionRequiresAdminKey(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.Server.Env = "production"
	cfg.Admin.KeyHash = ""

	verr := cfg.Validate()
	require.Error(t, verr)
	assert.Contains(t, verr.Error(), "ADMIN_KEY_HASH")
}
