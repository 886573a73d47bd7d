package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DevelopmentDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("ALLOWED_ORIGIN", "")
	t.Setenv("TURNSTILE_SECRET_KEY", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000", cfg.AllowedOrigin)
	assert.Equal(t, turnstileTestSecret, cfg.TurnstileSecret)
	assert.Equal(t, int64(100*1024), cfg.MaxBodyBytes)
	assert.Equal(t, 2*time.Second, cfg.MinSubmitElapsed)
	assert.Equal(t, 5, cfg.RateLimitContact)
	assert.False(t, cfg.RegisterEchoUser)
}

func TestLoadConfig_ProductionRequiresOrigin(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("ALLOWED_ORIGIN", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_ProductionKeepsCaptchaSecretEmpty(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("ALLOWED_ORIGIN", "https://example.com/")
	t.Setenv("TURNSTILE_SECRET_KEY", "")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, ,192.168.0.1")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://example.com", cfg.AllowedOrigin)
	assert.Empty(t, cfg.TurnstileSecret)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.0.1"}, cfg.TrustedProxies)
}
