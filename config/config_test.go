package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "anistream", cfg.AppName)
	assert.Equal(t, "", cfg.DatabaseURL, "no database by default: the app degrades instead of failing")
	assert.Equal(t, 120, cfg.RateLimitMax)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 30*24*time.Hour, cfg.PremiumDefaultTTL)
	assert.Equal(t, "animes", cfg.ESAnimeIndex)
	assert.Equal(t, "audit_events", cfg.RabbitMQAuditQueue)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("RATE_LIMIT_MAX", "5")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("PREMIUM_DEFAULT_TTL", "24h")

	cfg := Load()
	assert.Equal(t, 5, cfg.RateLimitMax)
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
	assert.Equal(t, 24*time.Hour, cfg.PremiumDefaultTTL)
}

func TestCSVSplitters(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("OAUTH_SCOPES", "openid,email")

	cfg := Load()
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins())
	assert.Equal(t, []string{"openid", "email"}, cfg.OAuthScopeList())
}
