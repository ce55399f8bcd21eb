package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "JWT_SECRET", "R2_BUCKET_NAME", "ASYNC_BROKER_ADDRESS", "SENTRY_DSN", "ENV", "SUGGESTION_CACHE_TTL", "WEATHER_BASE_URL"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "", cfg.JWTSecret)
	assert.Equal(t, "127.0.0.1:6379", cfg.BrokerAddress)
	assert.Equal(t, 10*time.Minute, cfg.SuggestionCacheTTL)
	assert.Equal(t, defaultWeatherBaseURL, cfg.WeatherBaseURL)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("ENV", "prod")
	t.Setenv("SUGGESTION_CACHE_TTL", "90s")

	cfg := LoadConfig()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "s3cr3t", cfg.JWTSecret)
	assert.Equal(t, 90*time.Second, cfg.SuggestionCacheTTL)
	assert.True(t, cfg.IsProduction())
}

func TestLoadConfigBadTTL(t *testing.T) {
	t.Setenv("SUGGESTION_CACHE_TTL", "soon")
	assert.Equal(t, 10*time.Minute, LoadConfig().SuggestionCacheTTL)
}
