package services

import (
	"log"
	"os"
	"time"
)

const defaultSuggestionCacheTTL = 10 * time.Minute

type Config struct {
	Port               string
	JWTSecret          string
	BucketName         string
	BrokerAddress      string
	SentryDSN          string
	Env                string
	SuggestionCacheTTL time.Duration
	WeatherBaseURL     string
}

func GetEnv(key, fallback string) string {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback
	}
	return value
}

func LoadConfig() Config {
	ttl := defaultSuggestionCacheTTL
	if raw := os.Getenv("SUGGESTION_CACHE_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			log.Printf("[Config] invalid SUGGESTION_CACHE_TTL %q, using %v", raw, ttl)
		} else {
			ttl = parsed
		}
	}
	return Config{
		Port:               GetEnv("PORT", "8080"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		BucketName:         GetEnv("R2_BUCKET_NAME", "wardrobe"),
		BrokerAddress:      GetEnv("ASYNC_BROKER_ADDRESS", "127.0.0.1:6379"),
		SentryDSN:          os.Getenv("SENTRY_DSN"),
		Env:                GetEnv("ENV", "dev"),
		SuggestionCacheTTL: ttl,
		WeatherBaseURL:     GetEnv("WEATHER_BASE_URL", defaultWeatherBaseURL),
	}
}

func (c Config) IsProduction() bool {
	return c.Env == "prod"
}
