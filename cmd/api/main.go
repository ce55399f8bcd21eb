package main

import (
	"log"
	"time"

	"wardrobeapi/controllers"
	"wardrobeapi/dbhelper"
	"wardrobeapi/outfits"
	"wardrobeapi/services"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := services.LoadConfig()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set!")
	}
	err := sentry.Init(sentry.ClientOptions{
		// empty DSN disables reporting
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Env,
		Release:          "wardrobeapi@1.0.0",
		Debug:            false,
		TracesSampleRate: 1.0,
	})
	if err != nil {
		log.Fatalf("sentry.Init: %s", err)
	}
	defer sentry.Recover()
	defer sentry.Flush(2 * time.Second)

	db := dbhelper.SetupDB()
	store := services.NewGormWardrobeStore(db)

	awsService := &services.AWSService{}
	urlCache, err := services.NewURLCacheService(awsService, cfg.BucketName)
	if err != nil {
		log.Fatalf("Failed to initialize URL cache service: %v", err)
	}
	suggestionCache, err := services.NewSuggestionCache(cfg.SuggestionCacheTTL)
	if err != nil {
		log.Fatalf("Failed to initialize suggestion cache: %v", err)
	}

	e := controllers.SetupServer(
		store, awsService, urlCache, suggestionCache,
		services.NewOpenMeteoService(cfg.WeatherBaseURL),
		outfits.NewGenerator(),
		services.NewOutfitMetrics(nil),
	)
	e.Debug = !cfg.IsProduction()

	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(10)))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
