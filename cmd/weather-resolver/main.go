package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/weather-resolver/internal/api/http"
	"github.com/i474232898/weather-resolver/internal/config"
	"github.com/i474232898/weather-resolver/internal/geocache"
	"github.com/i474232898/weather-resolver/internal/weather"
	"github.com/i474232898/weather-resolver/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound upstream calls; one timeout bound
	// applies uniformly.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	geocoder := providers.NewOpenMeteoGeocoder(httpClient, cfg.GeocodingBaseURL)
	forecast := providers.NewOpenMeteoForecast(httpClient, cfg.ForecastBaseURL)
	historical := providers.NewNASAPower(httpClient, cfg.HistoricalBaseURL)

	cache := geocache.New(cfg.GeocodeCacheSize, cfg.GeocodeCacheTTL)
	geocodeResolver := weather.NewGeocodeResolver(geocoder, cache)

	resolver := weather.NewResolver(geocodeResolver, historical, forecast)

	app := fiber.New(fiber.Config{
		AppName:               "weather-resolver",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-resolver",
		})
	})

	httpapi.RegisterRoutes(app, resolver)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
