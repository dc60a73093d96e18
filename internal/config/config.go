package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// HTTPTimeout bounds every outbound upstream call.
	HTTPTimeout time.Duration

	// Upstream base URL overrides; empty means the production endpoint.
	GeocodingBaseURL  string
	ForecastBaseURL   string
	HistoricalBaseURL string

	// Geocoding cache retention.
	GeocodeCacheSize int
	GeocodeCacheTTL  time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "5s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.GeocodingBaseURL = os.Getenv("GEOCODING_BASE_URL")
	cfg.ForecastBaseURL = os.Getenv("FORECAST_BASE_URL")
	cfg.HistoricalBaseURL = os.Getenv("HISTORICAL_BASE_URL")

	cfg.GeocodeCacheSize = getenvInt("GEOCODE_CACHE_SIZE", 256)

	ttlStr := getenvDefault("GEOCODE_CACHE_TTL", "24h")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid GEOCODE_CACHE_TTL: %w", err)
	}
	cfg.GeocodeCacheTTL = ttl

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
