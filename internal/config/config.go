package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	OpenWeatherAPIKey string

	// Default city served until the UI reconfigures it.
	DefaultCity    string
	DefaultCountry string

	// RefreshInterval controls the background cache warm-up; 0 disables it.
	RefreshInterval time.Duration

	// HTTPTimeout bounds outbound provider calls.
	HTTPTimeout time.Duration

	Port string
}

// Load reads configuration from the environment (and .env if present) with
// sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")

	cfg.DefaultCity = getenvDefault("CITY_DEFAULT", "London")
	cfg.DefaultCountry = getenvDefault("COUNTRY_DEFAULT", "GB")

	intervalStr := getenvDefault("REFRESH_INTERVAL", "5m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = interval

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
