package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig is the process configuration, resolved from the environment with
// sensible defaults.
type AppConfig struct {
	// OpenWeatherAPIKey seeds the settings store; it may also be entered at
	// runtime through the settings endpoint.
	OpenWeatherAPIKey string

	// BaseURL overrides the OpenWeatherMap endpoint root, mainly for tests.
	BaseURL string

	// Metric selects metric units; imperial otherwise.
	Metric bool

	// LanguageCode is the upstream lang parameter derived from Locale.
	LanguageCode string

	// RefreshInterval controls how often the last admitted query is re-run.
	// Zero disables the refresh job.
	RefreshInterval time.Duration

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration

	Port string
}

// Load reads configuration from environment.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OWM_API_KEY")
	cfg.BaseURL = os.Getenv("OWM_BASE_URL")

	units := getenvDefault("WEATHER_UNITS", "metric")
	switch units {
	case "metric":
		cfg.Metric = true
	case "imperial":
		cfg.Metric = false
	default:
		return nil, fmt.Errorf("invalid WEATHER_UNITS: %q (want metric or imperial)", units)
	}

	locale := getenvDefault("WEATHER_LOCALE", os.Getenv("LANG"))
	cfg.LanguageCode = LanguageCode(locale)

	intervalStr := getenvDefault("REFRESH_INTERVAL", "15m")
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
