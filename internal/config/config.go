package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	API     APIConfig
	Session SessionConfig
	Debug   bool
}

// APIConfig holds the options for reaching the backend REST API.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SessionConfig points at the stored credential written by the login flow.
type SessionConfig struct {
	File string
}

// Load reads configuration from the environment, honoring a local .env file
// when present.
func Load() (*Config, error) {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	timeout, err := durationEnv("PLAYZONE_API_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		API: APIConfig{
			BaseURL: getEnv("PLAYZONE_API_URL", "http://localhost:8080/api"),
			Timeout: timeout,
		},
		Session: SessionConfig{
			File: getEnv("PLAYZONE_SESSION_FILE", defaultSessionFile()),
		},
		Debug: boolEnv("PLAYZONE_DEBUG"),
	}

	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("PLAYZONE_API_URL must not be empty")
	}
	return cfg, nil
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".playzone-session.json"
	}
	return home + "/.playzone-session.json"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func boolEnv(key string) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && value
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}
