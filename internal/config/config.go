// Package config reads the server configuration from the environment, optionally seeded
// from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	DBDriver            string
	DatabaseURL         string
	JWTSecret           string
	EncryptionKey       string
	MoodTrackingEnabled bool
	TrendWindow         int
	AnalyticsCacheTTL   time.Duration
	Env                 string
}

func (c Config) Development() bool { return c.Env == "development" }

var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

// Load reads .env (when present) and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key, fallback string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return fallback
	}

	c := Config{
		Port:          get("PORT", "8080"),
		DBDriver:      get("DB_DRIVER", "pgx"),
		DatabaseURL:   getenv("DATABASE_URL"),
		JWTSecret:     getenv("JWT_SECRET"),
		EncryptionKey: getenv("ENCRYPTION_KEY"),
		Env:           get("APP_ENV", "production"),
	}
	if c.JWTSecret == "" {
		return Config{}, ErrMissingJWTSecret
	}
	if c.DBDriver == "sqlite" && c.DatabaseURL == "" {
		c.DatabaseURL = "dailythought.db"
	}

	var err error
	if c.MoodTrackingEnabled, err = strconv.ParseBool(get("MOOD_TRACKING_ENABLED", "true")); err != nil {
		return Config{}, fmt.Errorf("MOOD_TRACKING_ENABLED: %w", err)
	}
	if c.TrendWindow, err = strconv.Atoi(get("TREND_WINDOW", "7")); err != nil || c.TrendWindow < 1 {
		return Config{}, fmt.Errorf("TREND_WINDOW must be a positive integer, got %q", getenv("TREND_WINDOW"))
	}
	if c.AnalyticsCacheTTL, err = time.ParseDuration(get("ANALYTICS_CACHE_TTL", "5m")); err != nil {
		return Config{}, fmt.Errorf("ANALYTICS_CACHE_TTL: %w", err)
	}
	return c, nil
}
