package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr           string
	APIBaseURL     string
	APITimeout     time.Duration
	StoragePath    string
	StorageKey     string
	JWTSecret      string
	TokenTTL       time.Duration
	Environment    string
	LogLevel       string
	MetricsEnabled bool
}

func Load() Config {
	_ = godotenv.Load()
	return Config{
		Addr:           getEnv("APP_ADDR", ":8000"),
		APIBaseURL:     getEnv("API_BASE_URL", "http://localhost:8000"),
		APITimeout:     getEnvDuration("API_TIMEOUT", 10*time.Second),
		StoragePath:    getEnv("STORAGE_PATH", "ems.json"),
		StorageKey:     getEnv("STORAGE_KEY", ""),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		TokenTTL:       getEnvDuration("TOKEN_TTL", 24*time.Hour),
		Environment:    getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if c.Environment == "production" {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be positive")
	}
	if strings.TrimSpace(c.StoragePath) == "" {
		return fmt.Errorf("STORAGE_PATH is required")
	}
	return nil
}
