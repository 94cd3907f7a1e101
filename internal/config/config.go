// Package config loads service configuration from the environment and
// builds the kafka writer.
package config

import (
	"fmt"
	"os"
)

type Config struct {
	Port         string
	DatabaseURL  string
	JWTSecret    string
	KafkaBrokers string
	Env          string
}

// Load reads configuration from environment variables. DATABASE_URL and
// JWT_SECRET are required; everything else has a default or is optional.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         getEnvOrDefault("PORT", "3001"),
		KafkaBrokers: os.Getenv("KAFKA_BROKERS"),
		Env:          os.Getenv("ENV"),
	}

	if cfg.DatabaseURL = os.Getenv("DATABASE_URL"); cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.JWTSecret = os.Getenv("JWT_SECRET"); cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
