package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// DatabaseConfig describes one Postgres connection.
type DatabaseConfig struct {
	Host     string `validate:"required"`
	Port     string `validate:"required,numeric"`
	Name     string `validate:"required"`
	User     string `validate:"required"`
	Password string
	SSLMode  string `validate:"oneof=disable allow prefer require verify-ca verify-full"`
}

// DSN returns the gorm/pgx connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// Config is read once at process start and passed to every component.
// Source (Database A) is the main TMS database and is only ever read;
// Target (Database B) is the warehouse cleaning database.
type Config struct {
	Source DatabaseConfig
	Target DatabaseConfig

	BatchSize  int `validate:"min=1"`
	BatchDelay time.Duration
	MaxRetries int `validate:"min=1"`
	RetryDelay time.Duration

	LogLevel string
	APIPort  string `validate:"required,numeric"`
}

// Load reads configuration from the environment, honoring a local .env
// file when present.
func Load() (*Config, error) {
	// Missing .env is fine in deployed environments.
	_ = godotenv.Load()

	cfg := &Config{
		Source: DatabaseConfig{
			Host:     getEnv("DB_A_HOST", "localhost"),
			Port:     getEnv("DB_A_PORT", "5432"),
			Name:     getEnv("DB_A_NAME", "main_database"),
			User:     getEnv("DB_A_USER", "postgres"),
			Password: getEnv("DB_A_PASSWORD", ""),
			SSLMode:  getEnv("DB_A_SSLMODE", "disable"),
		},
		Target: DatabaseConfig{
			Host:     getEnv("DB_B_HOST", "localhost"),
			Port:     getEnv("DB_B_PORT", "5432"),
			Name:     getEnv("DB_B_NAME", "warehouse_cleaning"),
			User:     getEnv("DB_B_USER", "postgres"),
			Password: getEnv("DB_B_PASSWORD", ""),
			SSLMode:  getEnv("DB_B_SSLMODE", "disable"),
		},
		BatchSize:  intFromEnv("BATCH_SIZE", 1000),
		BatchDelay: time.Duration(intFromEnv("BATCH_DELAY_SECONDS", 30)) * time.Second,
		MaxRetries: intFromEnv("MAX_RETRIES", 3),
		RetryDelay: time.Duration(intFromEnv("RETRY_DELAY_SECONDS", 5)) * time.Second,
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		APIPort:    getEnv("API_PORT", "8080"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func intFromEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
