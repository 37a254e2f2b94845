package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Database  DatabaseConfig
	Server    ServerConfig
	RateLimit RateLimitConfig
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string //nolint:gosec // G117: DB connection config
	DBName   string
	SSLMode  string
	MaxConns int
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  []string
}

// RateLimitConfig holds per-tenant request throttling settings.
type RateLimitConfig struct {
	PerSecond float64
	Burst     int
}

// Load reads configuration from environment variables. Defaults are safe for
// local development only; in production the DB password must be set explicitly.
func Load() (*Config, error) {
	dbPort, err := getEnvInt("LEADVINE_DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	dbMaxConns, err := getEnvInt("LEADVINE_DB_MAX_CONNS", 25)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	readTimeout, err := getEnvDuration("LEADVINE_SERVER_READ_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	writeTimeout, err := getEnvDuration("LEADVINE_SERVER_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	ratePerSecond, err := getEnvFloat("LEADVINE_RATE_LIMIT_PER_SECOND", 50)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	rateBurst, err := getEnvInt("LEADVINE_RATE_LIMIT_BURST", 100)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("LEADVINE_DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("LEADVINE_DB_USER", "leadvine"),
			Password: getEnv("LEADVINE_DB_PASSWORD", ""),
			DBName:   getEnv("LEADVINE_DB_NAME", "leadvine_dev"),
			SSLMode:  getEnv("LEADVINE_DB_SSLMODE", "disable"),
			MaxConns: dbMaxConns,
		},
		Server: ServerConfig{
			Addr:         getEnv("LEADVINE_SERVER_ADDR", ":8080"),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			CORSOrigins:  getEnvList("LEADVINE_CORS_ORIGINS", []string{"http://localhost:5173"}),
		},
		RateLimit: RateLimitConfig{
			PerSecond: ratePerSecond,
			Burst:     rateBurst,
		},
	}

	err = cfg.validate()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	return cfg, nil
}

// validate checks required fields and value bounds.
func (c *Config) validate() error {
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("LEADVINE_DB_PORT must be 1-65535, got %d", c.Database.Port)
	}
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("LEADVINE_DB_MAX_CONNS must be >= 1, got %d", c.Database.MaxConns)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("LEADVINE_SERVER_READ_TIMEOUT must be positive, got %s", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("LEADVINE_SERVER_WRITE_TIMEOUT must be positive, got %s", c.Server.WriteTimeout)
	}
	if c.RateLimit.PerSecond <= 0 {
		return fmt.Errorf("LEADVINE_RATE_LIMIT_PER_SECOND must be positive, got %g", c.RateLimit.PerSecond)
	}
	if c.RateLimit.Burst < 1 {
		return fmt.Errorf("LEADVINE_RATE_LIMIT_BURST must be >= 1, got %d", c.RateLimit.Burst)
	}

	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as int: %w", key, v, err)
	}
	return n, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as float: %w", key, v, err)
	}
	return f, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as duration: %w", key, v, err)
	}
	return d, nil
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
