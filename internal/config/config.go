// Package config reads the application settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string

	JWTSecret    string
	SessionTTL   time.Duration
	PostsPerPage int

	Debug   bool
	LogFile string

	CORSOrigins []string
}

// DSN returns the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}

// Load reads .env files (if present) and then the process environment.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading env file: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function, applying defaults.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:       get("PORT", "8080"),
		DBDriver:   strings.ToLower(get("DB_DRIVER", DriverPostgres)),
		DBHost:     get("DB_HOST", "localhost"),
		DBPort:     get("DB_PORT", "5432"),
		DBUser:     get("DB_USER", "postgres"),
		DBPassword: getenv("DB_PASSWORD"),
		DBName:     get("DB_NAME", "blogicum"),
		DBSSLMode:  get("DB_SSLMODE", "disable"),
		DBPath:     get("DB_PATH", "blogicum.db"),
		JWTSecret:  getenv("JWT_SECRET"),
		LogFile:    getenv("LOG_FILE"),
		Debug:      strings.EqualFold(get("LOG_LEVEL", "info"), "debug"),
	}

	switch cfg.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	ttl, err := time.ParseDuration(get("SESSION_TTL", "72h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, errors.New("SESSION_TTL must be positive")
	}
	cfg.SessionTTL = ttl

	perPage, err := strconv.Atoi(get("POSTS_PER_PAGE", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid POSTS_PER_PAGE: %w", err)
	}
	if perPage < 1 {
		return nil, errors.New("POSTS_PER_PAGE must be at least 1")
	}
	cfg.PostsPerPage = perPage

	for _, origin := range strings.Split(get("CORS_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	return cfg, nil
}
