// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// MinJWTSecretLength is the minimum accepted signing secret length in bytes.
const MinJWTSecretLength = 32

// devJWTSecret signs tokens in development when JWT_SECRET is unset. It is
// rejected in every other environment.
const devJWTSecret = "pagecraft-development-only-secret!"

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host     string `env:"APP_HOST" envDefault:"0.0.0.0"`
	Port     string `env:"APP_PORT" envDefault:"8080"`
	Env      string `env:"APP_ENV" envDefault:"development"` // "development", "production", "testing"
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// PostgreSQL connection
	DBHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	DBPort     string `env:"POSTGRES_PORT" envDefault:"5432"`
	DBUser     string `env:"POSTGRES_USER" envDefault:"pagecraft"`
	DBPassword string `env:"POSTGRES_PASSWORD" envDefault:"changeme"`
	DBName     string `env:"POSTGRES_DB" envDefault:"pagecraft"`

	// Valkey (Redis-compatible), optional. Empty host means in-process
	// rate limiting.
	ValkeyHost     string `env:"VALKEY_HOST"`
	ValkeyPort     string `env:"VALKEY_PORT" envDefault:"6379"`
	ValkeyPassword string `env:"VALKEY_PASSWORD"`

	// Bearer tokens
	JWTSecret string        `env:"JWT_SECRET"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"720h"`

	// Registration/login throttling per client IP
	AuthRateLimit  int           `env:"AUTH_RATE_LIMIT" envDefault:"20"`
	AuthRateWindow time.Duration `env:"AUTH_RATE_WINDOW" envDefault:"15m"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`

	// Read client addresses from X-Forwarded-For / X-Real-IP. Enable only
	// behind a reverse proxy that sets them.
	TrustProxy bool `env:"TRUST_PROXY" envDefault:"false"`

	// First-run admin account, created only when the users table is empty.
	SeedAdminEmail    string `env:"SEED_ADMIN_EMAIL"`
	SeedAdminPassword string `env:"SEED_ADMIN_PASSWORD"`
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing outside development.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}

	if cfg.JWTSecret == "" && cfg.IsDev() {
		slog.Warn("JWT_SECRET not set, using the development secret")
		cfg.JWTSecret = devJWTSecret
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.JWTSecret) < MinJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes long, got %d", MinJWTSecretLength, len(c.JWTSecret))
	}
	if !c.IsDev() && c.JWTSecret == devJWTSecret {
		return fmt.Errorf("JWT_SECRET must not use the development secret outside development")
	}
	if c.Env == "production" && c.DBPassword == "changeme" {
		return fmt.Errorf("POSTGRES_PASSWORD must be set in production")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	if c.AuthRateLimit < 1 {
		return fmt.Errorf("AUTH_RATE_LIMIT must be at least 1")
	}
	if c.AuthRateWindow <= 0 {
		return fmt.Errorf("AUTH_RATE_WINDOW must be positive")
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// UseValkey reports whether a Valkey server is configured.
func (c *Config) UseValkey() bool {
	return c.ValkeyHost != ""
}

// SlogLevel maps LOG_LEVEL to a slog level. Unknown values mean info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
