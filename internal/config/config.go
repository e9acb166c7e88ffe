package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	StorageDriver string
	Database      DatabaseConfig
	RedisURL      string

	Events EventsConfig

	// AdminPassword gates the admin routes. It is a shared convenience
	// password, not an authentication mechanism.
	AdminPassword string
	ImageBaseURL  string
	SeedFile      string

	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
	MaxIdle  int
}

// DSN builds the postgres connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type EventsConfig struct {
	KafkaBrokers []string
	Topic        string
}

// LoadConfig reads .env when present, then the environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          envStr("PORT", "8080"),
		Environment:   envStr("ENVIRONMENT", "development"),
		LogLevel:      envLevel("LOG_LEVEL", slog.LevelInfo),
		StorageDriver: strings.ToLower(envStr("STORAGE_DRIVER", StorageDriverPostgres)),
		Database: DatabaseConfig{
			Host:     envStr("DB_HOST", "localhost"),
			Port:     envStr("DB_PORT", "5432"),
			User:     envStr("DB_USER", "postgres"),
			Password: envStr("DB_PASSWORD", "postgres"),
			Name:     envStr("DB_NAME", "mcq_bank"),
			SSLMode:  envStr("DB_SSLMODE", "disable"),
			MaxConns: envInt("DB_MAX_CONNS", 25),
			MaxIdle:  envInt("DB_MAX_IDLE", 5),
		},
		RedisURL: envStr("REDIS_URL", ""),
		Events: EventsConfig{
			KafkaBrokers: envList("KAFKA_BROKERS"),
			Topic:        envStr("EVENTS_TOPIC", "mcq-bank.events"),
		},
		AdminPassword:   envStr("ADMIN_PASSWORD", "admin123"),
		ImageBaseURL:    strings.TrimRight(envStr("IMAGE_BASE_URL", "/images/questions"), "/"),
		SeedFile:        envStr("SEED_FILE", ""),
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail at first use
func (c *Config) Validate() error {
	var errs []string

	if _, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("PORT must be numeric, got %q", c.Port))
	}
	switch c.StorageDriver {
	case StorageDriverPostgres:
		if c.Database.Host == "" || c.Database.Name == "" {
			errs = append(errs, "DB_HOST and DB_NAME are required for the postgres driver")
		}
	case StorageDriverMemory:
	default:
		errs = append(errs, fmt.Sprintf("unknown STORAGE_DRIVER %q", c.StorageDriver))
	}
	if c.AdminPassword == "" {
		errs = append(errs, "ADMIN_PASSWORD must not be empty")
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, "SHUTDOWN_TIMEOUT must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envLevel(key string, fallback slog.Level) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(os.Getenv(key))); err != nil {
		return fallback
	}
	return level
}

func envList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
