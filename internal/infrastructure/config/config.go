package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/tallyworks/tally/pkg/postgres"
)

// Config holds all configuration for the ledger service.
type Config struct {
	// gRPC server port
	GRPCPort int
	// HTTP metrics/health port
	HTTPPort int
	// Database configuration
	Database postgres.Config
	// Kafka configuration
	Kafka KafkaConfig
	// Auth configuration
	Auth AuthConfig
	// Service name for observability
	ServiceName string
	// Log level and format
	LogLevel  string
	LogFormat string
	// AllowClosedPostings keeps the historical policy of accepting ordinary
	// postings into closed (not locked) periods.
	AllowClosedPostings bool
	// MigrationsPath points at the SQL migration files.
	MigrationsPath string
}

// KafkaConfig holds Kafka connection settings.
type KafkaConfig struct {
	Brokers []string
}

// AuthConfig holds JWT validation settings. Exactly one of Secret (HS256) or
// PublicKeyPath (RS256) should be set.
type AuthConfig struct {
	Secret        string
	PublicKeyPath string
}

// Validate checks required configuration values.
func (c Config) Validate() {
	if c.Database.Password == "" {
		panic("DB_PASSWORD environment variable is required")
	}
	if c.Auth.Secret == "" && c.Auth.PublicKeyPath == "" {
		panic("JWT_SECRET or JWT_PUBLIC_KEY_PATH environment variable is required")
	}
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	return Config{
		GRPCPort:    getEnvInt("GRPC_PORT", 8085),
		HTTPPort:    getEnvInt("HTTP_PORT", 9085),
		ServiceName: getEnv("SERVICE_NAME", "tally-ledger"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		Database: postgres.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "tally"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "tally_ledger"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 10)),
		},
		Kafka: KafkaConfig{
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		},
		Auth: AuthConfig{
			Secret:        getEnv("JWT_SECRET", ""),
			PublicKeyPath: getEnv("JWT_PUBLIC_KEY_PATH", ""),
		},
		AllowClosedPostings: getEnvBool("ALLOW_CLOSED_POSTINGS", true),
		MigrationsPath:      getEnv("MIGRATIONS_PATH", "internal/infrastructure/postgres/migrations"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}
