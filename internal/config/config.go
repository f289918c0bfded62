// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Storage backends accepted in STORE_BACKEND.
const (
	BackendValkey   = "valkey"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Idea sources accepted in IDEA_SOURCE. The empty value uses the built-in
// catalog only.
const (
	IdeaSourceNone = ""
	IdeaSourceHTTP = "http"
	IdeaSourceAI   = "ai"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Where the registry, settings and activity log live.
	StoreBackend string

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible store)
	ValkeyHost      string
	ValkeyPort      string
	ValkeyPassword  string
	ValkeyDB        int
	ValkeyKeyPrefix string

	// Idea source
	IdeaSource    string
	IdeaSourceURL string

	// AI provider settings, used when IdeaSource is "ai"
	AIProvider string // "openai", "openrouter", "mistral", "claude"
	AIAPIKey   string
	AIModel    string
	AIBaseURL  string

	// Simulated deployment latency
	DeployLatency time.Duration

	// S3-compatible backup bucket. Backups are off when unset.
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3PublicURL string

	// bcrypt hash of the admin API token
	APITokenHash string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		StoreBackend: envOrDefault("STORE_BACKEND", BackendValkey),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "autosite"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "autosite"),

		ValkeyHost:      envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:      envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword:  os.Getenv("VALKEY_PASSWORD"),
		ValkeyKeyPrefix: envOrDefault("VALKEY_KEY_PREFIX", "autosite:"),

		IdeaSource:    os.Getenv("IDEA_SOURCE"),
		IdeaSourceURL: envOrDefault("IDEA_SOURCE_URL", "https://codemaker-backend.onrender.com/generate"),

		AIProvider: envOrDefault("AI_PROVIDER", "openai"),
		AIAPIKey:   os.Getenv("AI_API_KEY"),
		AIModel:    os.Getenv("AI_MODEL"),
		AIBaseURL:  os.Getenv("AI_BASE_URL"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    envOrDefault("S3_REGION", "us-east-1"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),

		APITokenHash: os.Getenv("API_TOKEN_HASH"),
	}

	db, err := strconv.Atoi(envOrDefault("VALKEY_DB", "0"))
	if err != nil || db < 0 {
		return nil, fmt.Errorf("VALKEY_DB must be a non-negative integer")
	}
	cfg.ValkeyDB = db

	latency, err := time.ParseDuration(envOrDefault("DEPLOY_LATENCY", "2s"))
	if err != nil || latency <= 0 {
		return nil, fmt.Errorf("DEPLOY_LATENCY must be a positive duration such as 2s")
	}
	cfg.DeployLatency = latency

	switch cfg.StoreBackend {
	case BackendValkey, BackendPostgres, BackendMemory:
	default:
		return nil, fmt.Errorf("STORE_BACKEND must be valkey, postgres or memory, got %q", cfg.StoreBackend)
	}

	switch cfg.IdeaSource {
	case IdeaSourceNone, IdeaSourceHTTP:
	case IdeaSourceAI:
		if cfg.AIAPIKey == "" {
			return nil, fmt.Errorf("AI_API_KEY must be set when IDEA_SOURCE=ai")
		}
	default:
		return nil, fmt.Errorf("IDEA_SOURCE must be empty, http or ai, got %q", cfg.IdeaSource)
	}

	if cfg.Env == "production" {
		if cfg.StoreBackend == BackendPostgres && cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
		if cfg.APITokenHash == "" {
			return nil, fmt.Errorf("API_TOKEN_HASH must be set in production")
		}
	}

	return cfg, nil
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
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// BackupsEnabled reports whether an S3 bucket is configured.
func (c *Config) BackupsEnabled() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != "" && c.S3Bucket != ""
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
