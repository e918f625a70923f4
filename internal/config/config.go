package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"order-desk/internal/assets"
)

// Asset backends accepted by ASSET_BACKEND.
const (
	AssetBackendNone  = "none"
	AssetBackendLocal = "local"
	AssetBackendS3    = "s3"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Logger     LoggerConfig
	Auth       AuthConfig
	Pagination PaginationConfig
	Assets     AssetsConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host         string
	Port         int
	MaxUploadMB  int
	AllowOrigins string
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
	AutoMigrate     bool
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds the single operator account.
// Password may be plain text or a bcrypt hash.
type AuthConfig struct {
	Username string
	Password string
}

// PaginationConfig holds order list paging configuration.
type PaginationConfig struct {
	PageSize int
}

// AssetsConfig holds image storage configuration.
type AssetsConfig struct {
	Backend   string // "none", "local" or "s3"
	Folder    string
	PublicURL string
	LocalDir  string
	S3        S3Config
}

// S3Config holds AWS S3 configuration for order images.
type S3Config struct {
	Bucket   string
	Region   string
	Endpoint string // optional, for S3-compatible services
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvAsInt("SERVER_PORT", 8080),
			MaxUploadMB:  getEnvAsInt("MAX_UPLOAD_MB", 10),
			AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "orderdesk"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 10),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 1),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
			AutoMigrate:     getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			Username: getEnv("AUTH_USERNAME", ""),
			Password: getEnv("AUTH_PASSWORD", ""),
		},
		Pagination: PaginationConfig{
			PageSize: getEnvAsInt("PAGE_SIZE", 10),
		},
		Assets: AssetsConfig{
			Backend:   getEnv("ASSET_BACKEND", AssetBackendLocal),
			Folder:    getEnv("ASSET_FOLDER", "orders"),
			PublicURL: getEnv("ASSET_PUBLIC_URL", ""),
			LocalDir:  getEnv("ASSET_LOCAL_DIR", "data/uploads"),
			S3: S3Config{
				Bucket:   getEnv("S3_BUCKET", ""),
				Region:   getEnv("S3_REGION", "us-east-1"),
				Endpoint: getEnv("S3_ENDPOINT", ""),
			},
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.MaxUploadMB < 1 {
		return fmt.Errorf("max upload size must be at least 1 MB")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	if c.Auth.Username == "" {
		return fmt.Errorf("auth username is required")
	}

	if c.Auth.Password == "" {
		return fmt.Errorf("auth password is required")
	}

	if c.Pagination.PageSize < 1 {
		return fmt.Errorf("page size must be at least 1")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	folder, _, _ := strings.Cut(strings.Trim(c.Assets.Folder, "/"), "/")
	if assets.IsVersionSegment(folder) {
		return fmt.Errorf("invalid asset folder: %s (must not look like a version segment)", c.Assets.Folder)
	}

	switch c.Assets.Backend {
	case AssetBackendNone:
	case AssetBackendLocal:
		if c.Assets.LocalDir == "" {
			return fmt.Errorf("asset local dir is required when the local backend is used")
		}
	case AssetBackendS3:
		if c.Assets.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when the s3 backend is used")
		}
		if c.Assets.S3.Region == "" {
			return fmt.Errorf("S3 region is required when the s3 backend is used")
		}
	default:
		return fmt.Errorf("invalid asset backend: %s (must be none, local, or s3)", c.Assets.Backend)
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// MaxUploadBytes returns the upload limit in bytes.
func (c *ServerConfig) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
