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
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Storage     StorageConfig
	Redis       RedisConfig
	SMTP        SMTPConfig
	Uploads     UploadConfig
	Alerts      AlertConfig
}

type ServerConfig struct {
	Host           string
	Port           string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	URL     string
	TestURL string
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

type StorageConfig struct {
	// Type selects the blob store backend: "local" or "supabase".
	Type           string
	Path           string
	SupabaseURL    string
	SupabaseAPIKey string
	SupabaseBucket string
}

type RedisConfig struct {
	URL string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type UploadConfig struct {
	MaxFileSize      int64
	AllowedMimeTypes []string
}

type AlertConfig struct {
	Recipients []string
	Interval   time.Duration
}

// Load reads configuration from environment variables, with a .env file
// picked up in non-production environments.
func Load() (*Config, error) {
	env := os.Getenv("ENVIRONMENT")
	if env != "production" {
		// .env file is optional
		_ = godotenv.Load()
	}

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Host:           getEnv("HOST", "localhost"),
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
		},
		Database: DatabaseConfig{
			URL:     getEnv("DATABASE_URL", ""),
			TestURL: getEnv("DATABASE_URL_TEST", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
			Expiry: parseDuration(getEnv("JWT_EXPIRY", "24h")),
		},
		Storage: StorageConfig{
			Type:           getEnv("STORAGE_TYPE", "local"),
			Path:           getEnv("STORAGE_PATH", "./uploads"),
			SupabaseURL:    getEnv("SUPABASE_URL", ""),
			SupabaseAPIKey: getEnv("SUPABASE_API_KEY", ""),
			SupabaseBucket: getEnv("SUPABASE_BUCKET", "documents"),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     parseInt(getEnv("SMTP_PORT", "587")),
			Username: getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", ""),
		},
		Uploads: UploadConfig{
			MaxFileSize: parseInt64(getEnv("MAX_FILE_SIZE", "10485760")),
			AllowedMimeTypes: strings.Split(getEnv("ALLOWED_FILE_TYPES",
				"application/pdf,application/msword,application/vnd.openxmlformats-officedocument.wordprocessingml.document,application/vnd.ms-excel,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet,image/jpeg,image/png,image/webp,text/plain"), ","),
		},
		Alerts: AlertConfig{
			Recipients: splitNonEmpty(getEnv("ALERT_RECIPIENTS", "")),
			Interval:   parseDuration(getEnv("ALERT_INTERVAL", "24h")),
		},
	}

	if err := validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// GetDatabaseURL returns the test database URL when running in test environment.
func (c *Config) GetDatabaseURL() string {
	if c.Environment == "test" && c.Database.TestURL != "" {
		return c.Database.TestURL
	}
	return c.Database.URL
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func validate(config *Config) error {
	if config.IsProduction() && config.GetDatabaseURL() == "" {
		return fmt.Errorf("DATABASE_URL is required in production")
	}
	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if config.JWT.Expiry <= 0 {
		return fmt.Errorf("JWT_EXPIRY must be a positive duration")
	}
	if config.Storage.Type == "supabase" && config.Storage.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required when STORAGE_TYPE is supabase")
	}
	return nil
}

func splitNonEmpty(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseInt(value string) int {
	if i, err := strconv.Atoi(value); err == nil {
		return i
	}
	return 0
}

func parseInt64(value string) int64 {
	if i, err := strconv.ParseInt(value, 10, 64); err == nil {
		return i
	}
	return 0
}

func parseDuration(value string) time.Duration {
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	return 0
}
