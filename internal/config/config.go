package config

import (
	"os"
	"strconv"
	"time"

	"cradle/internal/cache"
	"cradle/internal/database"
	"cradle/internal/external"
	"cradle/internal/messaging"
)

// Config holds the application configuration
type Config struct {
	Port           string
	GinMode        string
	LogLevel       string
	LogFormat      string
	RequestTimeout time.Duration

	AdminUser         string
	AdminPasswordHash string

	Database database.Config
	Cache    cache.Config
	NATS     messaging.Config
	Mailer   external.MailerConfig
	Blob     external.BlobConfig
}

// Load reads the configuration from environment variables
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SEC", 30)) * time.Second,

		AdminUser:         getEnv("ADMIN_USER", "admin"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),

		Database: database.Config{
			Host:               getEnv("DB_HOST", "localhost"),
			Port:               getEnvInt("DB_PORT", 5432),
			User:               getEnv("DB_USER", "cradle"),
			Password:           getEnv("DB_PASSWORD", "cradle123"),
			DBName:             getEnv("DB_NAME", "cradle"),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeMin: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 5),
			ConnMaxIdleTimeMin: getEnvInt("DB_CONN_MAX_IDLE_TIME_MIN", 1),
		},

		Cache: cache.Config{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},

		NATS: messaging.Config{
			URL:       getEnv("NATS_URL", "nats://localhost:4222"),
			ClusterID: getEnv("NATS_CLUSTER_ID", "cradle"),
			ClientID:  getEnv("NATS_CLIENT_ID", "cradle-api"),
		},

		Mailer: external.MailerConfig{
			BaseURL: getEnv("MAILER_URL", "https://api.resend.com"),
			APIKey:  getEnv("MAILER_API_KEY", ""),
			From:    getEnv("MAILER_FROM", "registry@example.com"),
			To:      getEnv("MAILER_TO", ""),
			Timeout: time.Duration(getEnvInt("MAILER_TIMEOUT_SEC", 30)) * time.Second,
		},

		Blob: external.BlobConfig{
			BaseURL:   getEnv("BLOB_URL", "http://localhost:9000/cradle"),
			PublicURL: getEnv("BLOB_PUBLIC_URL", ""),
			Token:     getEnv("BLOB_TOKEN", ""),
			Timeout:   time.Duration(getEnvInt("BLOB_TIMEOUT_SEC", 30)) * time.Second,
		},
	}
}

// getEnv reads an environment variable with a fallback default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an integer environment variable with a fallback default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
