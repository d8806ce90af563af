package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Comment store configuration
	Store StoreConfig

	// CORS configuration
	CORS CORSConfig

	// Moderation webhook configuration
	Webhook WebhookConfig

	// Moderation endpoint configuration
	Moderation ModerationConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// StoreConfig holds comment store settings
type StoreConfig struct {
	DataDir string
}

// CORSConfig holds cross-origin settings
type CORSConfig struct {
	AllowedOrigins []string
}

// WebhookConfig holds outbound moderation-bot webhook settings
type WebhookConfig struct {
	BotEndpointURL  string
	BotSharedSecret string
	RetryCount      int
	RetryWait       time.Duration
	QueueSize       int
	RequestTimeout  time.Duration
}

// Enabled reports whether the moderation webhook is configured
func (c *WebhookConfig) Enabled() bool {
	return c.BotEndpointURL != "" && c.BotSharedSecret != ""
}

// ModerationConfig holds the shared secret guarding /api/moderate
type ModerationConfig struct {
	Secret string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Store: StoreConfig{
			DataDir: getEnv("DATA_DIR", "./data"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getListEnv("CORS_ORIGINS"),
		},
		Webhook: WebhookConfig{
			BotEndpointURL:  getEnv("BOT_ENDPOINT_URL", ""),
			BotSharedSecret: getEnv("BOT_SHARED_SECRET", ""),
			RetryCount:      getIntEnv("WEBHOOK_RETRY_COUNT", 3),
			RetryWait:       getDurationEnv("WEBHOOK_RETRY_WAIT", 2*time.Second),
			QueueSize:       getIntEnv("WEBHOOK_QUEUE_SIZE", 256),
			RequestTimeout:  getDurationEnv("WEBHOOK_REQUEST_TIMEOUT", 10*time.Second),
		},
		Moderation: ModerationConfig{
			Secret: getEnv("WEBSITE_MODERATION_SECRET", ""),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Store.DataDir == "" {
		return fmt.Errorf("DATA_DIR is required")
	}
	if c.Webhook.QueueSize < 1 {
		return fmt.Errorf("WEBHOOK_QUEUE_SIZE must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getListEnv(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
