package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	Server  ServerConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Sync    SyncConfig
	Webhook WebhookConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string
	ReadTimeout        int
	WriteTimeout       int
	CORSAllowedOrigins string // comma-separated, or "*" for all
}

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI    string
	DBName string
}

// RedisConfig holds Redis connection settings. An empty Addr disables
// the durable notification queue; the server then falls back to direct
// webhook sends.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SyncConfig holds the shared secret for sync/audit access and the
// intake link-pattern variant ("reel" or "profile").
type SyncConfig struct {
	APIKey   string
	LinkMode string
}

// WebhookConfig holds the sheet-automation webhook settings.
// WatchChanges enables the change-stream watcher in cmd/worker; leave it
// off when the durable queue is in use or every insert is delivered
// twice.
type WebhookConfig struct {
	URL          string
	Secret       string
	TimeoutSec   int
	WatchChanges bool
}

// Load reads configuration from environment, with optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load() // .env

	readTimeout, _ := strconv.Atoi(getEnv("READ_TIMEOUT_SEC", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("WRITE_TIMEOUT_SEC", "30"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "8080"),
			ReadTimeout:        readTimeout,
			WriteTimeout:       writeTimeout,
			CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Mongo: MongoConfig{
			URI:    getEnv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
			DBName: getEnv("MONGODB_DB", "apex-reels"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Sync: SyncConfig{
			APIKey:   getEnv("SHEET_SYNC_KEY", ""),
			LinkMode: strings.ToLower(getEnv("PROFILE_LINK_MODE", "reel")),
		},
		Webhook: WebhookConfig{
			URL:          getEnv("GOOGLE_APPS_SCRIPT_WEBHOOK", ""),
			Secret:       getEnv("GOOGLE_WEBHOOK_SECRET", ""),
			TimeoutSec:   getEnvInt("WEBHOOK_TIMEOUT_SEC", 10),
			WatchChanges: getEnv("WATCH_CHANGE_STREAM", "false") == "true",
		},
	}
	return cfg, nil
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
