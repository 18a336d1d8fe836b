package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/yukikurage/taskboard-client/internal/constants"
)

type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	AuthRouteStyle string
	StorageDriver  string
	StorageDSN     string
	RedisAddr      string
	RedisPassword  string
	NotifyChannel  string
	LogLevel       string
	LogFormat      string
	GinMode        string
	MockAPIAddr    string
	MockAPISecret  string
	MockDBDriver   string
	MockDBDSN      string
}

// Load reads configuration from the environment. Values from a .env file in
// the working directory are applied first; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		APIBaseURL:     getEnv("API_BASE_URL", constants.DefaultAPIBaseURL),
		RequestTimeout: getDuration("API_TIMEOUT", constants.DefaultRequestTimeout),
		AuthRouteStyle: strings.ToLower(getEnv("AUTH_ROUTE_STYLE", "users")),
		StorageDriver:  strings.ToLower(getEnv("STORAGE_DRIVER", "sqlite")),
		StorageDSN:     getEnv("STORAGE_DSN", "taskboard.db"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		NotifyChannel:  getEnv("NOTIFY_CHANNEL", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		MockAPIAddr:    getEnv("MOCK_API_ADDR", ":8080"),
		MockAPISecret:  getEnv("MOCK_API_SECRET", "default-secret-key-change-me"),
		MockDBDriver:   strings.ToLower(getEnv("MOCK_DB_DRIVER", "sqlite")),
		MockDBDSN:      getEnv("MOCK_DB_DSN", "file:mockapi?mode=memory&cache=shared"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}
