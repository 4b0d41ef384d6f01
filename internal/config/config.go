package config

import (
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	Port           string
	Environment    string
	LogLevel       slog.Level
	RedisURL       string
	SaveDir        string
	DeepseekAPIKey string
}

// Load reads configuration from the environment. DeepseekAPIKey may be
// empty — narration and semantic parsing degrade to their fallback paths
// without error when no key is configured (§6). RedisURL is a bare
// host:port address, not a redis:// URL — go-redis's Options.Addr takes
// the same shape the teacher's storage client already expected.
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "3000"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       parseLogLevel(getEnv("LOG_LEVEL", "info")),
		RedisURL:       getEnv("REDIS_URL", "localhost:6379"),
		SaveDir:        getEnv("SAVE_DIR", "./data/saves"),
		DeepseekAPIKey: getEnv("DEEPSEEK_API_KEY", ""),
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
