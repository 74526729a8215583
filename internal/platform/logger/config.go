package logger

import (
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Config holds the logger settings, read from the environment.
type Config struct {
	Level  string // "debug", "info", "warn", "error"
	Format string // "json" or "console"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func DefaultConfig() *Config {
	return &Config{
		Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Format: strings.ToLower(getEnv("LOG_FORMAT", "json")),
	}
}

// ZapLevel converts the configured level to a zapcore.Level, defaulting to
// info on unknown values.
func (c *Config) ZapLevel() zapcore.Level {
	switch c.Level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
