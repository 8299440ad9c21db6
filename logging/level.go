package logging

import (
	"log/slog"
	"strings"
)

// ParseLogLevel maps a LOG_LEVEL value to a slog level, defaulting to info
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ConsoleLogLevel picks the console level for an environment.
// An explicit level wins, except in tests where the console stays quiet.
func ConsoleLogLevel(env, level string) slog.Level {
	env = strings.ToLower(env)
	if env == "test" {
		return slog.LevelError
	}
	if strings.TrimSpace(level) != "" {
		return ParseLogLevel(level)
	}
	if env == "prod" || env == "staging" {
		return slog.LevelWarn
	}
	return slog.LevelInfo
}
