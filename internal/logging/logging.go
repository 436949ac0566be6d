// Package logging provides structured logging using Go's log/slog.
//
// Configuration is controlled via environment variables:
//   - REFSCOPE_LOG_LEVEL: debug, info, warn, error (default: info)
//   - REFSCOPE_LOG_FORMAT: text, json (default: text)
//
// All logging goes to stderr to keep stdout clean for the MCP protocol.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config holds logging configuration
type Config struct {
	Level  slog.Level
	Format string    // "text" or "json"
	Output io.Writer // defaults to os.Stderr
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Level:  slog.LevelInfo,
		Format: "text",
		Output: os.Stderr,
	}
}

// LoadConfigFromEnv reads logging config from environment variables,
// starting from the defaults.
func LoadConfigFromEnv() Config {
	cfg := DefaultConfig()

	if level := os.Getenv("REFSCOPE_LOG_LEVEL"); level != "" {
		cfg.Level = ParseLevel(level)
	}
	if format := os.Getenv("REFSCOPE_LOG_FORMAT"); format != "" {
		cfg.Format = strings.ToLower(format)
	}

	return cfg
}

// ParseLevel converts a level name to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
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

// New creates a configured slog.Logger.
func New(cfg Config) *slog.Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level: cfg.Level,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler)
}

// Init installs a logger built from level and format names as the
// process-wide default. Empty values fall back to the environment, then
// to the defaults.
func Init(level, format string) {
	cfg := LoadConfigFromEnv()
	if level != "" {
		cfg.Level = ParseLevel(level)
	}
	if format != "" {
		cfg.Format = strings.ToLower(format)
	}
	slog.SetDefault(New(cfg))
}

// Nop returns a logger that discards all output.
// Useful for tests or when logging should be suppressed.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(nopWriter{}, nil))
}

// nopWriter implements io.Writer and discards all data.
type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) {
	return len(p), nil
}
