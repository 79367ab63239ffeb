// Package config loads the environment-driven settings and builds the
// logger the rest of the tool receives through constructors.
package config

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/mfreitez/concremix/internal/units"
)

// Config holds the runtime settings read from the environment.
type Config struct {
	LogFile  string
	LogLevel slog.Level
	Language string
	Units    string
}

// Load reads .env when present, then the CONCREMIX_* variables, falling
// back to the shipped defaults.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		LogFile:  "concremix.log",
		LogLevel: slog.LevelInfo,
		Language: "es",
		Units:    units.MKS,
	}
	if v := os.Getenv("CONCREMIX_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("CONCREMIX_LOG_LEVEL"); v != "" {
		cfg.LogLevel = parseLevel(v)
	}
	if v := os.Getenv("CONCREMIX_LANG"); v != "" {
		cfg.Language = v
	}
	if v := os.Getenv("CONCREMIX_UNITS"); v != "" {
		cfg.Units = v
	}
	return cfg
}

func parseLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARNING", "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds the tool's logger, writing to the configured log file.
// When the file cannot be opened the logger degrades to stderr. The returned
// closer releases the file.
func NewLogger(cfg Config) (*slog.Logger, func() error) {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}

	f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log := slog.New(slog.NewTextHandler(os.Stderr, opts))
		log.Warn("log file unavailable, logging to stderr", "file", cfg.LogFile, "error", err)
		return log, func() error { return nil }
	}
	return slog.New(slog.NewTextHandler(f, opts)), f.Close
}

// Discard returns a logger that drops everything. Used by tests and by
// callers that have no sink to offer.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
