package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Config holds the validated command-line configuration.
type Config struct {
	RecipePaths []string
	Vars        map[string]string
	Output      string
	Graph       bool
	LogLevel    string
	LogFormat   string
}

// NewConfig validates cfg and returns a copy with defaults applied.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Output == "" {
		cfg.Output = "yaml"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.Vars == nil {
		cfg.Vars = map[string]string{}
	}

	switch cfg.Output {
	case "yaml", "json":
	default:
		return nil, fmt.Errorf("invalid output %q: must be 'yaml' or 'json'", cfg.Output)
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, errors.New("invalid log-format: must be 'text' or 'json'")
	}
	return &cfg, nil
}

// NewLogger builds the logger described by the config. It does not touch the
// global logger.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, _ := parseLevel(c.LogLevel)
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", s)
}
