// Package logging builds the zerolog logger shared by the CLI, the RPC host
// and the bridge, and carries it in a context.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxLogSizeMB  = 10
	maxLogBackups = 3
	maxLogAgeDays = 30
)

// Config defines the configuration for logger creation.
type Config struct {
	// Writer overrides every other sink (tests use a buffer here).
	Writer io.Writer
	// File enables a rotating log file instead of stderr.
	File string
	// Console selects the human-readable zerolog console format.
	Console bool
	Color   bool
	Level   zerolog.Level
}

// Build creates a logger from config.
func Build(config Config) zerolog.Logger {
	var writer io.Writer
	switch {
	case config.Writer != nil:
		writer = config.Writer
	case config.File != "":
		writer = &lumberjack.Logger{
			Filename:   config.File,
			MaxSize:    maxLogSizeMB,
			MaxBackups: maxLogBackups,
			MaxAge:     maxLogAgeDays,
		}
	default:
		writer = os.Stderr
	}
	if config.Console && config.File == "" {
		writer = zerolog.ConsoleWriter{Out: writer, NoColor: !config.Color, TimeFormat: "15:04:05"}
	}

	return zerolog.New(writer).With().
		Timestamp().
		Logger().
		Level(config.Level)
}

// New creates a new context with a logger attached.
func New(ctx context.Context, config Config) context.Context {
	logger := Build(config)
	return logger.WithContext(ctx)
}

// Get retrieves the logger from the provided context.
// Returns a disabled logger if none is attached.
func Get(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// ParseLevel maps a config string to a zerolog level. Empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	if s == "off" || s == "none" {
		return zerolog.Disabled, nil
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return lvl, nil
}
