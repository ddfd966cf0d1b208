// Package logging configures the global zerolog logger. Logs are a side
// channel: the TUI owns the terminal, so they go to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jask/arxivcs/internal/config"
)

// Setup points the global logger at cfg.Path. The returned closer flushes
// and closes the file.
func Setup(cfg config.LogConfig) (io.Closer, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		log.Logger = zerolog.Nop()
		return io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	Use(f, level)
	return f, nil
}

// SetupConsole logs human-readable lines to w, for commands that do not
// take over the terminal.
func SetupConsole(w io.Writer, levelName string) error {
	level, err := ParseLevel(levelName)
	if err != nil {
		return err
	}
	Use(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}, level)
	return nil
}

// Use installs w as the global log destination.
func Use(w io.Writer, level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

func ParseLevel(name string) (zerolog.Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log level %q: %w", name, err)
	}
	return level, nil
}
