package main

import (
	"io"
	"os"
	"time"

	"github.com/goodtune/gatesheet/internal/config"
	"github.com/goodtune/gatesheet/internal/systemd"
	"github.com/rs/zerolog"
)

// setupLogger configures the logger based on configuration. Logs go to
// stderr so they never mix with a report rendered to stdout.
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	return newLogger(cfg, os.Stderr)
}

func newLogger(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch cfg.Level {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	// Set output format
	switch cfg.Format {
	case "journal":
		// The journal timestamps entries itself
		if w, err := systemd.JournalWriter(); err == nil {
			return zerolog.New(w).Level(level)
		}
		// Fall back to text when not running under systemd
		return zerolog.New(zerolog.ConsoleWriter{Out: out}).Level(level).With().Timestamp().Logger()
	case "text":
		// A timer unit already captures stderr into the journal
		if systemd.StderrIsJournal() {
			return zerolog.New(zerolog.ConsoleWriter{Out: out, NoColor: true, PartsExclude: []string{zerolog.TimestampFieldName}}).Level(level)
		}
		return zerolog.New(zerolog.ConsoleWriter{Out: out}).Level(level).With().Timestamp().Logger()
	}

	// Default to JSON
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// parseDuration parses a duration string with a fallback
func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
