package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

type Config struct {
	Writer      io.Writer
	Level       string
	Environment string
}

// New builds the application logger. Production gets JSON lines, anything
// else gets the coloured text formatter. An unknown level falls back to info.
func New(cfg Config) *log.Logger {
	if cfg.Writer == nil {
		cfg.Writer = os.Stderr
	}

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}

	formatter := log.TextFormatter
	if cfg.Environment == "production" {
		formatter = log.JSONFormatter
	}

	return log.NewWithOptions(cfg.Writer, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           level,
		Formatter:       formatter,
		Prefix:          "dailypulse",
	})
}

// Discard returns a logger that writes nowhere, for tests and optional
// dependencies.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
