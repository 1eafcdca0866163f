// Package logging builds the structured logger used by the velgen command.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/askiada/go-velgen/internal/config"
)

// New returns a logger writing to w with the configured level and format.
// Unknown levels fall back to info and unknown formats to text.
func New(w io.Writer, cfg config.LoggingConfig) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "velgen",
		Formatter:       formatter(cfg.Format),
	})

	level, err := log.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		logger.Warn("Invalid log level, using info", "level", cfg.Level)
		level = log.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}

func formatter(format string) log.Formatter {
	switch strings.ToLower(format) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
