package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gomcpgo/logo_image_ai/pkg/config"
)

// New creates a zerolog.Logger configured for the logo image service.
// Production writes JSON lines; every other environment gets console output.
func New(cfg *config.Config) zerolog.Logger {
	var out io.Writer = zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	if cfg.IsProduction() {
		out = os.Stdout
	}
	return NewWithWriter(out, cfg.ServiceName, cfg.Environment, cfg.LogLevel)
}

// NewWithWriter builds the service logger on an arbitrary writer
func NewWithWriter(w io.Writer, service, environment, level string) zerolog.Logger {
	return zerolog.New(w).
		With().
		Timestamp().
		Str("service", service).
		Str("environment", environment).
		Logger().
		Level(parseLevel(level))
}

// Component returns a child logger tagged with the given component name
func Component(log zerolog.Logger, name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

func parseLevel(raw string) zerolog.Level {
	if raw == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(raw))
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
