package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/mediatekformation/internal/constants"
)

// InitLogger builds the application logger for the given environment, writing
// to stdout, and installs it as the slog default
func InitLogger(environment string) *slog.Logger {
	logger := New(environment, os.Stdout)
	slog.SetDefault(logger)
	return logger
}

// New returns a logger writing to w. Development gets a verbose text handler
// with source locations; every other environment gets JSON at info level.
func New(environment string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	var handler slog.Handler
	if environment == constants.EnvDevelopment {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler).With("service", "formations-admin")
}
