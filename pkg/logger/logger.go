package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var zlog zerolog.Logger

// Init initializes the structured zerolog logger
func Init(env string) {
	var w io.Writer

	if env == "development" || env == "dev" || env == "local" {
		// Pretty console output for development
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	} else {
		// JSON output for production (machine-readable)
		w = os.Stdout
	}

	zlog = zerolog.New(w).With().
		Timestamp().
		Str("service", "examwatch-backend").
		Logger()

	zerolog.TimeFieldFormat = time.RFC3339
}

// GetLogger returns the global zerolog logger
func GetLogger() *zerolog.Logger {
	return &zlog
}

// WithRequestID returns a logger with request_id field
func WithRequestID(requestID string) zerolog.Logger {
	return zlog.With().Str("request_id", requestID).Logger()
}
