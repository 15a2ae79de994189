package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the process-wide zerolog logger. Unknown levels fall
// back to info rather than failing startup.
func NewLogger(level string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "2006-01-02 15:04:05 MST",
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.DurationFieldInteger = true

	return zerolog.New(output).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Logger()
}

func parseLevel(level string) zerolog.Level {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || parsed == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return parsed
}
