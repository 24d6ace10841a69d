package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds a zerolog.Logger writing to stdout. Format "console"
// yields human-readable output for development; anything else is JSON.
func New(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	var log zerolog.Logger
	if format == "console" {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	} else {
		log = zerolog.New(os.Stdout)
	}
	return log.Level(lvl).With().Timestamp().Logger()
}
