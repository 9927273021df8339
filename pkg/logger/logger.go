package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Service names this process in every log line
const Service = "derive-duel-backend"

var Log = zerolog.New(io.Discard)

// Init initializes the global logger. Anything other than development
// logs JSON.
func Init(env string) {
	zerolog.TimeFieldFormat = time.RFC3339

	if env == "development" {
		Log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}).
			With().
			Timestamp().
			Caller().
			Str("service", Service).
			Logger()
	} else {
		Log = zerolog.New(os.Stdout).
			With().
			Timestamp().
			Str("service", Service).
			Str("env", env).
			Logger()
	}
}

// Helper functions for common log levels
func Info() *zerolog.Event {
	return Log.Info()
}

func Error() *zerolog.Event {
	return Log.Error()
}

func Warn() *zerolog.Event {
	return Log.Warn()
}

func Debug() *zerolog.Event {
	return Log.Debug()
}

func Fatal() *zerolog.Event {
	return Log.Fatal()
}

// Duel returns a child logger scoped to one duel
func Duel(id string) zerolog.Logger {
	return Log.With().Str("duel", id).Logger()
}
