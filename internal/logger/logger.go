package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New returns the process logger at debug level, writing JSON to stdout.
func New() zerolog.Logger {
	return NewWithWriter(os.Stdout, zerolog.DebugLevel)
}

// NewWithWriter builds a logger with timestamp and caller at the given level.
func NewWithWriter(w io.Writer, level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	return zerolog.New(w).
		With().
		Timestamp().
		Caller().
		Logger().
		Level(level)
}
