// Package logging builds the zerolog logger used by the CLI and adapts it to
// the genius.Logger interface.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates a logger with the specified configuration. Console output on
// stderr is used unless logFile is set.
func New(logFile, logLevel string) zerolog.Logger {
	// Set up output
	var output *os.File
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			output = os.Stderr
		} else {
			output = f
		}
	} else {
		output = os.Stderr
	}

	// Use pretty console output if logging to stderr
	if output == os.Stderr {
		return newLogger(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}, logLevel)
	}
	return newLogger(output, logLevel)
}

func newLogger(w io.Writer, logLevel string) zerolog.Logger {
	return zerolog.New(w).
		Level(ParseLevel(logLevel)).
		With().
		Timestamp().
		Logger()
}

// ParseLevel maps a --log-level value to a zerolog level. Unknown values
// fall back to warn, which keeps CLI output quiet.
func ParseLevel(logLevel string) zerolog.Level {
	switch logLevel {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}

// Adapter implements genius.Logger on top of a zerolog logger.
type Adapter struct {
	logger zerolog.Logger
}

// NewAdapter returns an Adapter that tags every event with component=genius.
func NewAdapter(logger zerolog.Logger) *Adapter {
	return &Adapter{logger: logger.With().Str("component", "genius").Logger()}
}

// Debugf logs at debug level.
func (a *Adapter) Debugf(format string, args ...interface{}) {
	a.logger.Debug().Msgf(format, args...)
}

// Errorf logs at error level.
func (a *Adapter) Errorf(format string, args ...interface{}) {
	a.logger.Error().Msgf(format, args...)
}
