package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Log output formats accepted by New.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatConsole = "console"
)

// StructuredLogger adapts a zerolog.Logger to tripload.Logger.
// Verbose maps to debug level, which is enabled only in verbose mode.
type StructuredLogger struct {
	log zerolog.Logger
}

// NewStructuredLogger creates a StructuredLogger writing to out.
// format is FormatJSON or FormatConsole; component is attached to every event.
func NewStructuredLogger(out io.Writer, format, component string, verbose bool) *StructuredLogger {
	if strings.ToLower(format) == FormatConsole {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("component", component).
		Logger()

	return &StructuredLogger{log: logger}
}

// With returns a logger that adds key=value to every event.
func (l *StructuredLogger) With(key, value string) *StructuredLogger {
	return &StructuredLogger{log: l.log.With().Str(key, value).Logger()}
}

// Verbose logs at debug level.
func (l *StructuredLogger) Verbose(format string, args ...interface{}) {
	l.log.Debug().Msg(sprintf(format, args))
}

// Info logs at info level.
func (l *StructuredLogger) Info(format string, args ...interface{}) {
	l.log.Info().Msg(sprintf(format, args))
}

// Error logs at error level.
func (l *StructuredLogger) Error(format string, args ...interface{}) {
	l.log.Error().Msg(sprintf(format, args))
}

func sprintf(format string, args []interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
