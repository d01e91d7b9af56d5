package logging

import (
	"fmt"
	"os"
	"strings"

	"github.com/vvka-141/tripload/pkg/tripload"
)

// New returns the logger for a --log-format value.
// "text" (or empty) selects ConsoleLogger; "json" and "console" select StructuredLogger.
func New(format, component string, verbose bool) (tripload.Logger, error) {
	switch strings.ToLower(format) {
	case "", FormatText:
		return NewConsoleLogger(verbose), nil
	case FormatJSON, FormatConsole:
		return NewStructuredLogger(os.Stderr, format, component, verbose), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (use text, json or console): %w", format, tripload.ErrInvalidConfig)
	}
}

var (
	_ tripload.Logger = (*ConsoleLogger)(nil)
	_ tripload.Logger = (*StructuredLogger)(nil)
	_ tripload.Logger = (*NullLogger)(nil)
)
