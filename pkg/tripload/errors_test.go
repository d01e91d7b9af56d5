package tripload_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vvka-141/tripload/pkg/tripload"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, tripload.ExitSuccess},
		{"unknown flag", errors.New("unknown flag --foo"), tripload.ExitUsageError},
		{"unknown shorthand flag", errors.New("unknown shorthand flag: 'x'"), tripload.ExitUsageError},
		{"accepts args", errors.New("accepts 1 arg(s), received 0"), tripload.ExitUsageError},
		{"invalid argument", errors.New("invalid argument \"abc\" for \"--port\""), tripload.ExitUsageError},
		{"general error", errors.New("something went wrong"), tripload.ExitGeneralError},
		{"invalid config", fmt.Errorf("chunk size: %w", tripload.ErrInvalidConfig), tripload.ExitConfigError},
		{"connection failed", tripload.ErrConnectionFailed, tripload.ExitConnectionError},
		{"raw connection refused", errors.New("dial tcp: connection refused"), tripload.ExitConnectionError},
		{"source unavailable", fmt.Errorf("GET 404: %w", tripload.ErrSourceUnavailable), tripload.ExitSourceUnavailable},
		{"schema mismatch", fmt.Errorf("batch 2: %w", tripload.ErrSchemaMismatch), tripload.ExitSchemaMismatch},
		{"parse error", fmt.Errorf("line 4: %w", tripload.ErrParse), tripload.ExitSchemaMismatch},
		{"sink unavailable", fmt.Errorf("copy: %w", tripload.ErrSinkUnavailable), tripload.ExitSinkUnavailable},
		{
			"mismatch wins over source wrap",
			fmt.Errorf("%w: %w", tripload.ErrSourceUnavailable, tripload.ErrSchemaMismatch),
			tripload.ExitSchemaMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tripload.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
