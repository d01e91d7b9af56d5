package tripload

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := ingester.Ingest(ctx, config)
//	if errors.Is(err, tripload.ErrSchemaMismatch) {
//	    // A later batch did not match the first one
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrConnectionFailed indicates database connection failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrSourceUnavailable indicates the source location could not be opened or read.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrSchemaMismatch indicates a batch's columns differ from the first batch's.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrParse indicates a source field could not be converted to its declared type.
	ErrParse = errors.New("parse error")

	// ErrSinkUnavailable indicates the destination failed while the run was in progress.
	ErrSinkUnavailable = errors.New("sink unavailable")
)

// usageErrorMarkers are fragments of the messages cobra and pflag produce for
// command-line misuse.
var usageErrorMarkers = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"required flag",
	"invalid argument",
	"flag needs an argument",
	"missing required argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrSchemaMismatch), errors.Is(err, ErrParse):
		return ExitSchemaMismatch
	case errors.Is(err, ErrSinkUnavailable):
		return ExitSinkUnavailable
	case errors.Is(err, ErrSourceUnavailable):
		return ExitSourceUnavailable
	}

	errStr := err.Error()
	for _, marker := range usageErrorMarkers {
		if strings.Contains(errStr, marker) {
			return ExitUsageError
		}
	}

	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}
