// Package params parses the repeatable key=value command-line flags.
//
// The --column flag overrides the type of a source column for one run:
//
//	tripload ingest --column store_and_fwd_flag=string --column passenger_count=float64
//
// Column types are resolved with tripload.ParseColumnType, so an unknown
// type name is a configuration error (exit code 10).
package params
