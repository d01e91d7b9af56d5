// Package progress implements tripload.ProgressReporter.
//
// Reporters observe a load; none of them can fail it. NewReporter picks a
// terminal progress bar when stderr is interactive and falls back to one
// log line per batch otherwise.
package progress
