// Package logging provides concrete implementations of the tripload.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes prefixed plain-text lines to stderr
//   - StructuredLogger: Writes zerolog events (JSON or console format)
//   - NullLogger: Discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
