package tripload

import "context"

// BatchSource produces a finite, ordered sequence of row batches.
//
// The sequence is not restartable: once Next has returned io.EOF it keeps
// returning io.EOF, and re-reading requires opening the source again.
//
// Thread-Safety: NOT safe for concurrent use.
type BatchSource interface {
	// Next returns the next batch, or io.EOF when the source is exhausted.
	// A source with a header and no data rows yields one empty batch
	// carrying the schema before io.EOF.
	Next(ctx context.Context) (*Batch, error)

	// Progress reports the bytes consumed so far and the total size
	// (-1 when unknown).
	Progress() (read, total int64)

	// Close releases the underlying stream. Safe to call more than once.
	Close() error
}
