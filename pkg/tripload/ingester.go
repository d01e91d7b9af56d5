package tripload

import "context"

// Ingester runs a complete source-to-table load.
type Ingester interface {
	// Ingest connects, opens the source and copies every batch into
	// config.Table. Batches written before a failure stay in the table.
	Ingest(ctx context.Context, config IngestConfig) (Result, error)
}
