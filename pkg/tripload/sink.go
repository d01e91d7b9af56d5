package tripload

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// TableSink is the destination of a load.
type TableSink interface {
	// CreateTable creates table with the given columns and no rows,
	// replacing any existing table of the same name.
	CreateTable(ctx context.Context, table string, schema Schema) error

	// Append writes the batch's rows to table, preserving their order.
	// Returns the number of rows written.
	Append(ctx context.Context, table string, batch *Batch) (int64, error)
}

// DBConnection abstracts the database operations a PostgreSQL sink needs.
// *pgxpool.Pool and *pgx.Conn both satisfy it.
//
// Thread-Safety: Implementations should follow their underlying connection's
// thread-safety guarantees.
type DBConnection interface {
	// Exec executes a query without returning any rows.
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)

	// QueryRow executes a query that is expected to return at most one row.
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row

	// CopyFrom bulk-loads rows with the COPY protocol.
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}
