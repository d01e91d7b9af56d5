package sink

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/vvka-141/tripload/pkg/tripload"
)

// PostgresSink is a tripload.TableSink backed by a PostgreSQL connection.
type PostgresSink struct {
	conn   tripload.DBConnection
	logger tripload.Logger
}

// NewPostgresSink creates a sink on conn. *pgxpool.Pool satisfies tripload.DBConnection.
func NewPostgresSink(conn tripload.DBConnection, logger tripload.Logger) *PostgresSink {
	return &PostgresSink{conn: conn, logger: logger}
}

// ParseTable splits an optionally schema-qualified table name into an identifier.
func ParseTable(table string) (pgx.Identifier, error) {
	parts := strings.Split(strings.TrimSpace(table), ".")
	if len(parts) > 2 {
		return nil, fmt.Errorf("table name %q has too many parts: %w", table, tripload.ErrInvalidConfig)
	}
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("table name %q is invalid: %w", table, tripload.ErrInvalidConfig)
		}
	}
	return pgx.Identifier(parts), nil
}

// CreateTableSQL renders the statement that replaces table with an empty
// table of the given schema.
func CreateTableSQL(table pgx.Identifier, schema tripload.Schema) string {
	name := table.Sanitize()

	columns := make([]string, len(schema))
	for i, col := range schema {
		columns[i] = fmt.Sprintf("%s %s", pgx.Identifier{col.Name}.Sanitize(), col.Type.SQLType())
	}

	return fmt.Sprintf("DROP TABLE IF EXISTS %s;\nCREATE TABLE %s (\n    %s\n)",
		name, name, strings.Join(columns, ",\n    "))
}

// CreateTable creates table with the given columns and no rows, replacing
// any existing table of the same name.
func (s *PostgresSink) CreateTable(ctx context.Context, table string, schema tripload.Schema) error {
	ident, err := ParseTable(table)
	if err != nil {
		return err
	}
	if len(schema) == 0 {
		return fmt.Errorf("cannot create table %s without columns: %w", table, tripload.ErrSchemaMismatch)
	}

	s.logger.Verbose("Creating table %s (%d columns)", ident.Sanitize(), len(schema))

	// Simple protocol: the statement holds two commands and no parameters.
	if _, err := s.conn.Exec(ctx, CreateTableSQL(ident, schema), pgx.QueryExecModeSimpleProtocol); err != nil {
		return wrapSinkError(ctx, fmt.Errorf("create table %s: %w", table, err))
	}

	s.logger.Info("Table %s created", table)
	return nil
}

// Append copies the batch's rows into table, preserving their order.
func (s *PostgresSink) Append(ctx context.Context, table string, batch *tripload.Batch) (int64, error) {
	if batch.Len() == 0 {
		return 0, nil
	}

	ident, err := ParseTable(table)
	if err != nil {
		return 0, err
	}

	n, err := s.conn.CopyFrom(ctx, ident, batch.Schema.Names(), pgx.CopyFromRows(batch.Rows))
	if err != nil {
		return n, wrapSinkError(ctx, fmt.Errorf("copy %d rows into %s: %w", batch.Len(), table, err))
	}
	if n != int64(batch.Len()) {
		return n, fmt.Errorf("copy into %s wrote %d of %d rows: %w", table, n, batch.Len(), tripload.ErrSinkUnavailable)
	}

	return n, nil
}

// Count returns the number of rows in table.
func (s *PostgresSink) Count(ctx context.Context, table string) (int64, error) {
	ident, err := ParseTable(table)
	if err != nil {
		return 0, err
	}

	var n int64
	if err := s.conn.QueryRow(ctx, "SELECT count(*) FROM "+ident.Sanitize()).Scan(&n); err != nil {
		return 0, wrapSinkError(ctx, fmt.Errorf("count rows in %s: %w", table, err))
	}
	return n, nil
}

// wrapSinkError classifies err as ErrSinkUnavailable unless the context ended.
func wrapSinkError(ctx context.Context, err error) error {
	ctxErr := ctx.Err()
	switch {
	case ctxErr == nil:
		return fmt.Errorf("%w: %w", err, tripload.ErrSinkUnavailable)
	case errors.Is(err, ctxErr):
		return err
	default:
		return fmt.Errorf("%w: %w", err, ctxErr)
	}
}

var _ tripload.TableSink = (*PostgresSink)(nil)
