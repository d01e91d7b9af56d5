package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/vvka-141/tripload/internal/logging"
	"github.com/vvka-141/tripload/internal/progress"
	"github.com/vvka-141/tripload/pkg/tripload"
)

// Loader runs the chunked copy procedure.
type Loader struct {
	indexColumn string
	reporter    tripload.ProgressReporter
	logger      tripload.Logger
	now         func() time.Time
}

// New creates a Loader. indexColumn names the leading row ordinal column
// and may be empty to disable it. A nil reporter or logger discards output.
func New(indexColumn string, reporter tripload.ProgressReporter, logger tripload.Logger) *Loader {
	if reporter == nil {
		reporter = progress.Nop{}
	}
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Loader{
		indexColumn: indexColumn,
		reporter:    reporter,
		logger:      logger,
		now:         time.Now,
	}
}

// Load copies every batch of src into table on dst.
func (l *Loader) Load(ctx context.Context, src tripload.BatchSource, dst tripload.TableSink, table string) (tripload.Result, error) {
	start := l.now()
	result := tripload.Result{Table: table}

	first, err := src.Next(ctx)
	if errors.Is(err, io.EOF) {
		return result, fmt.Errorf("source is empty (no header row): %w", tripload.ErrSourceUnavailable)
	}
	if err != nil {
		return result, classifySourceError(err)
	}

	schema := first.Schema
	for _, col := range schema {
		if l.indexColumn != "" && col.Name == l.indexColumn {
			return result, fmt.Errorf("source column %q collides with the index column (use --index-column to rename it): %w",
				col.Name, tripload.ErrInvalidConfig)
		}
	}

	result.Schema = l.tableSchema(schema)
	if err := dst.CreateTable(ctx, table, result.Schema); err != nil {
		return result, classifySinkError(err)
	}

	for batch := first; ; {
		if err := schema.Mismatch(batch.Schema); err != nil {
			return result, fmt.Errorf("chunk %d: %w", result.Batches+1, err)
		}

		if batch.Len() > 0 {
			n, err := dst.Append(ctx, table, l.withIndex(batch))
			if err != nil {
				return result, fmt.Errorf("chunk %d: %w", result.Batches+1, classifySinkError(err))
			}

			result.Rows += n
			l.logger.Verbose("Inserted chunk %d (%d rows)", result.Batches+1, n)

			read, total := src.Progress()
			l.reporter.Report(tripload.Progress{
				Table:       table,
				BatchIndex:  result.Batches,
				BatchRows:   batch.Len(),
				TotalRows:   result.Rows,
				SourceBytes: read,
				SourceSize:  total,
			})
		}
		result.Batches++

		batch, err = src.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return result, fmt.Errorf("chunk %d: %w", result.Batches+1, classifySourceError(err))
		}
	}

	result.Duration = l.now().Sub(start)
	l.reporter.Done(result)
	return result, nil
}

// tableSchema is the destination schema for a source schema.
func (l *Loader) tableSchema(schema tripload.Schema) tripload.Schema {
	if l.indexColumn == "" {
		return schema
	}
	out := make(tripload.Schema, 0, len(schema)+1)
	out = append(out, tripload.Column{Name: l.indexColumn, Type: tripload.TypeInt64})
	return append(out, schema...)
}

// withIndex prefixes each row with its source ordinal.
func (l *Loader) withIndex(batch *tripload.Batch) *tripload.Batch {
	if l.indexColumn == "" {
		return batch
	}

	rows := make([][]any, len(batch.Rows))
	for i, row := range batch.Rows {
		indexed := make([]any, 0, len(row)+1)
		indexed = append(indexed, pgtype.Int8{Int64: batch.Offset + int64(i), Valid: true})
		rows[i] = append(indexed, row...)
	}

	return &tripload.Batch{
		Schema: l.tableSchema(batch.Schema),
		Rows:   rows,
		Offset: batch.Offset,
	}
}

// classifySinkError marks unclassified destination failures as ErrSinkUnavailable.
func classifySinkError(err error) error {
	switch {
	case errors.Is(err, tripload.ErrSinkUnavailable),
		errors.Is(err, tripload.ErrInvalidConfig),
		errors.Is(err, tripload.ErrSchemaMismatch),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %w", err, tripload.ErrSinkUnavailable)
	}
}

// classifySourceError marks unclassified source failures as ErrSourceUnavailable.
func classifySourceError(err error) error {
	switch {
	case errors.Is(err, tripload.ErrSchemaMismatch),
		errors.Is(err, tripload.ErrParse),
		errors.Is(err, tripload.ErrSourceUnavailable),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %w", err, tripload.ErrSourceUnavailable)
	}
}
