package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vvka-141/tripload/internal/db"
	"github.com/vvka-141/tripload/internal/loader"
	"github.com/vvka-141/tripload/internal/logging"
	"github.com/vvka-141/tripload/internal/sink"
	"github.com/vvka-141/tripload/internal/source"
	"github.com/vvka-141/tripload/pkg/tripload"
)

// countingSink is a TableSink that can report a table's row count.
type countingSink interface {
	tripload.TableSink
	Count(ctx context.Context, table string) (int64, error)
}

type sinkOpenerFunc func(ctx context.Context, connConfig *tripload.ConnectionConfig) (countingSink, func(), error)

type sourceOpenerFunc func(ctx context.Context, location string, opts source.Options) (tripload.BatchSource, error)

// IngestService implements the Ingester interface.
// Thread-Safety: NOT safe for concurrent Ingest() calls on the same instance.
// Create separate instances for concurrent loads.
type IngestService struct {
	connectorFactory func(*tripload.ConnectionConfig, tripload.Logger) (tripload.Connector, error)
	reporter         tripload.ProgressReporter
	logger           tripload.Logger
	openSink         sinkOpenerFunc
	openSource       sourceOpenerFunc
	newRunID         func() string
}

// NewIngestService creates a new IngestService with all dependencies injected.
// Panics on nil dependencies: they are programmer errors. A nil reporter
// discards progress.
func NewIngestService(
	connectorFactory func(*tripload.ConnectionConfig, tripload.Logger) (tripload.Connector, error),
	reporter tripload.ProgressReporter,
	logger tripload.Logger,
) *IngestService {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	svc := &IngestService{
		connectorFactory: connectorFactory,
		reporter:         reporter,
		logger:           logger,
		openSource: func(ctx context.Context, location string, opts source.Options) (tripload.BatchSource, error) {
			return source.Open(ctx, location, opts)
		},
		newRunID: uuid.NewString,
	}
	svc.openSink = svc.defaultSinkOpener
	return svc
}

func (s *IngestService) defaultSinkOpener(ctx context.Context, connConfig *tripload.ConnectionConfig) (countingSink, func(), error) {
	connector, err := s.connectorFactory(connConfig, s.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create connector: %w", err)
	}

	pool, err := connector.Connect(ctx)
	if err != nil {
		return nil, nil, err
	}

	return sink.NewPostgresSink(pool, s.logger), pool.Close, nil
}

// Ingest copies the configured source into config.Table.
func (s *IngestService) Ingest(ctx context.Context, config tripload.IngestConfig) (tripload.Result, error) {
	if err := config.Validate(); err != nil {
		return tripload.Result{}, fmt.Errorf("invalid configuration: %w", err)
	}

	connConfig, err := db.ParseConnectionString(config.ConnectionString)
	if err != nil {
		return tripload.Result{}, fmt.Errorf("failed to parse connection string: %v: %w", err, tripload.ErrInvalidConfig)
	}

	runID := s.newRunID()
	if connConfig.AppName == "" || connConfig.AppName == tripload.AppName {
		connConfig.AppName = fmt.Sprintf("%s-%s", tripload.AppName, shortID(runID))
	}

	logger := s.logger
	if structured, ok := logger.(*logging.StructuredLogger); ok {
		logger = structured.With("run_id", runID)
	}

	location := config.Source.URL()
	logger.Verbose("Run %s: loading %s into %s", runID, location, config.Table)
	logger.Verbose("Target: %s", db.RedactedConnectionString(connConfig))

	if config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.Timeout)
		defer cancel()
	}

	dst, cleanup, err := s.openSink(ctx, connConfig)
	if err != nil {
		return tripload.Result{}, err
	}
	defer cleanup()

	types := source.DefaultTypes().With(config.Columns)
	if config.TimestampLayout != "" {
		types.TimestampLayout = config.TimestampLayout
	}

	src, err := s.openSource(ctx, location, source.Options{
		ChunkSize: config.ChunkSize,
		Types:     types,
		Logger:    logger,
	})
	if err != nil {
		return tripload.Result{}, err
	}
	defer src.Close()

	result, err := loader.New(config.IndexColumn, s.reporter, logger).Load(ctx, src, dst, config.Table)
	if err != nil {
		return result, fmt.Errorf("load into %s stopped after %d rows: %w", config.Table, result.Rows, err)
	}

	count, err := dst.Count(ctx, config.Table)
	if err != nil {
		return result, err
	}
	if count != result.Rows {
		return result, fmt.Errorf("table %s holds %d rows after loading %d: %w", config.Table, count, result.Rows, tripload.ErrSinkUnavailable)
	}

	logger.Verbose("Run %s finished: %d rows in %d chunks", runID, result.Rows, result.Batches)
	return result, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

var _ tripload.Ingester = (*IngestService)(nil)
