package source

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/klauspost/compress/gzip"

	"github.com/vvka-141/tripload/pkg/tripload"
)

// Options configures a CSVSource.
type Options struct {
	// ChunkSize bounds the rows per batch. Defaults to tripload.DefaultChunkSize.
	ChunkSize int

	// Types declares column types. A zero value selects DefaultTypes().
	Types TypeMap

	// HTTPClient fetches http(s) locations. Defaults to a client with
	// tripload.DefaultHTTPTimeout as the response header timeout.
	HTTPClient *http.Client

	Logger tripload.Logger
}

func (o *Options) applyDefaults() {
	if o.ChunkSize <= 0 {
		o.ChunkSize = tripload.DefaultChunkSize
	}
	if o.Types.Columns == nil {
		o.Types = DefaultTypes()
	}
	if o.Types.TimestampLayout == "" {
		o.Types.TimestampLayout = tripload.DefaultTimestampLayout
	}
	if o.HTTPClient == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.ResponseHeaderTimeout = tripload.DefaultHTTPTimeout
		o.HTTPClient = &http.Client{Transport: transport}
	}
}

// CSVSource is a tripload.BatchSource over a CSV stream.
//
// Thread-Safety: NOT safe for concurrent use.
type CSVSource struct {
	location string
	opts     Options
	logger   tripload.Logger

	raw     io.ReadCloser
	counter *countingReader
	gz      *gzip.Reader
	csv     *csv.Reader
	size    int64

	schema  tripload.Schema
	offset  int64
	line    int
	emitted bool
	done    bool
	closed  bool
}

// Open opens location for reading. The header is read by the first Next call.
func Open(ctx context.Context, location string, opts Options) (*CSVSource, error) {
	opts.applyDefaults()

	raw, size, err := openStream(ctx, location, opts.HTTPClient)
	if err != nil {
		return nil, err
	}

	s := &CSVSource{
		location: location,
		opts:     opts,
		logger:   opts.Logger,
		raw:      raw,
		counter:  &countingReader{r: raw},
		size:     size,
	}

	br := bufio.NewReaderSize(s.counter, 64*1024)
	var decoded io.Reader = br

	// Detect gzip (magic bytes: 0x1f 0x8b)
	magic, _ := br.Peek(2)
	if len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			raw.Close()
			return nil, fmt.Errorf("failed to decompress %s: %v: %w", location, err, tripload.ErrSourceUnavailable)
		}
		s.gz = gz
		decoded = gz
	}

	s.csv = csv.NewReader(decoded)
	s.csv.FieldsPerRecord = -1
	s.csv.ReuseRecord = true

	if s.logger != nil {
		s.logger.Verbose("Opened source %s (%s, gzip=%t)", location, formatSize(size), s.gz != nil)
	}

	return s, nil
}

// Schema returns the typed header, or nil before the first Next call.
func (s *CSVSource) Schema() tripload.Schema {
	return s.schema
}

// Next returns the next batch of at most ChunkSize rows, or io.EOF.
func (s *CSVSource) Next(ctx context.Context) (*tripload.Batch, error) {
	if s.done || s.closed {
		return nil, io.EOF
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.schema == nil {
		if err := s.readHeader(); err != nil {
			return nil, err
		}
	}

	batch := &tripload.Batch{
		Schema: s.schema,
		Rows:   make([][]any, 0, s.opts.ChunkSize),
		Offset: s.offset,
	}

	for len(batch.Rows) < s.opts.ChunkSize {
		record, err := s.csv.Read()
		if errors.Is(err, io.EOF) {
			s.done = true
			break
		}
		s.line++
		if err != nil {
			return nil, s.readError(err)
		}

		row, err := s.convert(record)
		if err != nil {
			return nil, err
		}
		batch.Rows = append(batch.Rows, row)
	}

	if len(batch.Rows) == 0 && s.emitted {
		return nil, io.EOF
	}

	s.emitted = true
	s.offset += int64(len(batch.Rows))
	return batch, nil
}

func (s *CSVSource) readHeader() error {
	header, err := s.csv.Read()
	if errors.Is(err, io.EOF) {
		s.done = true
		return io.EOF
	}
	s.line++
	if err != nil {
		return s.readError(err)
	}

	names := make([]string, len(header))
	copy(names, header)
	if len(names) > 0 {
		names[0] = trimBOM(names[0])
	}

	s.schema = s.opts.Types.Schema(names)
	if s.logger != nil {
		s.logger.Verbose("Source header: %d columns", len(s.schema))
	}
	return nil
}

func (s *CSVSource) convert(record []string) ([]any, error) {
	if len(record) != len(s.schema) {
		return nil, fmt.Errorf("line %d: expected %d fields, got %d: %w",
			s.line, len(s.schema), len(record), tripload.ErrSchemaMismatch)
	}

	row := make([]any, len(record))
	for i, field := range record {
		value, err := parseField(field, s.schema[i].Type, s.opts.Types.TimestampLayout)
		if err != nil {
			return nil, fmt.Errorf("line %d, column %s: %v: %w", s.line, s.schema[i].Name, err, tripload.ErrParse)
		}
		row[i] = value
	}
	return row, nil
}

func (s *CSVSource) readError(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return fmt.Errorf("malformed CSV in %s: %v: %w", s.location, parseErr, tripload.ErrParse)
	}
	return fmt.Errorf("read %s: %v: %w", s.location, err, tripload.ErrSourceUnavailable)
}

// Progress reports the compressed bytes consumed and the total size (-1 when unknown).
func (s *CSVSource) Progress() (read, total int64) {
	return s.counter.n, s.size
}

// Close releases the underlying stream. Safe to call more than once.
func (s *CSVSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if s.gz != nil {
		errs = append(errs, s.gz.Close())
	}
	errs = append(errs, s.raw.Close())
	return errors.Join(errs...)
}

func trimBOM(s string) string {
	if len(s) >= 3 && s[0] == 0xef && s[1] == 0xbb && s[2] == 0xbf {
		return s[3:]
	}
	return s
}

func formatSize(size int64) string {
	if size < 0 {
		return "unknown size"
	}
	const mb = 1 << 20
	if size >= mb {
		return fmt.Sprintf("%.1f MB", float64(size)/mb)
	}
	return fmt.Sprintf("%d bytes", size)
}

var _ tripload.BatchSource = (*CSVSource)(nil)
