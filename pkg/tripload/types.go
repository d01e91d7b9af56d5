package tripload

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ColumnType is the declared type of a source column. It is applied uniformly
// across all batches of a run.
type ColumnType int

const (
	TypeString    ColumnType = iota // Text
	TypeInt64                       // Nullable integer
	TypeFloat64                     // Double precision
	TypeTimestamp                   // Timestamp without time zone
)

// String returns a human-readable string representation of the ColumnType.
func (c ColumnType) String() string {
	switch c {
	case TypeString:
		return "string"
	case TypeInt64:
		return "int64"
	case TypeFloat64:
		return "float64"
	case TypeTimestamp:
		return "timestamp"
	default:
		return fmt.Sprintf("Unknown(%d)", c)
	}
}

// IsValid returns true if the ColumnType is a valid, defined value.
func (c ColumnType) IsValid() bool {
	return c >= TypeString && c <= TypeTimestamp
}

// SQLType returns the PostgreSQL column type used for schema-only creation.
func (c ColumnType) SQLType() string {
	switch c {
	case TypeInt64:
		return "BIGINT"
	case TypeFloat64:
		return "DOUBLE PRECISION"
	case TypeTimestamp:
		return "TIMESTAMP WITHOUT TIME ZONE"
	default:
		return "TEXT"
	}
}

// ParseColumnType converts a user-supplied type name into a ColumnType.
// Accepted names are case-insensitive.
func ParseColumnType(name string) (ColumnType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "string", "text", "str":
		return TypeString, nil
	case "int64", "int", "integer", "bigint":
		return TypeInt64, nil
	case "float64", "float", "double":
		return TypeFloat64, nil
	case "timestamp", "datetime":
		return TypeTimestamp, nil
	default:
		return TypeString, fmt.Errorf("unknown column type %q (use int64, float64, string or timestamp): %w", name, ErrInvalidConfig)
	}
}

// Column is a named, typed column.
type Column struct {
	Name string
	Type ColumnType
}

// Schema is the ordered column set of a batch or a destination table.
type Schema []Column

// Names returns the column names in order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}

// Equal reports whether both schemas have the same columns, positionally.
func (s Schema) Equal(other Schema) bool {
	return s.Mismatch(other) == nil
}

// Mismatch describes the first position where other differs from s.
// Returns nil when the schemas are equal. The error wraps ErrSchemaMismatch.
func (s Schema) Mismatch(other Schema) error {
	n := len(s)
	if len(other) < n {
		n = len(other)
	}
	for i := 0; i < n; i++ {
		if s[i] != other[i] {
			return fmt.Errorf("column %d: expected %s %s, got %s %s: %w",
				i, s[i].Name, s[i].Type, other[i].Name, other[i].Type, ErrSchemaMismatch)
		}
	}
	if len(s) != len(other) {
		return fmt.Errorf("expected %d columns, got %d: %w", len(s), len(other), ErrSchemaMismatch)
	}
	return nil
}

// Batch is a bounded, ordered group of rows processed as one unit of read
// and one unit of write.
//
// Each row is positionally aligned with Schema. Values are pgtype values
// (pgtype.Int8, pgtype.Float8, pgtype.Text, pgtype.Timestamp) so a missing
// field is carried as Valid=false without changing the column type.
type Batch struct {
	Schema Schema
	Rows   [][]any

	// Offset is the zero-based source ordinal of the first row.
	Offset int64
}

// Len returns the number of rows in the batch.
func (b *Batch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Rows)
}

// ConnectionConfig represents parsed connection parameters.
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string

	// Additional connection parameters
	AppName          string
	ConnectTimeout   time.Duration
	AdditionalParams map[string]string
}

// SourceConfig selects the CSV file to load.
type SourceConfig struct {
	// Location overrides the URL template when set. It may be an http(s)
	// URL, a file:// URL or a local path.
	Location string

	URLPrefix string
	Color     string
	Year      int
	Month     int
}

// URL returns Location when set, otherwise the templated release URL:
// <prefix>/<color>/<color>_tripdata_<YYYY>-<MM>.csv.gz
func (s SourceConfig) URL() string {
	if s.Location != "" {
		return s.Location
	}
	return fmt.Sprintf("%s/%s/%s_tripdata_%04d-%02d.csv.gz",
		strings.TrimRight(s.URLPrefix, "/"), s.Color, s.Color, s.Year, s.Month)
}

// IngestConfig contains all parameters needed for one ChunkedLoader run.
type IngestConfig struct {
	Source SourceConfig

	// ConnectionString is the PostgreSQL connection string (URI format)
	ConnectionString string

	// Table is the destination table, optionally schema-qualified ("staging.trips").
	Table string

	// ChunkSize bounds the number of rows per batch.
	ChunkSize int

	// IndexColumn names the leading row-ordinal column. Empty disables it.
	IndexColumn string

	// Columns overrides or extends the default column type map.
	Columns map[string]ColumnType

	// TimestampLayout parses timestamp columns (Go reference layout).
	TimestampLayout string

	// Timeout bounds the whole run. Zero means no timeout.
	Timeout time.Duration

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks if the IngestConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *IngestConfig) Validate() error {
	var errs []error

	if c.Source.Location == "" {
		if c.Source.Year < MinYear || c.Source.Year > MaxYear {
			errs = append(errs, fmt.Errorf("year %d out of range %d..%d: %w", c.Source.Year, MinYear, MaxYear, ErrInvalidConfig))
		}
		if c.Source.Month < 1 || c.Source.Month > 12 {
			errs = append(errs, fmt.Errorf("month %d out of range 1..12: %w", c.Source.Month, ErrInvalidConfig))
		}
		if c.Source.Color == "" {
			errs = append(errs, fmt.Errorf("color is required: %w", ErrInvalidConfig))
		}
		if c.Source.URLPrefix == "" {
			errs = append(errs, fmt.Errorf("URL prefix is required: %w", ErrInvalidConfig))
		}
	}

	if c.ConnectionString == "" {
		errs = append(errs, fmt.Errorf("ConnectionString is required: %w", ErrInvalidConfig))
	}

	if strings.TrimSpace(c.Table) == "" {
		errs = append(errs, fmt.Errorf("Table is required: %w", ErrInvalidConfig))
	}

	if c.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("chunk size must be positive, got %d: %w", c.ChunkSize, ErrInvalidConfig))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	for name, typ := range c.Columns {
		if !typ.IsValid() {
			errs = append(errs, fmt.Errorf("column %q has invalid type %v: %w", name, typ, ErrInvalidConfig))
		}
	}

	return errors.Join(errs...)
}

// Progress is published after every appended batch.
type Progress struct {
	Table      string
	BatchIndex int   // zero-based
	BatchRows  int   // rows in this batch
	TotalRows  int64 // rows written so far, this batch included

	// SourceBytes and SourceSize describe how much of the (compressed) source
	// has been consumed. SourceSize is -1 when unknown.
	SourceBytes int64
	SourceSize  int64
}

// Fraction returns the consumed share of the source in [0, 1], or -1 when
// the source size is unknown.
func (p Progress) Fraction() float64 {
	if p.SourceSize <= 0 {
		return -1
	}
	f := float64(p.SourceBytes) / float64(p.SourceSize)
	if f > 1 {
		return 1
	}
	return f
}

// Result summarizes a completed load.
type Result struct {
	Table    string
	Schema   Schema
	Batches  int
	Rows     int64
	Duration time.Duration
}
