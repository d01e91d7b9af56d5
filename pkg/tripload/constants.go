package tripload

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess           = 0  // Run completed successfully
	ExitGeneralError      = 1  // Unknown or unclassified error
	ExitUsageError        = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic             = 3  // Internal panic (unexpected crash)
	ExitConfigError       = 10 // Invalid configuration or parameters
	ExitConnectionError   = 11 // Failed to connect to database
	ExitSourceUnavailable = 12 // Source could not be opened or read
	ExitSchemaMismatch    = 13 // Batch did not match the destination schema, or a field failed to parse
	ExitSinkUnavailable   = 14 // Destination failed mid-run
)

const (
	// DefaultChunkSize is the number of rows read and written per batch.
	DefaultChunkSize = 100000

	// DefaultTable is the destination table used when none is configured.
	DefaultTable = "yellow_taxi_data"

	// DefaultColor selects the trip record family in the source URL.
	DefaultColor = "yellow"

	// DefaultYear and DefaultMonth select the monthly source file.
	DefaultYear  = 2021
	DefaultMonth = 1

	// DefaultURLPrefix is the release host for the compressed monthly CSV files.
	DefaultURLPrefix = "https://github.com/DataTalksClub/nyc-tlc-data/releases/download"

	// DefaultIndexColumn holds the zero-based source ordinal of every loaded row.
	// An empty name disables the column.
	DefaultIndexColumn = "index"

	// DefaultTimestampLayout parses the pickup/dropoff columns.
	DefaultTimestampLayout = "2006-01-02 15:04:05"

	// DefaultOutputDir is where the pipeline command writes its Parquet file.
	DefaultOutputDir = "."

	// DefaultCompression is the Parquet codec used by the pipeline command.
	DefaultCompression = "snappy"

	// DefaultHTTPTimeout bounds how long the source response headers may take.
	DefaultHTTPTimeout = 30 * time.Second

	// MinYear and MaxYear bound the year accepted in the source URL template.
	MinYear = 2009
	MaxYear = 2100

	// DefaultManagementDB is the database used when a connection string does not name one.
	DefaultManagementDB = "postgres"

	// DefaultDatabase is the target database when no flag, environment
	// variable or config file names one.
	DefaultDatabase = "ny_taxi"

	// AppName is reported to PostgreSQL as application_name.
	AppName = "tripload"
)

// TimestampColumns are parsed from text into timestamps at read time.
var TimestampColumns = []string{
	"tpep_pickup_datetime",
	"tpep_dropoff_datetime",
}
