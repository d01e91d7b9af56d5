package source

import (
	"github.com/vvka-141/tripload/pkg/tripload"
)

// TypeMap declares the type of each source column by header name.
type TypeMap struct {
	Columns map[string]tripload.ColumnType

	// Fallback applies to columns the map does not name.
	Fallback tripload.ColumnType

	// TimestampLayout parses timestamp columns.
	TimestampLayout string
}

// DefaultTypes returns the column types of the taxi trip record files.
func DefaultTypes() TypeMap {
	columns := map[string]tripload.ColumnType{
		"VendorID":              tripload.TypeInt64,
		"passenger_count":       tripload.TypeInt64,
		"trip_distance":         tripload.TypeFloat64,
		"RatecodeID":            tripload.TypeInt64,
		"store_and_fwd_flag":    tripload.TypeString,
		"PULocationID":          tripload.TypeInt64,
		"DOLocationID":          tripload.TypeInt64,
		"payment_type":          tripload.TypeInt64,
		"fare_amount":           tripload.TypeFloat64,
		"extra":                 tripload.TypeFloat64,
		"mta_tax":               tripload.TypeFloat64,
		"tip_amount":            tripload.TypeFloat64,
		"tolls_amount":          tripload.TypeFloat64,
		"improvement_surcharge": tripload.TypeFloat64,
		"total_amount":          tripload.TypeFloat64,
		"congestion_surcharge":  tripload.TypeFloat64,
	}
	for _, name := range tripload.TimestampColumns {
		columns[name] = tripload.TypeTimestamp
	}

	return TypeMap{
		Columns:         columns,
		Fallback:        tripload.TypeString,
		TimestampLayout: tripload.DefaultTimestampLayout,
	}
}

// With returns a copy of m with overrides applied. m is not modified.
func (m TypeMap) With(overrides map[string]tripload.ColumnType) TypeMap {
	columns := make(map[string]tripload.ColumnType, len(m.Columns)+len(overrides))
	for name, typ := range m.Columns {
		columns[name] = typ
	}
	for name, typ := range overrides {
		columns[name] = typ
	}
	m.Columns = columns
	return m
}

// Lookup returns the declared type of a column.
func (m TypeMap) Lookup(name string) tripload.ColumnType {
	if typ, ok := m.Columns[name]; ok {
		return typ
	}
	return m.Fallback
}

// Schema types a header row.
func (m TypeMap) Schema(header []string) tripload.Schema {
	schema := make(tripload.Schema, len(header))
	for i, name := range header {
		schema[i] = tripload.Column{Name: name, Type: m.Lookup(name)}
	}
	return schema
}

// SourceURL returns the release URL of a monthly trip record file:
// <prefix>/<color>/<color>_tripdata_<YYYY>-<MM>.csv.gz
func SourceURL(prefix, color string, year, month int) string {
	return tripload.SourceConfig{URLPrefix: prefix, Color: color, Year: year, Month: month}.URL()
}
