package fixtures

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/gzip"
)

// YellowHeader is the column order of the yellow taxi trip record files.
var YellowHeader = []string{
	"VendorID", "tpep_pickup_datetime", "tpep_dropoff_datetime", "passenger_count",
	"trip_distance", "RatecodeID", "store_and_fwd_flag", "PULocationID", "DOLocationID",
	"payment_type", "fare_amount", "extra", "mta_tax", "tip_amount", "tolls_amount",
	"improvement_surcharge", "total_amount", "congestion_surcharge",
}

// TripFileBuilder provides a fluent API for building trip record CSV fixtures.
//
// Example usage:
//
//	data, err := NewTripFileBuilder().
//	    AddTrips(250).
//	    AddRow("", "2021-01-01 00:00:00", "2021-01-01 00:10:00", "", ...).
//	    Gzip()
type TripFileBuilder struct {
	header []string
	rows   [][]string
	start  time.Time
}

// NewTripFileBuilder creates a builder with the yellow trip header and no rows.
func NewTripFileBuilder() *TripFileBuilder {
	return &TripFileBuilder{
		header: append([]string(nil), YellowHeader...),
		start:  time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// WithHeader replaces the header row.
func (b *TripFileBuilder) WithHeader(columns ...string) *TripFileBuilder {
	b.header = append([]string(nil), columns...)
	return b
}

// AddRow appends a raw record. Its field count is not checked, so malformed
// files can be built too.
func (b *TripFileBuilder) AddRow(fields ...string) *TripFileBuilder {
	b.rows = append(b.rows, fields)
	return b
}

// AddTrips appends n generated yellow trip records. Trip i picks up i
// seconds after midnight on 2021-01-01 and carries i as its PULocationID
// modulo 265, so row order stays recoverable after a load.
// Every tenth record has no passenger_count.
func (b *TripFileBuilder) AddTrips(n int) *TripFileBuilder {
	offset := len(b.rows)
	for i := offset; i < offset+n; i++ {
		pickup := b.start.Add(time.Duration(i) * time.Second)
		dropoff := pickup.Add(12 * time.Minute)

		passengers := fmt.Sprint(i%4 + 1)
		if i%10 == 9 {
			passengers = ""
		}

		fare := 5 + float64(i%50)/2
		b.rows = append(b.rows, []string{
			fmt.Sprint(i%2 + 1),
			pickup.Format("2006-01-02 15:04:05"),
			dropoff.Format("2006-01-02 15:04:05"),
			passengers,
			fmt.Sprintf("%.2f", float64(i%100)/10),
			"1",
			"N",
			fmt.Sprint(i%265 + 1),
			fmt.Sprint((i+7)%265 + 1),
			"1",
			fmt.Sprintf("%.2f", fare),
			"0.5",
			"0.5",
			"1.00",
			"0",
			"0.3",
			fmt.Sprintf("%.2f", fare+2.3),
			"2.5",
		})
	}
	return b
}

// Rows returns the number of data records added so far.
func (b *TripFileBuilder) Rows() int {
	return len(b.rows)
}

// CSV renders the header and records.
func (b *TripFileBuilder) CSV() []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write(b.header) //nolint:errcheck
	for _, row := range b.rows {
		w.Write(row) //nolint:errcheck
	}
	w.Flush()
	return buf.Bytes()
}

// Gzip renders the file gzip-compressed, as the release host serves it.
func (b *TripFileBuilder) Gzip() ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(b.CSV()); err != nil {
		return nil, fmt.Errorf("compress fixture: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compress fixture: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile writes the fixture to dir/name, gzip-compressed when compressed
// is true, and returns the path.
func (b *TripFileBuilder) WriteFile(dir, name string, compressed bool) (string, error) {
	data := b.CSV()
	if compressed {
		var err error
		if data, err = b.Gzip(); err != nil {
			return "", err
		}
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write fixture %s: %w", path, err)
	}
	return path, nil
}
