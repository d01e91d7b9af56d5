package columnar

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/vvka-141/tripload/pkg/tripload"
)

// Options configures Parquet output.
type Options struct {
	// Compression is snappy (default), gzip, zstd or none.
	Compression string

	// Allocator defaults to a Go allocator.
	Allocator memory.Allocator
}

func (o Options) allocator() memory.Allocator {
	if o.Allocator == nil {
		return memory.NewGoAllocator()
	}
	return o.Allocator
}

// ParseCompression resolves a codec name.
func ParseCompression(name string) (compress.Compression, error) {
	switch strings.ToLower(name) {
	case "", "snappy":
		return compress.Codecs.Snappy, nil
	case "gzip":
		return compress.Codecs.Gzip, nil
	case "zstd":
		return compress.Codecs.Zstd, nil
	case "none", "uncompressed":
		return compress.Codecs.Uncompressed, nil
	default:
		return compress.Codecs.Uncompressed, fmt.Errorf("unknown compression %q (use snappy, gzip, zstd or none): %w", name, tripload.ErrInvalidConfig)
	}
}

// OutputFileName returns the Parquet file name for a pipeline argument.
func OutputFileName(arg string) string {
	return fmt.Sprintf("output_day_%s.parquet", arg)
}

// WriteParquet writes t to w as a single-row-group Parquet file with the
// Arrow schema stored in the file metadata.
func WriteParquet(w io.Writer, t *Table, opts Options) error {
	codec, err := ParseCompression(opts.Compression)
	if err != nil {
		return err
	}

	record := t.Record()
	defer record.Release()

	writerProps := parquet.NewWriterProperties(
		parquet.WithCompression(codec),
		parquet.WithAllocator(opts.allocator()),
	)
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	writer, err := pqarrow.NewFileWriter(t.Schema(), w, writerProps, arrowProps)
	if err != nil {
		return fmt.Errorf("failed to create Parquet writer: %w", err)
	}

	if err := writer.Write(record); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write record batch: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close Parquet writer: %w", err)
	}
	return nil
}

// ReadParquet reads a Parquet file into a Table. The caller releases it.
func ReadParquet(ctx context.Context, path string, mem memory.Allocator) (*Table, error) {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	tbl, err := pqarrow.ReadTable(ctx, f, parquet.NewReaderProperties(mem), pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer tbl.Release()

	columns := make([]arrow.Array, tbl.NumCols())
	defer func() {
		for _, col := range columns {
			if col != nil {
				col.Release()
			}
		}
	}()

	for i := range columns {
		chunks := tbl.Column(i).Data().Chunks()
		if len(chunks) == 1 {
			chunks[0].Retain()
			columns[i] = chunks[0]
			continue
		}
		if columns[i], err = array.Concatenate(chunks, mem); err != nil {
			return nil, fmt.Errorf("read %s: column %s: %w", path, tbl.Schema().Field(i).Name, err)
		}
	}

	return NewTable(tbl.Schema(), columns)
}

// Append builds the base table, adds a month column holding arg on every
// row and writes it to dir/output_day_<arg>.parquet. Returns the path.
func Append(arg, dir string, opts Options) (string, error) {
	if arg == "" {
		return "", fmt.Errorf("month argument is empty: %w", tripload.ErrInvalidConfig)
	}
	if strings.ContainsAny(arg, `/\`) || arg == "." || arg == ".." {
		return "", fmt.Errorf("month argument %q cannot be used in a file name: %w", arg, tripload.ErrInvalidConfig)
	}
	if _, err := ParseCompression(opts.Compression); err != nil {
		return "", err
	}

	mem := opts.allocator()
	base := BaseTable(mem)
	defer base.Release()

	t, err := base.WithConstantColumn(mem, MonthColumn, arg)
	if err != nil {
		return "", err
	}
	defer t.Release()

	path := filepath.Join(dir, OutputFileName(arg))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}

	if err := WriteParquet(f, t, opts); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close %s: %w", path, err)
	}

	return path, nil
}
