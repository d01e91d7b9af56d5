// Package source reads a (possibly gzip-compressed) CSV file as a lazy,
// finite sequence of typed row batches.
//
// A source is opened from an http(s) URL, a file:// URL or a local path.
// Compression is detected from the gzip magic bytes, so .csv and .csv.gz
// are both accepted regardless of the file name.
//
// Column types come from an explicit TypeMap. Columns the map does not name
// are read as text. Empty fields become NULL values of the column's type;
// an integer column stays an integer column when it has gaps.
//
// Example:
//
//	src, err := source.Open(ctx, url, source.Options{ChunkSize: 100000})
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	for {
//	    batch, err := src.Next(ctx)
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    ...
//	}
package source
