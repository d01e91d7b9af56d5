package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/vvka-141/tripload/pkg/tripload"
)

// countingReader counts the bytes read through it.
// Source reads happen on a single goroutine, so no synchronization is needed.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// openStream opens location and returns the raw stream and its size
// (-1 when unknown).
func openStream(ctx context.Context, location string, client *http.Client) (io.ReadCloser, int64, error) {
	switch {
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return openHTTP(ctx, location, client)
	case strings.HasPrefix(location, "file://"):
		u, err := url.Parse(location)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid file URL %q: %v: %w", location, err, tripload.ErrSourceUnavailable)
		}
		return openFile(u.Path)
	default:
		return openFile(location)
	}
}

func openHTTP(ctx context.Context, location string, client *http.Client) (io.ReadCloser, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid source URL %q: %v: %w", location, err, tripload.ErrSourceUnavailable)
	}
	req.Header.Set("User-Agent", tripload.AppName)

	resp, err := client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, 0, fmt.Errorf("download %s: %w", location, ctxErr)
		}
		return nil, 0, fmt.Errorf("download %s: %v: %w", location, err, tripload.ErrSourceUnavailable)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, 0, fmt.Errorf("download %s: HTTP %s: %w", location, resp.Status, tripload.ErrSourceUnavailable)
	}

	size := resp.ContentLength
	if size < 0 {
		size = -1
	}
	return resp.Body, size, nil
}

func openFile(path string) (io.ReadCloser, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, fmt.Errorf("source file %s does not exist: %w", path, tripload.ErrSourceUnavailable)
		}
		return nil, 0, fmt.Errorf("open %s: %v: %w", path, err, tripload.ErrSourceUnavailable)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("stat %s: %v: %w", path, err, tripload.ErrSourceUnavailable)
	}
	if info.IsDir() {
		f.Close()
		return nil, 0, fmt.Errorf("source %s is a directory: %w", path, tripload.ErrSourceUnavailable)
	}

	return f, info.Size(), nil
}
