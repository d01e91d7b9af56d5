package loader

import (
	"context"
	"errors"
	"io"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/vvka-141/tripload/pkg/tripload"
)

// mockSource yields prepared batches in order, then err (io.EOF by default).
type mockSource struct {
	batches []*tripload.Batch
	err     error
	pos     int
	closed  bool
}

func (m *mockSource) Next(_ context.Context) (*tripload.Batch, error) {
	if m.pos < len(m.batches) {
		b := m.batches[m.pos]
		m.pos++
		return b, nil
	}
	if m.err != nil {
		return nil, m.err
	}
	return nil, io.EOF
}

func (m *mockSource) Progress() (int64, int64) {
	return int64(m.pos), int64(len(m.batches))
}

func (m *mockSource) Close() error {
	m.closed = true
	return nil
}

// generatedSource yields total rows of a single int64 column "trip_id"
// (value = row ordinal) in chunks of chunkSize.
func generatedSource(total, chunkSize int) *mockSource {
	schema := tripload.Schema{{Name: "trip_id", Type: tripload.TypeInt64}}
	src := &mockSource{}
	for offset := 0; offset < total; offset += chunkSize {
		n := chunkSize
		if offset+n > total {
			n = total - offset
		}
		rows := make([][]any, n)
		for i := range rows {
			rows[i] = []any{pgtype.Int8{Int64: int64(offset + i), Valid: true}}
		}
		src.batches = append(src.batches, &tripload.Batch{Schema: schema, Rows: rows, Offset: int64(offset)})
	}
	return src
}

// mockSink keeps tables in memory.
type mockSink struct {
	tables    map[string]*memTable
	creates   int
	appends   []int
	createErr error
	appendErr error
	failAfter int // fail appends once this many succeeded; 0 disables
}

type memTable struct {
	schema tripload.Schema
	rows   [][]any
}

func newMockSink() *mockSink {
	return &mockSink{tables: make(map[string]*memTable)}
}

func (m *mockSink) CreateTable(_ context.Context, table string, schema tripload.Schema) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.creates++
	m.tables[table] = &memTable{schema: schema}
	return nil
}

func (m *mockSink) Append(_ context.Context, table string, batch *tripload.Batch) (int64, error) {
	if m.appendErr != nil && len(m.appends) >= m.failAfter {
		return 0, m.appendErr
	}
	t, ok := m.tables[table]
	if !ok {
		return 0, errors.New("relation does not exist")
	}
	if !t.schema.Equal(batch.Schema) {
		return 0, errors.New("column mismatch")
	}
	t.rows = append(t.rows, batch.Rows...)
	m.appends = append(m.appends, batch.Len())
	return int64(batch.Len()), nil
}
