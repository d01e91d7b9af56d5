package sink

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/tripload/internal/logging"
	"github.com/vvka-141/tripload/pkg/tripload"
)

type copyCall struct {
	table   pgx.Identifier
	columns []string
	rows    [][]any
}

type mockConn struct {
	execSQL  []string
	copies   []copyCall
	execErr  error
	copyErr  error
	copyN    int64
	countVal int64
}

func (m *mockConn) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	m.execSQL = append(m.execSQL, sql)
	return pgconn.CommandTag{}, m.execErr
}

func (m *mockConn) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	m.execSQL = append(m.execSQL, sql)
	return mockRow{n: m.countVal}
}

func (m *mockConn) CopyFrom(_ context.Context, table pgx.Identifier, columns []string, src pgx.CopyFromSource) (int64, error) {
	if m.copyErr != nil {
		return 0, m.copyErr
	}
	call := copyCall{table: table, columns: columns}
	for src.Next() {
		values, err := src.Values()
		if err != nil {
			return 0, err
		}
		call.rows = append(call.rows, values)
	}
	m.copies = append(m.copies, call)
	if m.copyN > 0 {
		return m.copyN, nil
	}
	return int64(len(call.rows)), nil
}

type mockRow struct{ n int64 }

func (r mockRow) Scan(dest ...any) error {
	*(dest[0].(*int64)) = r.n
	return nil
}

var testSchema = tripload.Schema{
	{Name: "index", Type: tripload.TypeInt64},
	{Name: "VendorID", Type: tripload.TypeInt64},
	{Name: "tpep_pickup_datetime", Type: tripload.TypeTimestamp},
	{Name: "trip_distance", Type: tripload.TypeFloat64},
	{Name: "store_and_fwd_flag", Type: tripload.TypeString},
}

func TestParseTable(t *testing.T) {
	ident, err := ParseTable("yellow_taxi_data")
	require.NoError(t, err)
	assert.Equal(t, pgx.Identifier{"yellow_taxi_data"}, ident)

	ident, err = ParseTable("staging.trips")
	require.NoError(t, err)
	assert.Equal(t, pgx.Identifier{"staging", "trips"}, ident)

	for _, bad := range []string{"", "a.b.c", ".trips", "staging."} {
		_, err := ParseTable(bad)
		assert.ErrorIs(t, err, tripload.ErrInvalidConfig, bad)
	}
}

func TestCreateTableSQL(t *testing.T) {
	sql := CreateTableSQL(pgx.Identifier{"staging", "trips"}, testSchema)

	assert.Equal(t, `DROP TABLE IF EXISTS "staging"."trips";
CREATE TABLE "staging"."trips" (
    "index" BIGINT,
    "VendorID" BIGINT,
    "tpep_pickup_datetime" TIMESTAMP WITHOUT TIME ZONE,
    "trip_distance" DOUBLE PRECISION,
    "store_and_fwd_flag" TEXT
)`, sql)
}

func TestCreateTableSQL_QuotesHostileNames(t *testing.T) {
	sql := CreateTableSQL(pgx.Identifier{`x"; DROP TABLE y; --`}, tripload.Schema{{Name: `a"b`, Type: tripload.TypeString}})
	assert.Contains(t, sql, `"x""; DROP TABLE y; --"`)
	assert.Contains(t, sql, `"a""b" TEXT`)
}

func TestPostgresSink_CreateTable(t *testing.T) {
	conn := &mockConn{}
	s := NewPostgresSink(conn, logging.NewNullLogger())

	require.NoError(t, s.CreateTable(context.Background(), "yellow_taxi_data", testSchema))
	require.Len(t, conn.execSQL, 1)
	assert.Contains(t, conn.execSQL[0], `DROP TABLE IF EXISTS "yellow_taxi_data"`)
	assert.Empty(t, conn.copies, "schema-only creation writes no rows")
}

func TestPostgresSink_CreateTable_NoColumns(t *testing.T) {
	s := NewPostgresSink(&mockConn{}, logging.NewNullLogger())
	err := s.CreateTable(context.Background(), "t", nil)
	assert.ErrorIs(t, err, tripload.ErrSchemaMismatch)
}

func TestPostgresSink_CreateTable_Failure(t *testing.T) {
	conn := &mockConn{execErr: errors.New("permission denied for schema public")}
	s := NewPostgresSink(conn, logging.NewNullLogger())

	err := s.CreateTable(context.Background(), "t", testSchema)
	assert.ErrorIs(t, err, tripload.ErrSinkUnavailable)
	assert.Contains(t, err.Error(), "permission denied")
}

func TestPostgresSink_Append(t *testing.T) {
	conn := &mockConn{}
	s := NewPostgresSink(conn, logging.NewNullLogger())

	batch := &tripload.Batch{
		Schema: testSchema,
		Rows: [][]any{
			{pgtype.Int8{Int64: 0, Valid: true}, pgtype.Int8{Int64: 1, Valid: true}, pgtype.Timestamp{}, pgtype.Float8{Float64: 1.5, Valid: true}, pgtype.Text{String: "N", Valid: true}},
			{pgtype.Int8{Int64: 1, Valid: true}, pgtype.Int8{}, pgtype.Timestamp{}, pgtype.Float8{}, pgtype.Text{}},
		},
	}

	n, err := s.Append(context.Background(), "staging.trips", batch)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.Len(t, conn.copies, 1)
	assert.Equal(t, pgx.Identifier{"staging", "trips"}, conn.copies[0].table)
	assert.Equal(t, testSchema.Names(), conn.copies[0].columns)
	assert.Equal(t, batch.Rows, conn.copies[0].rows, "rows keep their order")
}

func TestPostgresSink_Append_EmptyBatchIsNoop(t *testing.T) {
	conn := &mockConn{}
	s := NewPostgresSink(conn, logging.NewNullLogger())

	n, err := s.Append(context.Background(), "t", &tripload.Batch{Schema: testSchema})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, conn.copies)
}

func TestPostgresSink_Append_Failure(t *testing.T) {
	conn := &mockConn{copyErr: errors.New("connection reset by peer")}
	s := NewPostgresSink(conn, logging.NewNullLogger())

	batch := &tripload.Batch{Schema: testSchema[:1], Rows: [][]any{{pgtype.Int8{Valid: true}}}}
	_, err := s.Append(context.Background(), "t", batch)
	assert.ErrorIs(t, err, tripload.ErrSinkUnavailable)
	assert.Equal(t, tripload.ExitSinkUnavailable, tripload.ExitCodeForError(err))
}

func TestPostgresSink_Append_ShortCopy(t *testing.T) {
	conn := &mockConn{copyN: 1}
	s := NewPostgresSink(conn, logging.NewNullLogger())

	batch := &tripload.Batch{Schema: testSchema[:1], Rows: [][]any{{pgtype.Int8{Valid: true}}, {pgtype.Int8{Valid: true}}}}
	_, err := s.Append(context.Background(), "t", batch)
	require.ErrorIs(t, err, tripload.ErrSinkUnavailable)
	assert.Contains(t, err.Error(), "wrote 1 of 2 rows")
}

func TestPostgresSink_Append_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	conn := &mockConn{copyErr: errors.New("conn closed")}
	s := NewPostgresSink(conn, logging.NewNullLogger())

	batch := &tripload.Batch{Schema: testSchema[:1], Rows: [][]any{{pgtype.Int8{Valid: true}}}}
	_, err := s.Append(ctx, "t", batch)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, tripload.ErrSinkUnavailable)
}

func TestPostgresSink_Count(t *testing.T) {
	conn := &mockConn{countVal: 42}
	s := NewPostgresSink(conn, logging.NewNullLogger())

	n, err := s.Count(context.Background(), "yellow_taxi_data")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
	assert.Equal(t, `SELECT count(*) FROM "yellow_taxi_data"`, conn.execSQL[0])
}
