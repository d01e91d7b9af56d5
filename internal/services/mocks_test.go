package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/tripload/pkg/tripload"
)

type mockConnector struct {
	err error
}

func (m *mockConnector) Connect(_ context.Context) (*pgxpool.Pool, error) {
	if m.err != nil {
		return nil, m.err
	}
	return nil, errors.New("mockConnector cannot open real pools")
}

type mockLogger struct{}

func (m *mockLogger) Verbose(_ string, _ ...interface{}) {}
func (m *mockLogger) Info(_ string, _ ...interface{})    {}
func (m *mockLogger) Error(_ string, _ ...interface{})   {}

// mockSink keeps the destination table in memory.
type mockSink struct {
	schema    tripload.Schema
	rows      [][]any
	creates   int
	countSkew int64
	closed    bool
}

func (m *mockSink) CreateTable(_ context.Context, _ string, schema tripload.Schema) error {
	m.creates++
	m.schema = schema
	m.rows = nil
	return nil
}

func (m *mockSink) Append(_ context.Context, _ string, batch *tripload.Batch) (int64, error) {
	m.rows = append(m.rows, batch.Rows...)
	return int64(batch.Len()), nil
}

func (m *mockSink) Count(_ context.Context, _ string) (int64, error) {
	return int64(len(m.rows)) + m.countSkew, nil
}
