package params

import (
	"errors"
	"strings"
	"testing"

	"github.com/vvka-141/tripload/pkg/tripload"
)

func TestParseKeyValuePairs(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    map[string]string
		wantErr string
	}{
		{
			name:  "single pair",
			input: []string{"VendorID=int64"},
			want:  map[string]string{"VendorID": "int64"},
		},
		{
			name:  "multiple pairs",
			input: []string{"env=prod", "db=myapp", "port=5432"},
			want:  map[string]string{"env": "prod", "db": "myapp", "port": "5432"},
		},
		{
			name:  "empty input",
			input: []string{},
			want:  map[string]string{},
		},
		{
			name:  "nil input",
			input: nil,
			want:  map[string]string{},
		},
		{
			name:  "empty value",
			input: []string{"key="},
			want:  map[string]string{"key": ""},
		},
		{
			name:  "value with equals",
			input: []string{"conn=host=localhost dbname=test"},
			want:  map[string]string{"conn": "host=localhost dbname=test"},
		},
		{
			name:  "value with special chars",
			input: []string{"password=p@ss!w0rd#123"},
			want:  map[string]string{"password": "p@ss!w0rd#123"},
		},
		{
			name:    "missing equals",
			input:   []string{"noequalssign"},
			wantErr: "not in key=value format",
		},
		{
			name:    "empty key",
			input:   []string{"=value"},
			wantErr: "empty key",
		},
		{
			name:    "blank key",
			input:   []string{"  =value"},
			wantErr: "empty key",
		},
		{
			name:    "error on second pair",
			input:   []string{"good=pair", "bad"},
			wantErr: "not in key=value format",
		},
		{
			name:  "duplicate key last wins",
			input: []string{"env=dev", "env=prod"},
			want:  map[string]string{"env": "prod"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKeyValuePairs(tt.input)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("Expected error containing %q, got nil", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Expected error containing %q, got: %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Length mismatch: got %d, want %d", len(got), len(tt.want))
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("Key %q: got %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

func TestParseKeyValuePairs_WrapsInvalidConfig(t *testing.T) {
	_, err := ParseKeyValuePairs([]string{"bad"})
	if !errors.Is(err, tripload.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestParseColumns(t *testing.T) {
	got, err := ParseColumns([]string{"store_and_fwd_flag=string", "passenger_count=FLOAT", "pickup=datetime"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := map[string]tripload.ColumnType{
		"store_and_fwd_flag": tripload.TypeString,
		"passenger_count":    tripload.TypeFloat64,
		"pickup":             tripload.TypeTimestamp,
	}
	if len(got) != len(want) {
		t.Fatalf("Length mismatch: got %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("Column %q: got %v, want %v", k, got[k], v)
		}
	}
}

func TestParseColumns_UnknownType(t *testing.T) {
	_, err := ParseColumns([]string{"VendorID=uint128"})
	if err == nil {
		t.Fatal("Expected error for unknown type")
	}
	if !strings.Contains(err.Error(), `column "VendorID"`) {
		t.Errorf("error should name the column, got: %v", err)
	}
	if tripload.ExitCodeForError(err) != tripload.ExitConfigError {
		t.Errorf("exit code = %d, want %d", tripload.ExitCodeForError(err), tripload.ExitConfigError)
	}
}

func TestMergeColumns(t *testing.T) {
	base := map[string]tripload.ColumnType{"a": tripload.TypeInt64, "b": tripload.TypeString}
	override := map[string]tripload.ColumnType{"b": tripload.TypeFloat64}

	merged := MergeColumns(base, override)

	if merged["a"] != tripload.TypeInt64 || merged["b"] != tripload.TypeFloat64 {
		t.Errorf("unexpected merge result: %v", merged)
	}
	if base["b"] != tripload.TypeString {
		t.Error("MergeColumns must not modify base")
	}
}
