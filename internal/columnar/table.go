package columnar

import (
	"fmt"
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// MonthColumn is the name of the column Append adds.
const MonthColumn = "month"

// Table is an immutable, column-oriented table of equal-length Arrow arrays.
type Table struct {
	schema  *arrow.Schema
	columns []arrow.Array
	rows    int
}

// NewTable creates a table from columns aligned with schema.
// The table retains the arrays; the caller keeps its own references.
func NewTable(schema *arrow.Schema, columns []arrow.Array) (*Table, error) {
	if schema.NumFields() != len(columns) {
		return nil, fmt.Errorf("schema has %d fields, got %d columns", schema.NumFields(), len(columns))
	}

	rows := 0
	for i, col := range columns {
		field := schema.Field(i)
		if !arrow.TypeEqual(field.Type, col.DataType()) {
			return nil, fmt.Errorf("column %s: schema type %s, array type %s", field.Name, field.Type, col.DataType())
		}
		if i == 0 {
			rows = col.Len()
		} else if col.Len() != rows {
			return nil, fmt.Errorf("column %s has %d rows, expected %d", field.Name, col.Len(), rows)
		}
	}

	for _, col := range columns {
		col.Retain()
	}
	return &Table{schema: schema, columns: columns, rows: rows}, nil
}

// BaseTable returns the fixed two-row frame: day=[1,2], num_passengers=[3,4].
func BaseTable(mem memory.Allocator) *Table {
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "day", Type: arrow.PrimitiveTypes.Int64},
		{Name: "num_passengers", Type: arrow.PrimitiveTypes.Int64},
	}, nil)

	day := int64Array(mem, 1, 2)
	defer day.Release()
	passengers := int64Array(mem, 3, 4)
	defer passengers.Release()

	t, err := NewTable(schema, []arrow.Array{day, passengers})
	if err != nil {
		panic(err) // fixed shape, cannot fail
	}
	return t
}

func int64Array(mem memory.Allocator, values ...int64) arrow.Array {
	b := array.NewInt64Builder(mem)
	defer b.Release()
	b.AppendValues(values, nil)
	return b.NewArray()
}

// Schema returns the table schema.
func (t *Table) Schema() *arrow.Schema { return t.schema }

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return t.rows }

// Column returns the named column.
func (t *Table) Column(name string) (arrow.Array, bool) {
	idx := t.schema.FieldIndices(name)
	if len(idx) == 0 {
		return nil, false
	}
	return t.columns[idx[0]], true
}

// WithConstantColumn returns a new table with a utf8 column that repeats
// value on every row. A column of the same name is replaced in place;
// otherwise the column is added last. t is left unchanged.
func (t *Table) WithConstantColumn(mem memory.Allocator, name, value string) (*Table, error) {
	b := array.NewStringBuilder(mem)
	defer b.Release()
	b.Reserve(t.rows)
	for i := 0; i < t.rows; i++ {
		b.Append(value)
	}
	col := b.NewArray()
	defer col.Release()

	field := arrow.Field{Name: name, Type: arrow.BinaryTypes.String}

	fields := append([]arrow.Field(nil), t.schema.Fields()...)
	columns := append([]arrow.Array(nil), t.columns...)

	if idx := t.schema.FieldIndices(name); len(idx) > 0 {
		fields[idx[0]] = field
		columns[idx[0]] = col
	} else {
		fields = append(fields, field)
		columns = append(columns, col)
	}

	return NewTable(arrow.NewSchema(fields, nil), columns)
}

// Record returns the table as a single record batch. The caller releases it.
func (t *Table) Record() arrow.Record {
	return array.NewRecord(t.schema, t.columns, int64(t.rows))
}

// Release drops the table's references to its arrays.
func (t *Table) Release() {
	for _, col := range t.columns {
		col.Release()
	}
	t.columns = nil
}

// Value renders the cell at row i of column j.
func (t *Table) Value(i, j int) string {
	col := t.columns[j]
	if col.IsNull(i) {
		return "null"
	}
	switch c := col.(type) {
	case *array.Int64:
		return strconv.FormatInt(c.Value(i), 10)
	case *array.String:
		return c.Value(i)
	default:
		return c.ValueStr(i)
	}
}
