package columnar

import (
	"errors"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var errNoColumns = errors.New("table has no columns")

// Preview renders the first n rows with a leading row-number column.
func Preview(t *Table, n int) (string, error) {
	if t.Schema().NumFields() == 0 {
		return "", errNoColumns
	}
	if n > t.NumRows() || n < 0 {
		n = t.NumRows()
	}

	headers := []string{""}
	for _, f := range t.Schema().Fields() {
		headers = append(headers, f.Name)
	}

	rows := make([][]string, n)
	for i := 0; i < n; i++ {
		row := []string{strconv.Itoa(i)}
		for j := range t.Schema().Fields() {
			row = append(row, t.Value(i, j))
		}
		rows[i] = row
	}

	return table.New().
		Border(lipgloss.HiddenBorder()).
		Headers(headers...).
		Rows(rows...).
		String(), nil
}
