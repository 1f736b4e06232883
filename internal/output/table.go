package output

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/flatcat/internal/document"
)

// TableFormatter outputs rows as an aligned text table
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new text table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// Format renders rows as a table with one column per key
func (t *TableFormatter) Format(rows document.Table) error {
	if len(rows) == 0 {
		return nil
	}

	columns := columnsOf(rows)

	table := tablewriter.NewWriter(t.writer)
	table.SetHeader(columns)
	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			if value, ok := row.Get(col); ok {
				cells[i] = formatValue(value)
			}
		}
		table.Append(cells)
	}
	table.Render()

	return nil
}
