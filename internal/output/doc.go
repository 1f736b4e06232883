// Package output provides formatters for converting record tables to
// various output formats.
//
// Supported formats:
//   - JSON: one indented array of objects
//   - JSON Lines: one JSON object per line
//   - CSV: comma-separated values with header row
//   - Table: aligned text table
//
// All formatters work with ordered records, so field order in the output
// follows field order in the input. For the column-oriented formats the
// column set is the union of keys across all rows, in the order columns
// first appear.
//
// Example usage:
//
//	formatter := output.NewJSONLinesFormatter(os.Stdout)
//	if err := formatter.Format(rows); err != nil {
//	    log.Fatal(err)
//	}
package output

import (
	"io"

	"github.com/vegasq/flatcat/internal/document"
)

// Formatter defines the interface for output formatters.
type Formatter interface {
	// Format writes rows in the formatter's specific format
	Format(rows document.Table) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// columnsOf returns the union of keys across all rows, ordered by first
// appearance.
func columnsOf(rows document.Table) []string {
	var columns []string
	seen := make(map[string]bool)
	for _, row := range rows {
		for _, col := range row.Keys() {
			if !seen[col] {
				seen[col] = true
				columns = append(columns, col)
			}
		}
	}
	return columns
}
