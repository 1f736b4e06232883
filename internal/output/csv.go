package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/spf13/cast"

	"github.com/vegasq/flatcat/internal/document"
)

// CSVFormatter outputs rows as CSV format
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes rows as CSV
func (c *CSVFormatter) Format(rows document.Table) error {
	csvWriter := csv.NewWriter(c.writer)

	if len(rows) == 0 {
		csvWriter.Flush()
		if err := csvWriter.Error(); err != nil {
			return fmt.Errorf("failed to flush CSV writer: %w", err)
		}
		return nil
	}

	// The column set is the union of keys across all rows, in first-seen
	// order. Sparse data is fine: rows missing a column get an empty cell.
	columns := columnsOf(rows)

	if err := csvWriter.Write(columns); err != nil {
		return err
	}

	for _, row := range rows {
		record := make([]string, len(columns))
		for i, col := range columns {
			if value, ok := row.Get(col); ok {
				cell := formatValue(value)
				// Only text can smuggle a formula; numbers and other
				// scalars must come through verbatim.
				if _, isText := value.(string); isText {
					cell = sanitizeCell(cell)
				}
				record[i] = cell
			}
		}
		if err := csvWriter.Write(record); err != nil {
			return err
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}

	return nil
}

// formatValue converts a cell value to its string form. Nested objects
// and arrays that were not flattened away are kept as compact JSON.
func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case *orderedmap.OrderedMap, []interface{}:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(data)
	default:
		s, err := cast.ToStringE(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return s
	}
}

// sanitizeCell guards string cells against CSV injection by prefixing
// characters that could trigger formula execution in spreadsheet
// applications.
func sanitizeCell(val string) string {
	if len(val) > 0 {
		firstChar := val[0]
		if firstChar == '=' || firstChar == '+' || firstChar == '-' || firstChar == '@' || firstChar == '\t' || firstChar == '\r' || firstChar == '\n' || firstChar == '|' {
			return "'" + strings.ReplaceAll(val, "'", "''")
		}
	}
	return val
}
