package output

import (
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/vegasq/flatcat/internal/document"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONFormatter outputs rows as one indented JSON array
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON array formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes rows as an indented JSON array
func (j *JSONFormatter) Format(rows document.Table) error {
	if rows == nil {
		rows = document.Table{}
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = j.writer.Write(data)
	return err
}

// JSONLinesFormatter outputs rows as JSON Lines format
type JSONLinesFormatter struct {
	writer io.Writer
}

// NewJSONLinesFormatter creates a new JSON Lines formatter
func NewJSONLinesFormatter(w io.Writer) *JSONLinesFormatter {
	return &JSONLinesFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONLinesFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes rows as JSON Lines (one JSON object per line)
func (j *JSONLinesFormatter) Format(rows document.Table) error {
	encoder := json.NewEncoder(j.writer)
	for _, row := range rows {
		if err := encoder.Encode(row); err != nil {
			return err
		}
	}
	return nil
}
