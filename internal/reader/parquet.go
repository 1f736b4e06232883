// Package reader provides Parquet input for flatcat.
//
// It uses the segmentio/parquet-go library to read parquet files and
// returns rows as ordered records, so parquet input obeys the same
// stable column order contract as JSON input.
package reader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/segmentio/parquet-go"

	"github.com/vegasq/flatcat/internal/document"
)

// Reader reads parquet files and returns rows as ordered records.
//
// It maintains both an OS file handle and a parquet file handle to enable
// proper resource cleanup.
type Reader struct {
	file   *os.File
	pqFile *parquet.File
}

// NewReader creates a new parquet reader for the specified file path.
//
// The file is opened and validated as a parquet file. Returns an error if
// the file doesn't exist or is not a valid parquet file.
func NewReader(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	return &Reader{
		file:   file,
		pqFile: pqFile,
	}, nil
}

// ReadAll reads all rows from the parquet file into memory.
//
// Each row is returned as a record whose keys follow the file schema's
// column order. The entire file is loaded into memory, so this method may
// not be suitable for very large files.
func (r *Reader) ReadAll() (document.Table, error) {
	columns := r.columnNames()
	rows := make(document.Table, 0)

	reader := parquet.NewReader(r.pqFile)
	defer func() { _ = reader.Close() }()

	for {
		row := make(map[string]interface{})
		err := reader.Read(&row)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		rows = append(rows, orderRow(row, columns))
	}

	return rows, nil
}

// Schema returns the parquet file schema.
func (r *Reader) Schema() *parquet.Schema {
	return r.pqFile.Schema()
}

// Close closes the parquet reader and releases associated resources.
//
// Should be called when done reading to avoid resource leaks. It is safe
// to call Close multiple times.
func (r *Reader) Close() error {
	if r.file != nil {
		err := r.file.Close()
		r.file = nil
		return err
	}
	return nil
}

// columnNames returns the schema's top-level column names in order.
func (r *Reader) columnNames() []string {
	fields := r.pqFile.Schema().Fields()
	names := make([]string, 0, len(fields))
	for _, field := range fields {
		names = append(names, field.Name())
	}
	return names
}

// orderRow converts a decoded row map into a record keyed in schema
// column order. Values outside the schema are appended after the known
// columns, sorted by name, so nothing is dropped and the order stays
// deterministic.
func orderRow(row map[string]interface{}, columns []string) *orderedmap.OrderedMap {
	rec := orderedmap.New()
	seen := make(map[string]bool, len(columns))
	for _, name := range columns {
		if value, ok := row[name]; ok {
			rec.Set(name, value)
			seen[name] = true
		}
	}
	var extra []string
	for name := range row {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		rec.Set(name, row[name])
	}
	return rec
}
