// Package document provides the ordered record model shared by flatcat
// packages, plus loading and saving of JSON documents.
//
// Records are ordered maps: key order survives decoding, transformation and
// encoding, so output is stable with respect to the input document. Nested
// JSON objects decode to *orderedmap.OrderedMap and arrays to []any, which
// lets callers distinguish the object case with a single type assertion.
package document

import (
	stdjson "encoding/json"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/keboola/go-utils/pkg/orderedmap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Table is an ordered sequence of records nominally sharing a schema.
// Individual records may have missing or null fields; the schema is the
// union of keys, not the intersection.
type Table []*orderedmap.OrderedMap

// Parse decodes a single top-level JSON object.
func Parse(data []byte) (*orderedmap.OrderedMap, error) {
	doc := orderedmap.New()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, decodeError(data, "object", err)
	}
	return doc, nil
}

// ParseTable decodes a top-level JSON array of objects.
func ParseTable(data []byte) (Table, error) {
	var items []stdjson.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, decodeError(data, "array", err)
	}
	rows := make(Table, 0, len(items))
	for i, item := range items {
		row, err := Parse(item)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// decodeError classifies a failed decode. Well-formed JSON of the wrong
// top-level shape is a type mismatch, not a parse error; only malformed
// input is a ParseError.
func decodeError(data []byte, want string, err error) error {
	var v any
	if wellFormed := json.Unmarshal(data, &v); wellFormed == nil {
		return &TypeMismatchError{Path: ".", Want: want, Got: TypeName(v)}
	}
	return &ParseError{Err: err}
}

// Load reads and decodes a JSON document from a file.
func Load(path string) (*orderedmap.OrderedMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(data)
}

// LoadTable reads and decodes a top-level JSON array of objects from a file.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseTable(data)
}

// AsTable checks that an extracted value is a sequence of records and
// converts it. The original document's "docs is a list of objects"
// assumption becomes an explicit precondition here: anything else yields
// a TypeMismatchError naming the offending element.
func AsTable(v any) (Table, error) {
	switch seq := v.(type) {
	case Table:
		return seq, nil
	case []*orderedmap.OrderedMap:
		return Table(seq), nil
	case []any:
		rows := make(Table, len(seq))
		for i, item := range seq {
			row, ok := item.(*orderedmap.OrderedMap)
			if !ok {
				return nil, &TypeMismatchError{Path: fmt.Sprintf("[%d]", i), Want: "object", Got: TypeName(item)}
			}
			rows[i] = row
		}
		return rows, nil
	default:
		return nil, &TypeMismatchError{Path: ".", Want: "array of objects", Got: TypeName(v)}
	}
}

// Encode serializes a JSON value to w, indented, with a trailing newline.
func Encode(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

// Save serializes a JSON value to a file. The file handle is released
// whether or not the write succeeds.
func Save(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := Encode(f, v); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
