package document

import (
	stdjson "encoding/json"
	"fmt"

	"github.com/keboola/go-utils/pkg/orderedmap"
)

// ParseError reports a malformed JSON document.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid JSON document: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// KeyNotFoundError reports an absent key or an out-of-range index while
// navigating a document. Path is the prefix that was navigated successfully.
type KeyNotFoundError struct {
	Key  string
	Path string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("key %q not found at %s", e.Key, e.Path)
}

// TypeMismatchError reports a value of the wrong shape at Path, e.g. a
// scalar where an object or array was expected.
type TypeMismatchError struct {
	Path string
	Want string
	Got  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("expected %s at %s, got %s", e.Want, e.Path, e.Got)
}

// TypeName names a decoded JSON value's variant for error messages.
func TypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case []any:
		return "array"
	case *orderedmap.OrderedMap, orderedmap.OrderedMap, map[string]any:
		return "object"
	case float64, float32, int, int32, int64, stdjson.Number:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
