package jsonpath

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/keboola/go-utils/pkg/orderedmap"

	"github.com/vegasq/flatcat/internal/document"
)

// Extract parses expr and returns the value reached by navigating root
// along it. Navigation is a fixed sequence of lookups, one per segment:
// key segments require an object, index segments require an array.
//
// Failures are reported with the path prefix that was navigated
// successfully: a KeyNotFoundError for an absent key or an out-of-range
// index, a TypeMismatchError for a node of the wrong shape.
func Extract(root any, expr string) (any, error) {
	segments, err := Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", expr, err)
	}
	return Navigate(root, segments)
}

// Navigate applies already-parsed segments to root.
func Navigate(root any, segments []Segment) (any, error) {
	current := root
	prefix := "."

	for _, seg := range segments {
		if seg.IsIndex {
			arr, ok := current.([]any)
			if !ok {
				return nil, &document.TypeMismatchError{Path: prefix, Want: "array", Got: document.TypeName(current)}
			}
			if seg.Index >= len(arr) {
				return nil, &document.KeyNotFoundError{Key: strconv.Itoa(seg.Index), Path: prefix}
			}
			current = arr[seg.Index]
			prefix += fmt.Sprintf("[%d]", seg.Index)
			continue
		}

		obj, ok := current.(*orderedmap.OrderedMap)
		if !ok {
			return nil, &document.TypeMismatchError{Path: prefix, Want: "object", Got: document.TypeName(current)}
		}
		value, found := obj.Get(seg.Key)
		if !found {
			return nil, &document.KeyNotFoundError{Key: seg.Key, Path: prefix}
		}
		current = value
		if prefix == "." {
			prefix = "." + quoteKey(seg.Key)
		} else {
			prefix += "." + quoteKey(seg.Key)
		}
	}

	return current, nil
}

// quoteKey renders a key for error messages the way it would be written
// in a path expression.
func quoteKey(key string) string {
	if strings.ContainsAny(key, ". []\"") || key == "" {
		return strconv.Quote(key)
	}
	return key
}
