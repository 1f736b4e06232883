// Package flatten implements one-level expansion of nested object-valued
// fields into {parent}_{child} columns.
//
// Given a record like
//
//	{"headline": {"main": "H1", "kicker": null}, "pub_date": "2018-10-10"}
//
// flattening the headline field produces
//
//	{"headline_main": "H1", "headline_kicker": null, "pub_date": "2018-10-10"}
//
// Expansion is one level deep. Fields whose value is not an object pass
// through unchanged, including null, so re-flattening an already flat
// record is a no-op.
package flatten

import (
	"fmt"

	"github.com/keboola/go-utils/pkg/orderedmap"

	"github.com/vegasq/flatcat/internal/document"
)

// Policy selects what happens when a column name, generated or literal,
// lands on a key that is already present in the output record.
type Policy int

const (
	// PolicyError fails the record with a KeyCollisionError.
	PolicyError Policy = iota

	// PolicyOverwrite resolves the collision deterministically: the later
	// field in record iteration order wins, and the position of the
	// earlier occurrence is kept.
	PolicyOverwrite
)

// Options controls a flattening run.
type Options struct {
	// Fields lists the fields to expand. Empty means every field whose
	// value is an object. Listed fields absent from a record, or whose
	// value is not an object, are left alone.
	Fields []string

	// Policy is the collision policy, PolicyError by default.
	Policy Policy
}

// KeyCollisionError reports a flattening that would overwrite an existing
// field under PolicyError.
type KeyCollisionError struct {
	Key string
}

func (e *KeyCollisionError) Error() string {
	return fmt.Sprintf("flattening would overwrite field %q", e.Key)
}

// Record returns a copy of rec in which each designated object-valued
// field is replaced, in place, by one {field}_{child} field per child key
// in the nested object's own order. All other fields are copied through
// in their original order. rec itself is not modified.
func Record(rec *orderedmap.OrderedMap, opts Options) (*orderedmap.OrderedMap, error) {
	designated := fieldSet(opts.Fields)

	out := orderedmap.New()
	emit := func(key string, value any) error {
		if _, exists := out.Get(key); exists && opts.Policy == PolicyError {
			return &KeyCollisionError{Key: key}
		}
		out.Set(key, value)
		return nil
	}

	for _, key := range rec.Keys() {
		value, _ := rec.Get(key)
		nested, isObject := value.(*orderedmap.OrderedMap)
		if !isObject || (designated != nil && !designated[key]) {
			if err := emit(key, value); err != nil {
				return nil, err
			}
			continue
		}
		for _, child := range nested.Keys() {
			childValue, _ := nested.Get(child)
			if err := emit(key+"_"+child, childValue); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// Table applies Record to every row, preserving order and length. The
// first failing row fails the whole table; there is no partial result.
func Table(rows document.Table, opts Options) (document.Table, error) {
	out := make(document.Table, len(rows))
	for i, rec := range rows {
		flat, err := Record(rec, opts)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = flat
	}
	return out, nil
}

// fieldSet converts the designated field list to a lookup set, or nil
// when every object-valued field is designated.
func fieldSet(fields []string) map[string]bool {
	if len(fields) == 0 {
		return nil
	}
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}
