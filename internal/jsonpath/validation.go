package jsonpath

import (
	"errors"
	"fmt"
)

// Validation constants to bound attacker-controlled path expressions
const (
	// MaxPathLength is the maximum allowed path expression length
	MaxPathLength = 4096

	// MaxSegments is the maximum number of segments in a path
	MaxSegments = 64

	// MaxKeyLength is the maximum length for a single key
	MaxKeyLength = 256
)

var (
	// ErrEmptyPath is returned when a path expression has no segments
	ErrEmptyPath = errors.New("path cannot be empty")

	// ErrPathTooLong is returned when a path exceeds MaxPathLength
	ErrPathTooLong = errors.New("path too long")

	// ErrTooManySegments is returned when a path has too many segments
	ErrTooManySegments = errors.New("too many path segments")

	// ErrKeyTooLong is returned when a key is too long
	ErrKeyTooLong = errors.New("key too long")
)

// ValidatePath validates the raw path expression length
func ValidatePath(expr string) error {
	if expr == "" {
		return ErrEmptyPath
	}
	if len(expr) > MaxPathLength {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrPathTooLong, len(expr), MaxPathLength)
	}
	return nil
}

// ValidateKey validates a single key segment
func ValidateKey(key string) error {
	if len(key) > MaxKeyLength {
		return fmt.Errorf("%w: %d chars (max %d)", ErrKeyTooLong, len(key), MaxKeyLength)
	}
	return nil
}

// ValidateSegments validates the parsed segment count
func ValidateSegments(segments []Segment) error {
	if len(segments) > MaxSegments {
		return fmt.Errorf("%w: %d segments (max %d)", ErrTooManySegments, len(segments), MaxSegments)
	}
	return nil
}
