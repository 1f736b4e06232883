// Package jsonpath provides navigation from a root JSON value to a nested
// value using dotted path expressions.
//
// A path is a sequence of key and index lookups, e.g.:
//
//	response.docs
//	docs[0].headline
//	"weird.key".inner
//
// Key segments are dot-separated identifiers; keys containing dots, spaces
// or other punctuation can be double-quoted. Index segments use [n]. The
// package includes a lexer for tokenization, a parser producing segment
// lists, and an extractor performing the lookups.
//
// Example usage:
//
//	docs, err := jsonpath.Extract(doc, "response.docs")
//	if err != nil {
//	    log.Fatal(err)
//	}
package jsonpath

// TokenType represents the type of a token
type TokenType int

const (
	TokenDot TokenType = iota
	TokenLeftBracket
	TokenRightBracket

	// Literals
	TokenIdent
	TokenString
	TokenNumber

	// Special
	TokenEOF
	TokenError
)

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Value string
}

// Segment is one step of a parsed path: a key lookup in an object, or an
// index lookup in an array when IsIndex is set.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}
