package jsonpath

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes path expressions
type Lexer struct {
	input string
	pos   int
	ch    rune
}

// NewLexer creates a new lexer
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// readChar reads the next character. Keys come from arbitrary UTF-8
// JSON, so this decodes full runes rather than single bytes.
func (l *Lexer) readChar() {
	if l.pos >= len(l.input) {
		l.ch = 0
		l.pos++
		return
	}
	r, width := utf8.DecodeRuneInString(l.input[l.pos:])
	l.ch = r
	l.pos += width
}

// readString reads a double-quoted key
func (l *Lexer) readString() string {
	var result strings.Builder
	l.readChar() // skip opening quote

	for l.ch != '"' && l.ch != 0 {
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case '\\':
				result.WriteRune('\\')
			case '"':
				result.WriteRune('"')
			default:
				result.WriteRune(l.ch)
			}
		} else {
			result.WriteRune(l.ch)
		}
		l.readChar()
	}

	if l.ch == '"' {
		l.readChar() // skip closing quote
	}

	return result.String()
}

// readNumber reads an array index
func (l *Lexer) readNumber() string {
	var result strings.Builder
	for unicode.IsDigit(l.ch) {
		result.WriteRune(l.ch)
		l.readChar()
	}
	return result.String()
}

// readIdentifier reads an unquoted key
func (l *Lexer) readIdentifier() string {
	var result strings.Builder
	for unicode.IsLetter(l.ch) || unicode.IsDigit(l.ch) || l.ch == '_' || l.ch == '-' || l.ch == '$' {
		result.WriteRune(l.ch)
		l.readChar()
	}
	return result.String()
}

// NextToken returns the next token
func (l *Lexer) NextToken() Token {
	var tok Token

	switch l.ch {
	case 0:
		tok = Token{Type: TokenEOF, Value: ""}
	case '.':
		tok = Token{Type: TokenDot, Value: "."}
		l.readChar()
	case '[':
		tok = Token{Type: TokenLeftBracket, Value: "["}
		l.readChar()
	case ']':
		tok = Token{Type: TokenRightBracket, Value: "]"}
		l.readChar()
	case '"':
		tok = Token{Type: TokenString, Value: l.readString()}
	default:
		if unicode.IsDigit(l.ch) {
			tok = Token{Type: TokenNumber, Value: l.readNumber()}
		} else if unicode.IsLetter(l.ch) || l.ch == '_' || l.ch == '$' {
			tok = Token{Type: TokenIdent, Value: l.readIdentifier()}
		} else {
			tok = Token{Type: TokenError, Value: string(l.ch)}
			l.readChar()
		}
	}

	return tok
}

// Tokenize returns all tokens from the input
func Tokenize(input string) []Token {
	lexer := NewLexer(input)
	var tokens []Token

	for {
		tok := lexer.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF || tok.Type == TokenError {
			break
		}
	}

	return tokens
}
