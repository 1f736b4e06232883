package jsonpath

import (
	"fmt"
	"strconv"
)

// Parser parses path expressions into segment lists
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser creates a new parser
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// current returns the current token
func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF, Value: ""}
	}
	return p.tokens[p.pos]
}

// advance moves to the next token
func (p *Parser) advance() {
	p.pos++
}

// Parse parses a path expression
func Parse(expr string) ([]Segment, error) {
	if err := ValidatePath(expr); err != nil {
		return nil, err
	}

	tokens := Tokenize(expr)
	parser := NewParser(tokens)
	return parser.parsePath()
}

// parsePath parses: [.]segment([index])*(.segment([index])*)*
func (p *Parser) parsePath() ([]Segment, error) {
	segments := make([]Segment, 0, 4)

	// Tolerate one leading dot, so paths copied from jf-style output work.
	if p.current().Type == TokenDot {
		p.advance()
	}
	if p.current().Type == TokenEOF {
		return nil, ErrEmptyPath
	}

	for {
		switch p.current().Type {
		case TokenIdent, TokenString:
			key := p.current().Value
			if err := ValidateKey(key); err != nil {
				return nil, err
			}
			segments = append(segments, Segment{Key: key})
			p.advance()
		case TokenLeftBracket:
			seg, err := p.parseIndex()
			if err != nil {
				return nil, err
			}
			segments = append(segments, seg)
		default:
			return nil, fmt.Errorf("unexpected %q in path", p.current().Value)
		}

		if p.current().Type == TokenDot {
			p.advance()
			// A trailing or doubled dot must still be followed by a key.
			if t := p.current().Type; t != TokenIdent && t != TokenString {
				return nil, fmt.Errorf("expected key after '.', got %q", p.current().Value)
			}
			continue
		}
		if p.current().Type == TokenLeftBracket {
			continue
		}
		break
	}

	if p.current().Type != TokenEOF {
		return nil, fmt.Errorf("unexpected %q after path", p.current().Value)
	}
	if err := ValidateSegments(segments); err != nil {
		return nil, err
	}
	return segments, nil
}

// parseIndex parses: [n]
func (p *Parser) parseIndex() (Segment, error) {
	p.advance() // consume '['

	tok := p.current()
	if tok.Type != TokenNumber {
		return Segment{}, fmt.Errorf("expected array index, got %q", tok.Value)
	}
	index, err := strconv.Atoi(tok.Value)
	if err != nil {
		return Segment{}, fmt.Errorf("invalid array index %q", tok.Value)
	}
	p.advance()

	if p.current().Type != TokenRightBracket {
		return Segment{}, fmt.Errorf("expected ']' after index, got %q", p.current().Value)
	}
	p.advance()

	return Segment{Index: index, IsIndex: true}, nil
}
