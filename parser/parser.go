package parser

import (
	"fmt"
	"strconv"

	"github.com/KimNorgaard/go-prototxt/ast"
	perrors "github.com/KimNorgaard/go-prototxt/errors"
	"github.com/KimNorgaard/go-prototxt/internal/escape"
	"github.com/KimNorgaard/go-prototxt/lexer"
	"github.com/KimNorgaard/go-prototxt/token"
)

// EscapeMode selects the transform applied to the text of quoted strings.
type EscapeMode int

const (
	// DecodeEscapes turns escape sequences into the characters they stand
	// for.
	DecodeEscapes EscapeMode = iota
	// LegacyEscapes re-escapes the raw text instead, so "a\nb" keeps its
	// backslash and gains another one.
	LegacyEscapes
	// RawStrings keeps the text exactly as written between the quotes.
	RawStrings
)

// Option configures a Parser.
type Option func(*Parser)

// WithEscapeMode sets the string escape transform.
func WithEscapeMode(m EscapeMode) Option {
	return func(p *Parser) { p.escapes = m }
}

// WithMaxDepth limits message nesting. Zero means no limit.
func WithMaxDepth(n int) Option {
	return func(p *Parser) { p.maxDepth = n }
}

// Parser is a recursive descent parser with ordered choice and full
// backtracking. Every alternative is tried from the same offset; the first
// one that matches wins.
type Parser struct {
	l *lexer.Lexer

	escapes  EscapeMode
	maxDepth int
	depth    int

	// err aborts the parse regardless of backtracking
	err *perrors.ParseError
}

// New creates a new parser.
func New(l *lexer.Lexer, opts ...Option) *Parser {
	p := &Parser{l: l}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses the whole input. It fails with a *errors.ParseError unless
// the entries cover the input from start to end.
func (p *Parser) Parse() (*ast.File, error) {
	entries := p.parseExp()
	if p.err != nil {
		return nil, p.err
	}
	if _, ok := p.l.EOF(); !ok {
		return nil, p.failure()
	}
	return &ast.File{Entries: entries}, nil
}

func (p *Parser) failure() *perrors.ParseError {
	pos, expected := p.l.Furthest()
	msg := "unexpected end of input"
	if s := p.l.Snippet(pos.Offset); s != "" {
		msg = fmt.Sprintf("unexpected %q", s)
	}
	return &perrors.ParseError{
		Message:  msg,
		Offset:   pos.Offset,
		Line:     pos.Line,
		Column:   pos.Column,
		Expected: expected,
	}
}

// parseExp parses zero or more pairs, messages and comments, each with the
// whitespace around it trimmed.
func (p *Parser) parseExp() []ast.Entry {
	entries := []ast.Entry{}
	for p.err == nil {
		start := p.l.Offset()
		p.l.SkipWhitespace()
		entry, ok := p.parseEntry()
		if !ok {
			p.l.Reset(start)
			break
		}
		p.l.SkipWhitespace()
		entries = append(entries, entry)
	}
	return entries
}

func (p *Parser) parseEntry() (ast.Entry, bool) {
	start := p.l.Offset()
	if pair, ok := p.parsePair(); ok {
		return pair, true
	}
	p.l.Reset(start)
	if msg, ok := p.parseMessage(); ok {
		return msg, true
	}
	p.l.Reset(start)
	if p.err != nil {
		return nil, false
	}
	tok, ok := p.l.Comment()
	if !ok {
		return nil, false
	}
	return &ast.Comment{Token: tok, Text: tok.Literal}, true
}

// pair := identifier ":" value
func (p *Parser) parsePair() (*ast.Pair, bool) {
	key, ok := p.parseIdentifier()
	if !ok {
		return nil, false
	}
	if _, ok := p.l.Word(":", token.COLON); !ok {
		return nil, false
	}
	value, ok := p.parseValue()
	if !ok {
		return nil, false
	}
	return &ast.Pair{Key: key, Value: value}, true
}

// message := identifier [":"] "{" exp "}"
func (p *Parser) parseMessage() (*ast.Message, bool) {
	key, ok := p.parseIdentifier()
	if !ok {
		return nil, false
	}
	msg := &ast.Message{Key: key}
	if _, ok := p.l.Word(":", token.COLON); ok {
		msg.Colon = true
	}
	if msg.Lbrace, ok = p.l.Word("{", token.LBRACE); !ok {
		return nil, false
	}

	p.depth++
	defer func() { p.depth-- }()
	if p.maxDepth > 0 && p.depth > p.maxDepth {
		p.err = &perrors.ParseError{
			Message: fmt.Sprintf("maximum nesting depth of %d exceeded", p.maxDepth),
			Offset:  msg.Lbrace.Pos.Offset,
			Line:    msg.Lbrace.Pos.Line,
			Column:  msg.Lbrace.Pos.Column,
		}
		return nil, false
	}

	msg.Body = p.parseExp()
	if p.err != nil {
		return nil, false
	}
	if msg.Rbrace, ok = p.l.Word("}", token.RBRACE); !ok {
		return nil, false
	}
	return msg, true
}

func (p *Parser) parseIdentifier() (*ast.Identifier, bool) {
	tok, ok := p.l.Identifier()
	if !ok {
		return nil, false
	}
	return &ast.Identifier{Token: tok, Value: tok.Literal}, true
}

// value := number | null | true | false | string | identifier
//
// A failing value is reported as "value" rather than as the list of its
// alternatives.
func (p *Parser) parseValue() (ast.Value, bool) {
	p.l.SkipWhitespace()
	start := p.l.Offset()
	saved := p.l.Save()

	if v, ok := p.parseNumber(); ok {
		return v, true
	}
	for _, kw := range []string{"null", "true", "false"} {
		if tok, ok := p.l.Keyword(kw); ok {
			if tok.Type == token.NULL {
				return &ast.NullLiteral{Token: tok}, true
			}
			return &ast.BooleanLiteral{Token: tok, Value: tok.Type == token.TRUE}, true
		}
	}
	if v, ok := p.parseString(); ok {
		return v, true
	}
	if v, ok := p.parseIdentifier(); ok {
		return v, true
	}

	p.l.Restore(saved)
	p.l.Expect(start, "value")
	return nil, false
}

func (p *Parser) parseNumber() (*ast.NumberLiteral, bool) {
	tok, ok := p.l.Number()
	if !ok {
		return nil, false
	}
	// The lexer only hands out well-formed decimal literals, so the only
	// possible error is a range error, for which v is already ±Inf.
	v, _ := strconv.ParseFloat(tok.Literal, 64)
	return &ast.NumberLiteral{Token: tok, Value: v}, true
}

func (p *Parser) parseString() (*ast.StringLiteral, bool) {
	tok, quote, ok := p.l.QuotedString()
	if !ok {
		return nil, false
	}
	lit := &ast.StringLiteral{Token: tok, Quote: quote}
	switch p.escapes {
	case LegacyEscapes:
		lit.Value = escape.Legacy(tok.Literal)
	case RawStrings:
		lit.Value = tok.Literal
	default:
		lit.Value = escape.Unescape(tok.Literal)
	}
	return lit, true
}
