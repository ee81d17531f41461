package ast

import (
	"strconv"
	"strings"

	"github.com/KimNorgaard/go-prototxt/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	// Pos returns the position of the node's first token.
	Pos() token.Position
	// String returns a string representation of the node.
	String() string
}

// Entry is one item in a message body or at the top level: a Pair, a
// Message or a Comment.
type Entry interface {
	Node
	entryNode()
}

// Value is a scalar on the right hand side of a Pair.
type Value interface {
	Node
	valueNode()
}

// File is the root node of a parsed document.
type File struct {
	Entries []Entry
}

func (f *File) Pos() token.Position {
	if len(f.Entries) > 0 {
		return f.Entries[0].Pos()
	}
	return token.Position{Line: 1, Column: 1}
}

// String renders the file with one entry per line, nested bodies indented
// by two spaces. Comments are kept.
func (f *File) String() string {
	var b strings.Builder
	writeEntries(&b, f.Entries, 0)
	return b.String()
}

func writeEntries(b *strings.Builder, entries []Entry, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, e := range entries {
		b.WriteString(indent)
		if m, ok := e.(*Message); ok {
			b.WriteString(m.Key.Value + " {\n")
			writeEntries(b, m.Body, depth+1)
			b.WriteString(indent + "}\n")
			continue
		}
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
}

// Pair is an "identifier: value" entry.
type Pair struct {
	Key   *Identifier
	Value Value
}

func (p *Pair) entryNode()          {}
func (p *Pair) Pos() token.Position { return p.Key.Pos() }
func (p *Pair) String() string      { return p.Key.Value + ": " + p.Value.String() }

// Message is an "identifier [:] { ... }" entry.
type Message struct {
	Key    *Identifier
	Colon  bool // written as "key: { ... }"
	Lbrace token.Token
	Rbrace token.Token
	Body   []Entry
}

func (m *Message) entryNode()          {}
func (m *Message) Pos() token.Position { return m.Key.Pos() }
func (m *Message) String() string {
	parts := make([]string, 0, len(m.Body))
	for _, e := range m.Body {
		parts = append(parts, e.String())
	}
	if len(parts) == 0 {
		return m.Key.Value + " {}"
	}
	return m.Key.Value + " { " + strings.Join(parts, " ") + " }"
}

// Comment is a "# text" line.
type Comment struct {
	Token token.Token
	Text  string
}

func (c *Comment) entryNode()          {}
func (c *Comment) Pos() token.Position { return c.Token.Pos }
func (c *Comment) String() string      { return "# " + c.Text }

// Identifier is a bare word. It is used for keys and for unquoted values.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) valueNode()          {}
func (i *Identifier) Pos() token.Position { return i.Token.Pos }
func (i *Identifier) String() string      { return i.Value }

// NullLiteral represents null.
type NullLiteral struct {
	Token token.Token
}

func (n *NullLiteral) valueNode()          {}
func (n *NullLiteral) Pos() token.Position { return n.Token.Pos }
func (n *NullLiteral) String() string      { return "null" }

// BooleanLiteral represents true or false.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) valueNode()          {}
func (b *BooleanLiteral) Pos() token.Position { return b.Token.Pos }
func (b *BooleanLiteral) String() string      { return strconv.FormatBool(b.Value) }

// NumberLiteral represents a number. All numbers are doubles.
type NumberLiteral struct {
	Token token.Token
	Value float64
}

func (n *NumberLiteral) valueNode()          {}
func (n *NumberLiteral) Pos() token.Position { return n.Token.Pos }
func (n *NumberLiteral) String() string      { return n.Token.Literal }

// StringLiteral represents a quoted string. Token.Literal holds the text
// as written between the quotes, Value the text after the escape
// transform.
type StringLiteral struct {
	Token token.Token
	Quote byte
	Value string
}

func (s *StringLiteral) valueNode()          {}
func (s *StringLiteral) Pos() token.Position { return s.Token.Pos }
func (s *StringLiteral) String() string {
	q := string(s.Quote)
	if q == "\x00" {
		q = `"`
	}
	return q + s.Token.Literal + q
}
