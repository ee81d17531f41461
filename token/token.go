package token

import "fmt"

// Type is the type of a token.
type Type string

// Position describes a location in the source text.
type Position struct {
	Offset int // byte offset, starting at 0
	Line   int // line number, starting at 1
	Column int // column number in runes, starting at 1
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token represents a lexical token.
type Token struct {
	Type    Type
	Literal string
	Pos     Position
}

const (
	// Special tokens
	ILLEGAL Type = "ILLEGAL"
	EOF     Type = "EOF"

	// Literals
	IDENT  Type = "IDENT"  // name, node_type, LOCAL
	NUMBER Type = "NUMBER" // -1.5e3
	STRING Type = "STRING" // "hello" or 'hello'

	// Delimiters
	LBRACE Type = "{"
	RBRACE Type = "}"
	COLON  Type = ":"

	// Keywords
	TRUE  Type = "TRUE"
	FALSE Type = "FALSE"
	NULL  Type = "NULL"

	COMMENT Type = "COMMENT" // # a comment
)

var keywords = map[string]Type{
	"true":  TRUE,
	"false": FALSE,
	"null":  NULL,
}

// LookupKeyword returns the keyword token type for word, if any.
func LookupKeyword(word string) (Type, bool) {
	t, ok := keywords[word]
	return t, ok
}
