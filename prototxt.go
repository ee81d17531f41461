package prototxt

import (
	"github.com/KimNorgaard/go-prototxt/ast"
	"github.com/KimNorgaard/go-prototxt/lexer"
	"github.com/KimNorgaard/go-prototxt/parser"
)

// Parse parses data into a Document. The whole input must match; on
// failure the error is a *ParseError describing the first position that
// could not be matched.
func Parse(data []byte, opts ...Option) (*Document, error) {
	file, err := ParseAST(data, opts...)
	if err != nil {
		return nil, err
	}
	return Build(file.Entries), nil
}

// ParseString is like Parse for string input.
func ParseString(s string, opts ...Option) (*Document, error) {
	return Parse([]byte(s), opts...)
}

// ParseAST parses data into its syntax tree. Unlike Parse it keeps
// comments, source positions and the quoting of strings.
func ParseAST(data []byte, opts ...Option) (*ast.File, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	p := parser.New(lexer.New(data), o.parserOptions()...)
	return p.Parse()
}
