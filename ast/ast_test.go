package ast

import (
	"testing"

	"github.com/KimNorgaard/go-prototxt/token"
	"github.com/stretchr/testify/require"
)

func ident(name string) *Identifier {
	return &Identifier{Token: token.Token{Type: token.IDENT, Literal: name}, Value: name}
}

func TestString(t *testing.T) {
	file := &File{
		Entries: []Entry{
			&Comment{Token: token.Token{Type: token.COMMENT, Literal: "header"}, Text: "header"},
			&Message{
				Key:   ident("componentParam"),
				Colon: true,
				Body: []Entry{
					&Pair{
						Key: ident("name"),
						Value: &StringLiteral{
							Token: token.Token{Type: token.STRING, Literal: "PreProcess"},
							Quote: '\'',
							Value: "PreProcess",
						},
					},
					&Pair{Key: ident("type"), Value: ident("PreProcess")},
					&Pair{Key: ident("enabled"), Value: &BooleanLiteral{Value: true}},
					&Pair{Key: ident("weight"), Value: &NumberLiteral{Token: token.Token{Literal: "2.50"}, Value: 2.5}},
					&Pair{Key: ident("extra"), Value: &NullLiteral{}},
				},
			},
		},
	}

	expected := "# header\n" +
		"componentParam {\n" +
		"  name: 'PreProcess'\n" +
		"  type: PreProcess\n" +
		"  enabled: true\n" +
		"  weight: 2.50\n" +
		"  extra: null\n" +
		"}\n"
	require.Equal(t, expected, file.String())
	require.Equal(t, "componentParam { name: 'PreProcess' type: PreProcess enabled: true weight: 2.50 extra: null }",
		file.Entries[1].String())
}

func TestStringLiteralDefaultQuote(t *testing.T) {
	s := &StringLiteral{Token: token.Token{Literal: `a\"b`}, Value: `a"b`}
	require.Equal(t, `"a\"b"`, s.String())
}

func TestFilePos(t *testing.T) {
	require.Equal(t, token.Position{Line: 1, Column: 1}, (&File{}).Pos())

	key := ident("a")
	key.Token.Pos = token.Position{Offset: 4, Line: 2, Column: 3}
	file := &File{Entries: []Entry{&Pair{Key: key, Value: &NullLiteral{}}}}
	require.Equal(t, key.Token.Pos, file.Pos())
}
