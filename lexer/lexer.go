package lexer

import (
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/KimNorgaard/go-prototxt/token"
)

// Lexer provides the tokenizer rules the grammar is built from. It does not
// produce a token stream up front; each rule tries to match at the current
// offset and either consumes its text (plus any trailing whitespace) or
// leaves the offset untouched and records what it expected there.
type Lexer struct {
	input      []byte
	pos        int
	lineStarts []int

	// furthest failure seen so far and the rules that failed there
	furthest int
	expected map[string]struct{}
}

// New creates and returns a new Lexer over input.
func New(input []byte) *Lexer {
	l := &Lexer{
		input:      input,
		lineStarts: []int{0},
		furthest:   -1,
		expected:   make(map[string]struct{}),
	}
	for i, b := range input {
		if b == '\n' {
			l.lineStarts = append(l.lineStarts, i+1)
		}
	}
	return l
}

// Offset returns the current byte offset.
func (l *Lexer) Offset() int { return l.pos }

// Reset moves the lexer back to offset, which must come from Offset.
func (l *Lexer) Reset(offset int) { l.pos = offset }

// AtEOF reports whether the whole input has been consumed.
func (l *Lexer) AtEOF() bool { return l.pos >= len(l.input) }

// Position converts a byte offset into a line/column position.
func (l *Lexer) Position(offset int) token.Position {
	if offset > len(l.input) {
		offset = len(l.input)
	}
	line := sort.Search(len(l.lineStarts), func(i int) bool {
		return l.lineStarts[i] > offset
	}) - 1
	start := l.lineStarts[line]
	return token.Position{
		Offset: offset,
		Line:   line + 1,
		Column: utf8.RuneCount(l.input[start:offset]) + 1,
	}
}

// Expect records that desc was expected at offset. Only the furthest
// offset is kept; expectations at the same offset accumulate.
func (l *Lexer) Expect(offset int, desc string) {
	switch {
	case offset > l.furthest:
		l.furthest = offset
		l.expected = map[string]struct{}{desc: {}}
	case offset == l.furthest:
		l.expected[desc] = struct{}{}
	}
}

// Expectations is a saved copy of the failure state, see Save.
type Expectations struct {
	furthest int
	expected map[string]struct{}
}

// Save returns a snapshot of the recorded failures.
func (l *Lexer) Save() Expectations {
	cp := make(map[string]struct{}, len(l.expected))
	for k := range l.expected {
		cp[k] = struct{}{}
	}
	return Expectations{furthest: l.furthest, expected: cp}
}

// Restore replaces the recorded failures with a snapshot from Save.
func (l *Lexer) Restore(e Expectations) {
	l.furthest = e.furthest
	l.expected = e.expected
}

// Furthest returns the position of the furthest failure and the sorted
// descriptions of what was expected there.
func (l *Lexer) Furthest() (token.Position, []string) {
	offset := l.furthest
	if offset < 0 {
		offset = l.pos
	}
	list := make([]string, 0, len(l.expected))
	for k := range l.expected {
		list = append(list, k)
	}
	sort.Strings(list)
	return l.Position(offset), list
}

// Snippet returns a short excerpt of the input starting at offset, for
// error messages.
func (l *Lexer) Snippet(offset int) string {
	if offset >= len(l.input) {
		return ""
	}
	end := offset
	for n := 0; end < len(l.input) && n < 12; n++ {
		r, size := utf8.DecodeRune(l.input[end:])
		if isSpace(r) {
			break
		}
		end += size
	}
	if end == offset {
		_, size := utf8.DecodeRune(l.input[offset:])
		end += size
	}
	return string(l.input[offset:end])
}

// SkipWhitespace consumes zero or more whitespace characters, newlines
// included. It never fails.
func (l *Lexer) SkipWhitespace() {
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRune(l.input[l.pos:])
		if !isSpace(r) {
			return
		}
		l.pos += size
	}
}

// token builds a token for input[start:end], moves past it and skips the
// whitespace that follows.
func (l *Lexer) token(typ token.Type, start, end int, literal string) token.Token {
	tok := token.Token{Type: typ, Literal: literal, Pos: l.Position(start)}
	l.pos = end
	l.SkipWhitespace()
	return tok
}

// Word matches the literal lit.
func (l *Lexer) Word(lit string, typ token.Type) (token.Token, bool) {
	end := l.pos + len(lit)
	if end > len(l.input) || string(l.input[l.pos:end]) != lit {
		l.Expect(l.pos, "'"+lit+"'")
		return token.Token{}, false
	}
	return l.token(typ, l.pos, end, lit), true
}

// Keyword matches one of the keywords true, false or null. Like Word it
// matches a prefix: "nullable" yields null and leaves "able" unread.
func (l *Lexer) Keyword(word string) (token.Token, bool) {
	typ, ok := token.LookupKeyword(word)
	if !ok {
		return token.Token{}, false
	}
	return l.Word(word, typ)
}

// Identifier matches [A-Za-z_-][A-Za-z0-9_+-]*.
func (l *Lexer) Identifier() (token.Token, bool) {
	start := l.pos
	if start >= len(l.input) || !isIdentStart(l.input[start]) {
		l.Expect(start, "identifier")
		return token.Token{}, false
	}
	end := start + 1
	for end < len(l.input) && isIdentChar(l.input[end]) {
		end++
	}
	return l.token(token.IDENT, start, end, string(l.input[start:end])), true
}

// Number matches -?(0|[1-9][0-9]*)([.][0-9]+)?([eE][+-]?[0-9]+)? and
// returns the matched text. A leading zero only ever matches on its own,
// so "01" yields "0" and leaves "1" unread.
func (l *Lexer) Number() (token.Token, bool) {
	start := l.pos
	i := start
	if i < len(l.input) && l.input[i] == '-' {
		i++
	}
	switch {
	case i < len(l.input) && l.input[i] == '0':
		i++
	case i < len(l.input) && l.input[i] >= '1' && l.input[i] <= '9':
		i = l.digits(i + 1)
	default:
		l.Expect(start, "number")
		return token.Token{}, false
	}
	if i+1 < len(l.input) && l.input[i] == '.' && isDigit(l.input[i+1]) {
		i = l.digits(i + 1)
	}
	if i < len(l.input) && (l.input[i] == 'e' || l.input[i] == 'E') {
		j := i + 1
		if j < len(l.input) && (l.input[j] == '+' || l.input[j] == '-') {
			j++
		}
		if j < len(l.input) && isDigit(l.input[j]) {
			i = l.digits(j)
		}
	}
	return l.token(token.NUMBER, start, i, string(l.input[start:i])), true
}

// QuotedString matches a single or double quoted string on one line. A
// backslash always takes the next character with it, so an escaped quote
// does not end the string. The token literal is the raw text between the
// quotes; the quote character is returned alongside.
func (l *Lexer) QuotedString() (token.Token, byte, bool) {
	start := l.pos
	if start >= len(l.input) || (l.input[start] != '"' && l.input[start] != '\'') {
		l.Expect(start, "string")
		return token.Token{}, 0, false
	}
	quote := l.input[start]
	i := start + 1
	for i < len(l.input) {
		c := l.input[i]
		switch {
		case c == quote:
			return l.token(token.STRING, start, i+1, string(l.input[start+1:i])), quote, true
		case isLineTerminator(c):
			l.Expect(start, "string")
			return token.Token{}, 0, false
		case c == '\\':
			if i+1 >= len(l.input) || isLineTerminator(l.input[i+1]) {
				l.Expect(start, "string")
				return token.Token{}, 0, false
			}
			_, size := utf8.DecodeRune(l.input[i+1:])
			i += 1 + size
		default:
			_, size := utf8.DecodeRune(l.input[i:])
			i += size
		}
	}
	l.Expect(start, "string")
	return token.Token{}, 0, false
}

// Comment matches optional leading whitespace, '#', blanks, and the rest
// of the line. The literal is the text after the blanks.
func (l *Lexer) Comment() (token.Token, bool) {
	start := l.pos
	l.SkipWhitespace()
	hash := l.pos
	if hash >= len(l.input) || l.input[hash] != '#' {
		l.pos = start
		l.Expect(start, "comment")
		return token.Token{}, false
	}
	i := hash + 1
	for i < len(l.input) && (l.input[i] == ' ' || l.input[i] == '\t') {
		i++
	}
	text := i
	for i < len(l.input) && !isLineTerminator(l.input[i]) {
		i++
	}
	tok := token.Token{Type: token.COMMENT, Literal: string(l.input[text:i]), Pos: l.Position(hash)}
	l.pos = i
	return tok, true
}

// EOF matches the end of input.
func (l *Lexer) EOF() (token.Token, bool) {
	if !l.AtEOF() {
		l.Expect(l.pos, "EOF")
		return token.Token{}, false
	}
	return token.Token{Type: token.EOF, Pos: l.Position(l.pos)}, true
}

func (l *Lexer) digits(i int) int {
	for i < len(l.input) && isDigit(l.input[i]) {
		i++
	}
	return i
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isIdentStart(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_' || c == '-'
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c) || c == '+'
}

// isSpace reports whether r is whitespace in the sense of a JavaScript
// regexp \s: the Unicode space characters and the byte order mark, but not
// U+0085.
func isSpace(r rune) bool {
	switch r {
	case '\uFEFF':
		return true
	case '\u0085':
		return false
	}
	return unicode.IsSpace(r)
}

func isLineTerminator(c byte) bool {
	return c == '\n' || c == '\r'
}
