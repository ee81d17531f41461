// Package escape converts string contents between their quoted text form
// and their literal value.
package escape

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Unescape decodes the escape sequences in the raw text between a pair of
// quotes. Recognized sequences are \a \b \f \n \r \t \v \\ \' \" \?, \xHH,
// one to three octal digits, \uHHHH and \UHHHHHHHH. Hex escapes name code
// points, matching what Escape produces. Anything else is kept as written,
// backslash included.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			i++
			continue
		}
		r, n, ok := decodeOne(s[i+1:])
		if !ok {
			b.WriteByte('\\')
			i++
			continue
		}
		b.WriteRune(r)
		i += 1 + n
	}
	return b.String()
}

func decodeOne(s string) (r rune, n int, ok bool) {
	switch c := s[0]; c {
	case 'a':
		return '\a', 1, true
	case 'b':
		return '\b', 1, true
	case 'f':
		return '\f', 1, true
	case 'n':
		return '\n', 1, true
	case 'r':
		return '\r', 1, true
	case 't':
		return '\t', 1, true
	case 'v':
		return '\v', 1, true
	case '\\', '\'', '"', '?':
		return rune(c), 1, true
	case 'x', 'X':
		return hex(s[1:], 1, 2)
	case 'u':
		return hex(s[1:], 4, 4)
	case 'U':
		return hex(s[1:], 8, 8)
	case '0', '1', '2', '3', '4', '5', '6', '7':
		var v rune
		n := 0
		for n < 3 && n < len(s) && s[n] >= '0' && s[n] <= '7' {
			v = v*8 + rune(s[n]-'0')
			n++
		}
		return v, n, true
	}
	return 0, 0, false
}

// hex reads between min and max hex digits. The returned width includes
// the escape letter.
func hex(s string, min, max int) (rune, int, bool) {
	var v rune
	n := 0
	for n < max && n < len(s) {
		d, ok := hexDigit(s[n])
		if !ok {
			break
		}
		v = v*16 + d
		n++
	}
	if n < min || !utf8.ValidRune(v) {
		return 0, 0, false
	}
	return v, n + 1, true
}

func hexDigit(c byte) (rune, bool) {
	switch {
	case '0' <= c && c <= '9':
		return rune(c - '0'), true
	case 'a' <= c && c <= 'f':
		return rune(c-'a') + 10, true
	case 'A' <= c && c <= 'F':
		return rune(c-'A') + 10, true
	}
	return 0, false
}

// Escape renders s for use between double quotes. Backslashes, double
// quotes and the common control characters get their short escapes; other
// C0 and C1 control characters become \xHH. Bytes that are not valid UTF-8
// are copied through unchanged.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteByte(s[i])
			i++
			continue
		}
		i += size
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\v':
			b.WriteString(`\v`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if isControl(r) {
				fmt.Fprintf(&b, `\x%02x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Quotes prepares raw string text for double quotes: escape sequences
// already in the text are kept, bare double quotes and line breaks are
// escaped, and a trailing lone backslash is doubled.
func Quotes(s string) string {
	if !strings.ContainsAny(s, "\"\\\n\r") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 2)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			if i+1 < len(s) && s[i+1] != '\n' && s[i+1] != '\r' {
				b.WriteByte(c)
				b.WriteByte(s[i+1])
				i++
				continue
			}
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Legacy applies the older escaping transform: on top of Escape it also
// escapes single quotes and writes carriage returns as \x0d. Text that
// already contains escape sequences gets escaped a second time.
func Legacy(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\'':
			b.WriteString(`\'`)
		case '\r':
			b.WriteString(`\x0d`)
		default:
			b.WriteString(Escape(string(r)))
		}
	}
	return b.String()
}

func isControl(r rune) bool {
	return (r >= 0x00 && r <= 0x1f) || (r >= 0x80 && r <= 0x9f)
}
