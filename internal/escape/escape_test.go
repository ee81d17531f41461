package escape

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnescape(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{`plain`, "plain"},
		{`a\nb`, "a\nb"},
		{`\t\r\v\f\a\b`, "\t\r\v\f\a\b"},
		{`\\ \' \" \?`, `\ ' " ?`},
		{`\x41\x4a`, "AJ"},
		{`\x7`, "\x07"},
		{`\101\0`, "A\x00"},
		{`é\U0001F600`, "é😀"},
		{`\q`, `\q`},
		{`\x`, `\x`},
		{`\ud800`, `\ud800`},
		{`trailing\`, `trailing\`},
		{`\é`, `\é`},
	}
	for _, tt := range tests {
		require.Equal(t, tt.out, Unescape(tt.in), "Unescape(%q)", tt.in)
	}
}

func TestEscape(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"plain", "plain"},
		{"it's", "it's"},
		{`say "hi"`, `say \"hi\"`},
		{`back\slash`, `back\\slash`},
		{"a\nb\tc\vd\re", `a\nb\tc\vd\re`},
		{"\x00\x1b\u0085", `\x00\x1b\x85`},
		{"é😀", "é😀"},
		{"bad\xffbyte", "bad\xffbyte"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.out, Escape(tt.in), "Escape(%q)", tt.in)
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	for _, s := range []string{"", "a\nb", `\q`, "\x00\a\u0090", `"\"'`, "\xfe\xff", "tab\there"} {
		require.Equal(t, s, Unescape(Escape(s)), "%q", s)
	}
}

func TestQuotes(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{`plain`, `plain`},
		{`a\nb \" \\`, `a\nb \" \\`},
		{`say "hi"`, `say \"hi\"`},
		{`it\'s`, `it\'s`},
		{"line\nbreak\r", `line\nbreak\r`},
		{`trailing\`, `trailing\\`},
	}
	for _, tt := range tests {
		require.Equal(t, tt.out, Quotes(tt.in), "Quotes(%q)", tt.in)
	}
}

func TestLegacy(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"plain", "plain"},
		{"it's", `it\'s`},
		{`a\nb`, `a\\nb`},
		{"a\rb", `a\x0db`},
		{"a\tb", `a\tb`},
	}
	for _, tt := range tests {
		require.Equal(t, tt.out, Legacy(tt.in), "Legacy(%q)", tt.in)
	}
}
