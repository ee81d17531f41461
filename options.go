package prototxt

import (
	"fmt"
	"log/slog"

	"github.com/KimNorgaard/go-prototxt/parser"
)

// EscapeMode selects how quoted strings are transformed when parsed and
// written.
type EscapeMode = parser.EscapeMode

const (
	// DecodeEscapes decodes escape sequences on parse and re-escapes on
	// output. Strings round-trip. This is the default.
	DecodeEscapes = parser.DecodeEscapes
	// LegacyEscapes escapes the raw string text again on parse and writes
	// strings verbatim on output.
	LegacyEscapes = parser.LegacyEscapes
	// RawStrings keeps string text as written, in both directions.
	RawStrings = parser.RawStrings
)

// Option configures parsing, encoding and decoding.
type Option func(*options) error

type options struct {
	indent     *int
	baseIndent int
	maxDepth   int
	escapes    EscapeMode
	logger     *slog.Logger
	onWarning  func(SerializationWarning)
}

const defaultIndent = 2

func newOptions(opts []Option) (*options, error) {
	o := &options{}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (o *options) indentUnit() int {
	if o.indent == nil {
		return defaultIndent
	}
	return *o.indent
}

func (o *options) parserOptions() []parser.Option {
	return []parser.Option{
		parser.WithEscapeMode(o.escapes),
		parser.WithMaxDepth(o.maxDepth),
	}
}

// Indent sets the number of spaces per nesting level on output.
func Indent(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return fmt.Errorf("prototxt: indent must not be negative")
		}
		o.indent = &n
		return nil
	}
}

// BaseIndent sets the number of spaces in front of top-level fields on
// output.
func BaseIndent(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return fmt.Errorf("prototxt: base indent must not be negative")
		}
		o.baseIndent = n
		return nil
	}
}

// MaxDepth limits how deeply messages may nest when parsing. Without it
// nesting is unbounded.
//
// The depth n must be a positive integer.
func MaxDepth(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("prototxt: max depth must be a positive integer")
		}
		o.maxDepth = n
		return nil
	}
}

// Escapes sets the string escape mode.
func Escapes(m EscapeMode) Option {
	return func(o *options) error {
		switch m {
		case DecodeEscapes, LegacyEscapes, RawStrings:
			o.escapes = m
			return nil
		}
		return fmt.Errorf("prototxt: unknown escape mode %d", m)
	}
}

// WithLogger sets the logger serialization warnings are written to when no
// OnWarning callback is set. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) error {
		o.logger = l
		return nil
	}
}

// OnWarning registers a callback for serialization warnings. It replaces
// the logging of warnings.
func OnWarning(fn func(SerializationWarning)) Option {
	return func(o *options) error {
		o.onWarning = fn
		return nil
	}
}
