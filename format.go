package prototxt

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/KimNorgaard/go-prototxt/internal/escape"
)

// formatter writes a Document to an output stream.
type formatter struct {
	w       io.Writer
	unit    int
	escapes EscapeMode
	warn    func(SerializationWarning)
	err     error
}

// newFormatter returns a new formatter that writes to w.
func newFormatter(w io.Writer, opts *options) *formatter {
	f := &formatter{w: w, unit: opts.indentUnit(), escapes: opts.escapes, warn: opts.onWarning}
	if f.warn == nil {
		logger := opts.logger
		if logger == nil {
			logger = slog.Default()
		}
		f.warn = func(w SerializationWarning) {
			logger.Warn("prototxt: unsupported value", "path", w.Path, "type", fmt.Sprintf("%T", w.Value))
		}
	}
	return f
}

// format writes doc with its fields indented by indent spaces. It only
// fails when the writer does.
func (f *formatter) format(doc *Document, indent int) error {
	f.writeDocument(doc, indent, "")
	return f.err
}

func (f *formatter) write(parts ...string) {
	if f.err != nil {
		return
	}
	for _, s := range parts {
		if _, err := io.WriteString(f.w, s); err != nil {
			f.err = err
			return
		}
	}
}

func (f *formatter) writeDocument(doc *Document, indent int, path string) {
	if doc == nil {
		return
	}
	for _, field := range doc.fields {
		p := field.Name
		if path != "" {
			p = path + "." + field.Name
		}
		if list, ok := field.Value.(Repeated); ok {
			for _, v := range list {
				f.writeField(field.Name, v, indent, p)
			}
			continue
		}
		f.writeField(field.Name, field.Value, indent, p)
	}
}

func (f *formatter) writeField(key string, v Value, indent int, path string) {
	pad := strings.Repeat(" ", indent)
	switch v := v.(type) {
	case *Document:
		f.write(pad, key, " {\n")
		f.writeDocument(v, indent+f.unit, path)
		f.write(pad, "}\n")
	case Identifier:
		f.write(pad, key, ": ", string(v), "\n")
	case Number:
		f.write(pad, key, ": ", formatNumber(v), "\n")
	case Bool:
		f.write(pad, key, ": ", v.String(), "\n")
	case Null:
		f.write(pad, key, ": null\n")
	case String:
		f.write(pad, key, ": \"", f.quote(string(v)), "\"\n")
	default:
		// Repeated inside Repeated, or a nil value.
		f.warn(SerializationWarning{Path: path, Value: v})
		f.write(pad, key, ": ", fmt.Sprint(v), "\n")
	}
}

// formatNumber writes infinities as out-of-range literals so that they
// parse back to the same value.
func formatNumber(n Number) string {
	switch {
	case math.IsInf(float64(n), 1):
		return "1e999"
	case math.IsInf(float64(n), -1):
		return "-1e999"
	}
	return n.String()
}

func (f *formatter) quote(s string) string {
	switch f.escapes {
	case DecodeEscapes:
		return escape.Escape(s)
	case RawStrings:
		// Text from single-quoted literals may hold bare double quotes.
		return escape.Quotes(s)
	}
	return s
}
