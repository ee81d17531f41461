package prototxt

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Encoder writes Documents to an output stream.
type Encoder struct {
	w    io.Writer
	opts []Option
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return &Encoder{w: w, opts: opts}
}

// Encode writes the text form of doc to the stream. Values the serializer
// does not recognize produce a SerializationWarning, not an error; errors
// come only from the options or the writer.
func (e *Encoder) Encode(doc *Document) error {
	o, err := newOptions(e.opts)
	if err != nil {
		return err
	}
	if err := newFormatter(e.w, o).format(doc, o.baseIndent); err != nil {
		return fmt.Errorf("prototxt: %w", err)
	}
	return nil
}

// Marshal returns the text form of doc.
func Marshal(doc *Document, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf, opts...).Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Serialize renders doc with top-level fields indented by indentLevel
// spaces and two more spaces per nesting level. Nested message braces
// line up with their key. Serialize never fails; unsupported values are
// logged through slog.Default and written as-is.
func Serialize(doc *Document, indentLevel int) string {
	var b strings.Builder
	// A strings.Builder never returns a write error.
	_ = newFormatter(&b, &options{}).format(doc, max(indentLevel, 0))
	return b.String()
}
