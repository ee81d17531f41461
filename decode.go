package prototxt

import (
	"fmt"
	"io"

	"github.com/mitchellh/mapstructure"
)

// Decoder reads a document from an input stream and stores it in Go
// values.
type Decoder struct {
	r    io.Reader
	opts []Option
}

// NewDecoder returns a new decoder that reads from r.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{r: r, opts: opts}
}

// Decode reads all of the input, parses it and stores the result in the
// value pointed to by out. See Unmarshal.
func (d *Decoder) Decode(out any) error {
	if d.r == nil {
		return fmt.Errorf("prototxt: Decode(nil reader)")
	}
	data, err := io.ReadAll(d.r)
	if err != nil {
		return err
	}
	return Unmarshal(data, out, d.opts...)
}

// Unmarshal parses data and stores the result in the value pointed to by
// v.
//
// Fields are matched by the "prototxt" struct tag, falling back to a
// case-insensitive match on the field name. Since a field only becomes a
// list once it repeats, a single occurrence decodes into a slice of
// length one, and numbers decode into any numeric Go type.
func Unmarshal(data []byte, v any, opts ...Option) error {
	doc, err := Parse(data, opts...)
	if err != nil {
		return err
	}
	return DecodeDocument(doc, v)
}

// DecodeDocument stores doc in the value pointed to by v, as Unmarshal
// does.
func DecodeDocument(doc *Document, v any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "prototxt",
		WeaklyTypedInput: true,
		Result:           v,
	})
	if err != nil {
		return &DecodeError{Err: err}
	}
	if err := dec.Decode(doc.Interface()); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}
