package prototxt

import (
	"fmt"

	perrors "github.com/KimNorgaard/go-prototxt/errors"
)

// ParseError is returned by Parse when the input does not match the
// grammar.
type ParseError = perrors.ParseError

// SerializationWarning describes a value the serializer does not know how
// to write. The value is written with its default fmt formatting and the
// rest of the document is unaffected.
type SerializationWarning struct {
	// Path is the dotted field path, e.g. "graphParam.StaticDAGParam".
	Path  string
	Value any
}

func (w SerializationWarning) String() string {
	return fmt.Sprintf("prototxt: unsupported value of type %T at %s", w.Value, w.Path)
}

// A DecodeError is returned when a Document cannot be stored in the Go value
// passed to Unmarshal or Decode.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "prototxt: decode: " + e.Err.Error() }

func (e *DecodeError) Unwrap() error { return e.Err }
