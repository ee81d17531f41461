package prototxt

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies the variant of a Value.
type Kind int

const (
	NullKind Kind = iota
	BoolKind
	NumberKind
	StringKind
	IdentifierKind
	MessageKind
	RepeatedKind
)

var kindNames = [...]string{
	NullKind:       "null",
	BoolKind:       "bool",
	NumberKind:     "number",
	StringKind:     "string",
	IdentifierKind: "identifier",
	MessageKind:    "message",
	RepeatedKind:   "repeated",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Value is a field value. The set of implementations is closed: Null,
// Bool, Number, String, Identifier, *Document and Repeated.
type Value interface {
	Kind() Kind
	isValue()
}

// Null is the null literal.
type Null struct{}

// Bool is true or false.
type Bool bool

// Number is a numeric literal. All numbers are doubles.
type Number float64

// String is a quoted string. Output always uses double quotes.
type String string

// Identifier is an unquoted word in value position, such as an enum name.
// It is kept apart from String so it can be written back without quotes.
type Identifier string

// Repeated holds the values of a field name that occurred more than once
// in the same message, in the order they were seen. Its elements are never
// Repeated themselves.
type Repeated []Value

func (Null) Kind() Kind       { return NullKind }
func (Bool) Kind() Kind       { return BoolKind }
func (Number) Kind() Kind     { return NumberKind }
func (String) Kind() Kind     { return StringKind }
func (Identifier) Kind() Kind { return IdentifierKind }
func (Repeated) Kind() Kind   { return RepeatedKind }
func (*Document) Kind() Kind  { return MessageKind }

func (Null) isValue()       {}
func (Bool) isValue()       {}
func (Number) isValue()     {}
func (String) isValue()     {}
func (Identifier) isValue() {}
func (Repeated) isValue()   {}
func (*Document) isValue()  {}

func (Null) String() string { return "null" }

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

// String formats n the way it is written on output: plain decimal notation
// between 1e-6 and 1e21, exponent notation outside that range.
func (n Number) String() string {
	f := float64(n)
	switch {
	case f == 0:
		return "0"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	if a := math.Abs(f); a >= 1e21 || a < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		// 1e-07 is written 1e-7
		s = strings.Replace(s, "e-0", "e-", 1)
		return strings.Replace(s, "e+0", "e+", 1)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Interface converts v into plain Go values: nil, bool, float64, string,
// map[string]any and []any. Identifiers and strings both become string.
func Interface(v Value) any {
	switch v := v.(type) {
	case Null:
		return nil
	case Bool:
		return bool(v)
	case Number:
		return float64(v)
	case String:
		return string(v)
	case Identifier:
		return string(v)
	case *Document:
		return v.Interface()
	case Repeated:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = Interface(e)
		}
		return out
	default:
		return nil
	}
}

// Equal reports whether a and b hold the same variant and the same data.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		b, ok := b.(Bool)
		return ok && a == b
	case Number:
		b, ok := b.(Number)
		return ok && (a == b || (math.IsNaN(float64(a)) && math.IsNaN(float64(b))))
	case String:
		b, ok := b.(String)
		return ok && a == b
	case Identifier:
		b, ok := b.(Identifier)
		return ok && a == b
	case *Document:
		b, ok := b.(*Document)
		return ok && a.Equal(b)
	case Repeated:
		b, ok := b.(Repeated)
		if !ok || len(a) != len(b) {
			return false
		}
		for i := range a {
			if !Equal(a[i], b[i]) {
				return false
			}
		}
		return true
	default:
		return a == nil && b == nil
	}
}
