package prototxt

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/KimNorgaard/go-prototxt/lexer"
)

// maxExactInt is the largest integer a Number holds without rounding.
const maxExactInt = 1 << 53

// FromValue converts a Go value into a Document. v must be a struct, a map
// with string keys, or a pointer to one of them.
//
// Struct fields are named by the "prototxt" tag, falling back to the field
// name, and keep their declaration order; map keys are sorted. The tag
// options "omitempty" and "ident" skip empty values and write strings as
// bare identifiers. A slice becomes a repeated field, written once per
// element; an empty slice writes no field at all. Values that are already
// a Value, *Document included, are used as they are.
func FromValue(v any) (*Document, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, fmt.Errorf("prototxt: FromValue(nil %s)", rv.Type())
		}
		if d, ok := rv.Interface().(*Document); ok {
			return d, nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil, fmt.Errorf("prototxt: FromValue(nil)")
	}
	return documentOf(rv)
}

// MarshalValue returns the text form of the Go value v. See FromValue.
func MarshalValue(v any, opts ...Option) ([]byte, error) {
	doc, err := FromValue(v)
	if err != nil {
		return nil, err
	}
	return Marshal(doc, opts...)
}

func documentOf(v reflect.Value) (*Document, error) {
	var fields []Field
	add := func(name string, fv reflect.Value, ident bool) error {
		if !isIdentifier(name) {
			return fmt.Errorf("prototxt: field name %q is not an identifier", name)
		}
		val, err := valueOf(fv, ident)
		if err != nil {
			return fmt.Errorf("prototxt: field %s: %w", name, err)
		}
		fields = append(fields, Field{Name: name, Value: val})
		return nil
	}

	switch v.Kind() {
	case reflect.Struct:
		for _, f := range cachedFields(v.Type()) {
			fv := v.FieldByIndex(f.idx)
			if f.omitEmpty && isEmptyValue(fv) {
				continue
			}
			if err := add(f.name, fv, f.ident); err != nil {
				return nil, err
			}
		}
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("prototxt: map key type must be a string, got %s", v.Type().Key())
		}
		keys := v.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return strings.Compare(a.String(), b.String())
		})
		for _, k := range keys {
			if err := add(k.String(), v.MapIndex(k), false); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("prototxt: cannot convert %s into a document", v.Type())
	}
	return FromFields(fields...), nil
}

func valueOf(v reflect.Value, ident bool) (Value, error) {
	if v.IsValid() && v.CanInterface() {
		if val, ok := v.Interface().(Value); ok && val != nil {
			return val, nil
		}
	}
	// Follow pointers and interfaces to find the concrete value.
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return Null{}, nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.String:
		if ident {
			if !isIdentValue(v.String()) {
				return nil, fmt.Errorf("%q cannot be written as an identifier", v.String())
			}
			return Identifier(v.String()), nil
		}
		return String(v.String()), nil
	case reflect.Bool:
		return Bool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := v.Int()
		if n > maxExactInt || n < -maxExactInt {
			return nil, fmt.Errorf("integer %d cannot be represented exactly", n)
		}
		return Number(n), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n := v.Uint()
		if n > maxExactInt {
			return nil, fmt.Errorf("integer %d cannot be represented exactly", n)
		}
		return Number(n), nil
	case reflect.Float32, reflect.Float64:
		return Number(v.Float()), nil
	case reflect.Slice, reflect.Array:
		list := make(Repeated, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			elem, err := valueOf(v.Index(i), ident)
			if err != nil {
				return nil, err
			}
			if _, ok := elem.(Repeated); ok {
				return nil, fmt.Errorf("nested lists are not supported")
			}
			list = append(list, elem)
		}
		return list, nil
	case reflect.Map, reflect.Struct:
		return documentOf(v)
	case reflect.Invalid:
		return Null{}, nil
	}
	return nil, fmt.Errorf("unsupported type %s", v.Type())
}

func isIdentifier(s string) bool {
	tok, ok := lexer.New([]byte(s)).Identifier()
	return ok && tok.Literal == s
}

// isIdentValue reports whether s reads back as an identifier in value
// position, where numbers and keywords are tried first.
func isIdentValue(s string) bool {
	doc, err := ParseString("v: " + s)
	if err != nil {
		return false
	}
	v, _ := doc.Get("v")
	return v == Identifier(s)
}

// isEmptyValue reports whether v is empty in the encoding/json sense:
// false, 0, a nil pointer, a nil interface value, and any empty array,
// slice, map, or string.
func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}

// structField is a cached struct field.
type structField struct {
	name      string
	idx       []int
	omitEmpty bool
	ident     bool
}

// fieldCache maps a struct type to its fields in declaration order.
var fieldCache sync.Map

// cachedFields parses the tags of struct type t once. Unexported fields
// and fields tagged "-" are skipped; untagged embedded structs contribute
// their own fields.
func cachedFields(t reflect.Type) []structField {
	if f, ok := fieldCache.Load(t); ok {
		return f.([]structField)
	}

	var fields []structField
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag := sf.Tag.Get("prototxt")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")

		if sf.Anonymous && name == "" && sf.Type.Kind() == reflect.Struct {
			for _, f := range cachedFields(sf.Type) {
				f.idx = append([]int{i}, f.idx...)
				fields = append(fields, f)
			}
			continue
		}
		if !sf.IsExported() {
			continue
		}

		f := structField{name: name, idx: sf.Index}
		if f.name == "" {
			f.name = sf.Name
		}
		for opts != "" {
			var opt string
			opt, opts, _ = strings.Cut(opts, ",")
			switch opt {
			case "omitempty":
				f.omitEmpty = true
			case "ident":
				f.ident = true
			}
		}
		fields = append(fields, f)
	}

	fieldCache.Store(t, fields)
	return fields
}
