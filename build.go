package prototxt

import (
	"slices"

	"github.com/KimNorgaard/go-prototxt/ast"
)

// Build reduces parsed entries into a new Document. Comments are dropped.
// A name seen once maps to its value; a name seen again turns into a
// Repeated list holding every value in encounter order. Values of one name
// need not share a kind.
func Build(entries []ast.Entry) *Document {
	return fold(entries, func(e ast.Entry) (Field, bool) {
		switch e := e.(type) {
		case *ast.Pair:
			return Field{Name: e.Key.Value, Value: scalar(e.Value)}, true
		case *ast.Message:
			return Field{Name: e.Key.Value, Value: Build(e.Body)}, true
		default:
			return Field{}, false
		}
	})
}

// FromFields builds a Document from fields with the same rules as Build:
// repeated names collect into a Repeated list, and a Repeated value adds
// each of its elements. Nil elements are dropped, so an empty Repeated
// adds nothing and a one-element Repeated adds a single value.
func FromFields(fields ...Field) *Document {
	return fold(fields, func(f Field) (Field, bool) {
		return f, f.Value != nil
	})
}

func fold[T any](items []T, field func(T) (Field, bool)) *Document {
	d := &Document{index: make(map[string]int)}
	for _, item := range items {
		f, ok := field(item)
		if !ok {
			continue
		}
		if f.Value = normalize(f.Value); f.Value == nil {
			continue
		}
		i, seen := d.index[f.Name]
		if !seen {
			d.index[f.Name] = len(d.fields)
			d.fields = append(d.fields, Field{Name: f.Name, Value: clone(f.Value)})
			continue
		}
		d.fields[i].Value = combine(d.fields[i].Value, f.Value)
	}
	return d
}

// normalize drops nil elements from a Repeated value. An empty list
// becomes nil and a list of one non-list element becomes that element.
// Lists nested in a list are kept; they cannot be written and the
// serializer reports them.
func normalize(v Value) Value {
	r, ok := v.(Repeated)
	if !ok {
		return v
	}
	out := make(Repeated, 0, len(r))
	for _, e := range r {
		if e != nil {
			out = append(out, e)
		}
	}
	switch len(out) {
	case 0:
		return nil
	case 1:
		if _, nested := out[0].(Repeated); !nested {
			return out[0]
		}
	}
	return out
}

// combine appends next to prev, producing a new list.
func combine(prev, next Value) Repeated {
	var out Repeated
	if r, ok := prev.(Repeated); ok {
		out = slices.Clone(r)
	} else {
		out = Repeated{prev}
	}
	if r, ok := next.(Repeated); ok {
		return append(out, r...)
	}
	return append(out, next)
}

func scalar(v ast.Value) Value {
	switch v := v.(type) {
	case *ast.NullLiteral:
		return Null{}
	case *ast.BooleanLiteral:
		return Bool(v.Value)
	case *ast.NumberLiteral:
		return Number(v.Value)
	case *ast.StringLiteral:
		return String(v.Value)
	case *ast.Identifier:
		return Identifier(v.Value)
	default:
		return Null{}
	}
}
