package prototxt

import (
	"iter"
	"slices"
)

// Field is a named value in a Document.
type Field struct {
	Name  string
	Value Value
}

// Document is a parsed message body: field names mapped to values, in the
// order the names first appeared. Documents are built once by Parse, Build
// or FromFields and are not modified afterwards. A nil *Document is an
// empty document.
type Document struct {
	fields []Field
	index  map[string]int
}

// Len returns the number of distinct field names.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.fields)
}

// Get returns the value stored under name.
func (d *Document) Get(name string) (Value, bool) {
	if d == nil {
		return nil, false
	}
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return clone(d.fields[i].Value), true
}

// Has reports whether name is present.
func (d *Document) Has(name string) bool {
	_, ok := d.Get(name)
	return ok
}

// Lookup returns the values under name as a list: every element of a
// Repeated field, the single value otherwise, nil when name is absent.
func (d *Document) Lookup(name string) []Value {
	v, ok := d.Get(name)
	if !ok {
		return nil
	}
	if r, ok := v.(Repeated); ok {
		return r
	}
	return []Value{v}
}

// Keys returns the field names in order.
func (d *Document) Keys() []string {
	keys := make([]string, 0, d.Len())
	for name := range d.All() {
		keys = append(keys, name)
	}
	return keys
}

// Fields returns a copy of the fields in order.
func (d *Document) Fields() []Field {
	out := make([]Field, 0, d.Len())
	for name, v := range d.All() {
		out = append(out, Field{Name: name, Value: v})
	}
	return out
}

// All iterates over the fields in order.
func (d *Document) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if d == nil {
			return
		}
		for _, f := range d.fields {
			if !yield(f.Name, clone(f.Value)) {
				return
			}
		}
	}
}

// Equal reports whether d and o have the same fields in the same order
// with equal values.
func (d *Document) Equal(o *Document) bool {
	if d.Len() != o.Len() {
		return false
	}
	for i := 0; i < d.Len(); i++ {
		a, b := d.fields[i], o.fields[i]
		if a.Name != b.Name || !Equal(a.Value, b.Value) {
			return false
		}
	}
	return true
}

// Interface converts the document into a map of plain Go values. See the
// package level Interface function.
func (d *Document) Interface() map[string]any {
	m := make(map[string]any, d.Len())
	for name, v := range d.All() {
		m[name] = Interface(v)
	}
	return m
}

// String returns the serialized form of d.
func (d *Document) String() string {
	return Serialize(d, 0)
}

// clone copies Repeated lists so callers cannot modify a document through
// a returned value.
func clone(v Value) Value {
	if r, ok := v.(Repeated); ok {
		return slices.Clone(r)
	}
	return v
}
