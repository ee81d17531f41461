/*
Package prototxt parses and writes a protobuf-text-like configuration
format: nested key/value messages, repeated fields, "#" comments and typed
scalars.

	# pipeline components
	componentParam {
	  name: "PreProcess"
	  type: PreProcess
	  preProcessParam {
	    delete_mark: " "
	    delete_mark: "\t"
	  }
	}

There is no schema. A field written more than once in the same message
becomes a Repeated list, a field written once holds its single value. A
message may be opened with or without a colon, so "foo { }" and
"foo: { }" are the same thing.

1. Parsing into a Document

Parse returns a *Document, an ordered mapping from field name to Value.
Value is a closed set of types: Null, Bool, Number, String (quoted),
Identifier (unquoted), *Document (a nested message) and Repeated. A type
switch over these covers every case:

	doc, err := prototxt.Parse(data)
	if err != nil {
		// err is a *prototxt.ParseError with line, column and expectations
	}
	for name, v := range doc.All() {
		switch v := v.(type) {
		case prototxt.Identifier:
			// an enum-like bare word, e.g. LOCAL
		case prototxt.Repeated:
			// the field occurred len(v) times
		}
	}

Comments are dropped by Parse. ParseAST returns the syntax tree with
comments and positions if they are needed.

2. Writing text

Serialize and Marshal write a Document back out, one field per line and
two spaces per nesting level. Identifiers are written without quotes and
strings always with double quotes, so the output parses back to the same
Document, although it need not match the original text byte for byte.

	out, err := prototxt.Marshal(doc, prototxt.Indent(4))

3. Decoding into Go values

Unmarshal decodes into structs and maps using the "prototxt" struct tag:

	type Component struct {
		Name string `prototxt:"name"`
		Type string `prototxt:"type"`
	}
	var cfg struct {
		Components []Component `prototxt:"componentParam"`
	}
	err := prototxt.Unmarshal(data, &cfg)

Quoted strings have their escape sequences decoded on parse and re-escaped
on output. The Escapes option selects other behaviors.
*/
package prototxt
