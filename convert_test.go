package prototxt_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KimNorgaard/go-prototxt"
	"github.com/KimNorgaard/go-prototxt/internal/sample"
)

type edgeValue struct {
	Node string `prototxt:"node_name,omitempty"`
	Type string `prototxt:"node_type,ident,omitempty"`
	In   string `prototxt:"in_name"`
	Out  string `prototxt:"out_name"`
}

type meta struct {
	Owner *string `prototxt:"owner"`
}

type graphValue struct {
	meta
	Name    string      `prototxt:"name"`
	Edges   []edgeValue `prototxt:"StaticDAGParam"`
	Retries int         `prototxt:"retries,omitempty"`
	Ratio   float64     `prototxt:"ratio"`
	Debug   bool        `prototxt:"debug"`
	Tags    []string    `prototxt:"tag"`
	Skip    string      `prototxt:"-"`
	hidden  string
}

func TestMarshalValue(t *testing.T) {
	g := graphValue{
		Name: "g",
		Edges: []edgeValue{
			{Type: "LOCAL", Out: "a"},
			{Node: "a", In: "a"},
		},
		Ratio:  0.5,
		Skip:   "skip",
		hidden: "hidden",
	}

	b, err := prototxt.MarshalValue(&g)
	require.NoError(t, err)
	require.Equal(t, `owner: null
name: "g"
StaticDAGParam {
  node_type: LOCAL
  in_name: ""
  out_name: "a"
}
StaticDAGParam {
  node_name: "a"
  in_name: "a"
  out_name: ""
}
ratio: 0.5
debug: false
`, string(b))

	g.Tags = []string{"x"}
	g.Retries = 3
	doc, err := prototxt.FromValue(g)
	require.NoError(t, err)
	require.Equal(t, []string{"owner", "name", "StaticDAGParam", "retries", "ratio", "debug", "tag"}, doc.Keys())
	require.Equal(t, []prototxt.Value{prototxt.String("x")}, doc.Lookup("tag"))
}

func TestFromValueMap(t *testing.T) {
	doc, err := prototxt.FromValue(map[string]any{
		"b":     []any{1, "two", nil},
		"a":     map[string]int{"n": 1},
		"value": prototxt.Identifier("LOCAL"),
	})
	require.NoError(t, err)
	require.Equal(t, "a {\n  n: 1\n}\nb: 1\nb: \"two\"\nb: null\nvalue: LOCAL\n", doc.String())
}

func TestFromValueDocument(t *testing.T) {
	doc := mustParse(t, "a: 1")
	got, err := prototxt.FromValue(doc)
	require.NoError(t, err)
	require.Same(t, doc, got)

	got, err = prototxt.FromValue(struct {
		Inner *prototxt.Document `prototxt:"inner"`
	}{doc})
	require.NoError(t, err)
	require.Equal(t, "inner {\n  a: 1\n}\n", got.String())
}

func TestFromValueRoundTrip(t *testing.T) {
	var p pipeline
	require.NoError(t, prototxt.Unmarshal(sample.Pipeline, &p))

	doc, err := prototxt.FromValue(p)
	require.NoError(t, err)

	var back pipeline
	require.NoError(t, prototxt.DecodeDocument(doc, &back))
	require.Equal(t, p, back)
}

func TestFromValueErrors(t *testing.T) {
	for name, tc := range map[string]struct {
		v      any
		errMsg string
	}{
		"nil":            {v: nil, errMsg: "prototxt: FromValue(nil)"},
		"nil pointer":    {v: (*graphValue)(nil), errMsg: "prototxt: FromValue(nil *prototxt_test.graphValue)"},
		"scalar":         {v: 42, errMsg: "prototxt: cannot convert int into a document"},
		"int keys":       {v: map[int]string{1: "a"}, errMsg: "prototxt: map key type must be a string, got int"},
		"bad name":       {v: map[string]int{"a b": 1}, errMsg: `prototxt: field name "a b" is not an identifier`},
		"nested list":    {v: map[string]any{"l": [][]int{{1}}}, errMsg: "prototxt: field l: nested lists are not supported"},
		"channel":        {v: map[string]any{"c": make(chan int)}, errMsg: "prototxt: field c: unsupported type chan int"},
		"big int":        {v: map[string]uint64{"n": 1<<53 + 1}, errMsg: "prototxt: field n: integer 9007199254740993 cannot be represented exactly"},
		"bad identifier": {v: edgeValue{Type: "not ident"}, errMsg: `prototxt: field node_type: "not ident" cannot be written as an identifier`},
		"keyword prefix": {v: edgeValue{Type: "true_x"}, errMsg: `prototxt: field node_type: "true_x" cannot be written as an identifier`},
		"number-like":    {v: edgeValue{Type: "-1"}, errMsg: `prototxt: field node_type: "-1" cannot be written as an identifier`},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := prototxt.FromValue(tc.v)
			require.EqualError(t, err, tc.errMsg)
		})
	}
}
