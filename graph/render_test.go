package graph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KimNorgaard/go-prototxt"
	"github.com/KimNorgaard/go-prototxt/graph"
)

const smallGraph = `
graphParam {
  name: "g"
  StaticDAGParam { node_name: "a" node_type: REMOTE in_name: "" out_name: "a.b" }
  StaticDAGParam { in_name: "a.b" out_name: "" }
}
`

func extract(t *testing.T, input string) *graph.Data {
	t.Helper()
	doc, err := prototxt.ParseString(input)
	require.NoError(t, err)
	return graph.Extract(doc, graph.DefaultConfig())
}

func TestMermaid(t *testing.T) {
	expected := `graph LR
    __start__(("start"))
    a_b["a.b"]
    subgraph graph_g["g"]
        __start__ -. "REMOTE" .-> a_b
    end
`
	require.Equal(t, expected, extract(t, smallGraph).Mermaid())
}

func TestMermaidSample(t *testing.T) {
	out := extractSample(t).Mermaid()
	require.Contains(t, out, "    subgraph graph_IVR_routing_robot[\"IVR_routing_robot\"]\n")
	require.Contains(t, out, "        __start__ -- \"LOCAL\" --> MTSegWord\n")
	require.Contains(t, out, "        MTSegWord -. \"REMOTE\" .-> IvrFaqSearch\n")
	require.Contains(t, out, "        PreProcess -- \"LOCAL\" --> IvrOrder\n")
	require.Contains(t, out, "    IvrOrder[\"IvrOrder\"]\n")
}

func TestMermaidUntypedLink(t *testing.T) {
	out := extract(t, `graphParam { name: "x-y" StaticDAGParam { in_name: "p q" out_name: "r/s" } }`).Mermaid()
	require.Contains(t, out, "    subgraph graph_x_y[\"x-y\"]\n")
	require.Contains(t, out, "        p_q --> r_s\n")
}

func TestMermaidQuotesAndCollidingIDs(t *testing.T) {
	data := extract(t, `graphParam {
  name: 'say "x"'
  StaticDAGParam { in_name: "a.b" out_name: "a_b" node_type: 'T"1' }
}`)
	expected := `graph LR
    a_b["a.b"]
    a_b_2["a_b"]
    subgraph graph_say__x_["say 'x'"]
        a_b -- "T'1" --> a_b_2
    end
`
	require.Equal(t, expected, data.Mermaid())
}

func TestJSON(t *testing.T) {
	b, err := extract(t, smallGraph).JSON()
	require.NoError(t, err)
	require.JSONEq(t, `{
  "nodes": [{"id": ""}, {"id": "a.b"}],
  "links": [
    {"graph": "g", "node": "a", "source": "", "target": "a.b", "type": "REMOTE"},
    {"graph": "g", "source": "a.b", "target": "", "type": ""}
  ]
}`, string(b))

	b, err = extract(t, "").JSON()
	require.NoError(t, err)
	require.JSONEq(t, `{"nodes": [], "links": []}`, string(b))
}
