package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KimNorgaard/go-prototxt"
	"github.com/KimNorgaard/go-prototxt/internal/sample"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pipeline.prototxt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFmtDemo(t *testing.T) {
	doc, err := prototxt.Parse(sample.Pipeline)
	require.NoError(t, err)
	expected, err := prototxt.Marshal(doc)
	require.NoError(t, err)

	out, err := run(t, "", "fmt", "--demo")
	require.NoError(t, err)
	require.Equal(t, string(expected), out)
}

func TestFmtStdin(t *testing.T) {
	out, err := run(t, "a:1 b { c: x }", "fmt", "--indent", "4")
	require.NoError(t, err)
	require.Equal(t, "a: 1\nb {\n    c: x\n}\n", out)

	out, err = run(t, "a:1", "fmt", "-")
	require.NoError(t, err)
	require.Equal(t, "a: 1\n", out)
}

func TestFmtWrite(t *testing.T) {
	path := writeFile(t, "a:1\nb { c: x }")

	out, err := run(t, "", "fmt", "-w", path)
	require.NoError(t, err)
	require.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "a: 1\nb {\n  c: x\n}\n", string(data))

	_, err = run(t, "a: 1", "fmt", "-w")
	require.ErrorContains(t, err, "-w needs a file argument")
}

func TestFmtDiff(t *testing.T) {
	path := writeFile(t, "a:1\nb: 2\n")

	out, err := run(t, "", "fmt", "--diff", path)
	require.NoError(t, err)
	require.Contains(t, out, "--- "+path+"\n+++ "+path+" (formatted)\n")
	require.Contains(t, out, "-a:1\n")
	require.Contains(t, out, "+a: 1\n")
	require.Contains(t, out, " b: 2\n")
	require.NotContains(t, out, "@@")

	out, err = run(t, "", "fmt", "-d", writeFile(t, "a: 1\n"))
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestFmtParseError(t *testing.T) {
	_, err := run(t, "a: 01", "fmt")
	require.ErrorContains(t, err, "<stdin>: prototxt: parsing error at line 1, column 5")
}

func TestCheck(t *testing.T) {
	good := writeFile(t, "a: 1")
	bad := filepath.Join(t.TempDir(), "bad.prototxt")
	require.NoError(t, os.WriteFile(bad, []byte("a: 01"), 0o644))

	out, err := run(t, "", "check", good)
	require.NoError(t, err)
	require.Equal(t, good+": ok\n", out)

	out, err = run(t, "", "check", good, bad)
	require.EqualError(t, err, "1 of 2 inputs failed")
	require.Contains(t, out, bad+`:1:5: unexpected "1"`)
	require.Contains(t, out, "EOF")
}

func TestCheckGraph(t *testing.T) {
	out, err := run(t, "", "check", "--demo", "--graph")
	require.NoError(t, err)
	require.Contains(t, out, `demo: graph "IVR_finance": node "IvrFaqSearch" links to undeclared component "IvrOrder"`)
	require.Contains(t, out, "demo: ok\n")

	_, err = run(t, "", "check", "--demo", "--graph", "--strict")
	require.EqualError(t, err, "1 of 1 inputs failed")
}

func TestGraph(t *testing.T) {
	out, err := run(t, "", "graph", "--demo")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "graph LR\n"))
	require.Contains(t, out, "MTSegWord -. \"REMOTE\" .-> IvrFaqSearch")

	out, err = run(t, "", "graph", "--demo", "-f", "json")
	require.NoError(t, err)
	var view struct {
		Nodes []map[string]string `json:"nodes"`
		Links []map[string]string `json:"links"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	require.Len(t, view.Nodes, 7)
	require.Len(t, view.Links, 6)

	_, err = run(t, "", "graph", "--demo", "-f", "dot")
	require.ErrorContains(t, err, `unknown format "dot"`)
}

func TestComponent(t *testing.T) {
	out, err := run(t, "", "component", "MTSegWord", "--demo")
	require.NoError(t, err)
	require.Equal(t, `componentParam {
  name: "MTSegWord"
  type: MTSegWord
  segParam {
    dict_path: "resource/conf_dict/seg"
    enable_ner: true
    threshold: 0.75
  }
}
`, out)

	out, err = run(t, "", "component", "PreProcess", "--demo", "--links")
	require.NoError(t, err)
	require.Contains(t, out, "# out IVR_routing_robot: PreProcess -> IVRComponent (LOCAL)\n")
	require.Contains(t, out, "# out IVR_finance: PreProcess -> IvrOrder (LOCAL)\n")

	_, err = run(t, "", "component", "IvrOrder", "--demo")
	require.EqualError(t, err, `component "IvrOrder" does not exist`)
}

func TestComponents(t *testing.T) {
	out, err := run(t, "", "components", "--demo")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	require.True(t, strings.HasPrefix(lines[0], "NAME"))
	require.Contains(t, lines[2], "IVRComponent")
	require.Contains(t, lines[2], "IVRShareDataType")
}

func TestExport(t *testing.T) {
	out, err := run(t, "a: 1\nb: LOCAL\nb: \"x\"", "export")
	require.NoError(t, err)
	require.JSONEq(t, `{"a": 1, "b": ["LOCAL", "x"]}`, out)

	out, err = run(t, "a: 1\nm { s: \"x\" }", "export", "-f", "yaml")
	require.NoError(t, err)
	require.Equal(t, "a: 1\nm:\n  s: \"x\"\n", out)

	_, err = run(t, "a: 1", "export", "-f", "toml")
	require.ErrorContains(t, err, `unknown format "toml"`)
}

func TestInvalidFlags(t *testing.T) {
	_, err := run(t, "", "fmt", "--demo", "--log-level", "loud")
	require.ErrorContains(t, err, "unknown log level")

	_, err = run(t, "", "fmt", "--demo", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "failed to read config")
}
