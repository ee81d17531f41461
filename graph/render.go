package graph

import (
	"encoding/json"
	"fmt"
	"strings"
)

// View is the shape the browser chart consumes.
type View struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// View returns the node set and the flat link list.
func (d *Data) View() View {
	v := View{Nodes: d.Nodes, Links: d.Links}
	if v.Nodes == nil {
		v.Nodes = []Node{}
	}
	if v.Links == nil {
		v.Links = []Link{}
	}
	return v
}

// JSON returns the View encoded as indented JSON.
func (d *Data) JSON() ([]byte, error) {
	return json.MarshalIndent(d.View(), "", "  ")
}

// Mermaid produces a Mermaid flowchart of every graph, one subgraph per
// declaration. Links of type REMOTE are dotted, every other type is a
// solid arrow labeled with the type. The empty name is drawn as a start
// circle. Double quotes in labels become single quotes, and names that
// sanitize to the same ID get a numeric suffix.
func (d *Data) Mermaid() string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")
	ids := newMermaidIDs()

	for _, n := range d.Nodes {
		safeID := ids.node(n.ID)
		if n.ID == "" {
			sb.WriteString(fmt.Sprintf("    %s((\"start\"))\n", safeID))
			continue
		}
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", safeID, safeLabel(n.ID)))
	}

	for _, g := range d.Graphs {
		sb.WriteString(fmt.Sprintf("    subgraph %s[\"%s\"]\n", ids.graph(g.Name), safeLabel(g.Name)))
		for _, l := range g.Links {
			if l.Target == "" {
				continue
			}
			safeType := safeLabel(l.Type)
			arrow := fmt.Sprintf("-- \"%s\" -->", safeType)
			if l.Type == "REMOTE" {
				arrow = fmt.Sprintf("-. \"%s\" .->", safeType)
			}
			if l.Type == "" {
				arrow = "-->"
			}
			sb.WriteString(fmt.Sprintf("        %s %s %s\n", ids.node(l.Source), arrow, ids.node(l.Target)))
		}
		sb.WriteString("    end\n")
	}

	return sb.String()
}

func safeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

// mermaidIDs hands out one distinct Mermaid ID per name.
type mermaidIDs struct {
	nodes  map[string]string
	graphs map[string]string
	used   map[string]bool
}

func newMermaidIDs() *mermaidIDs {
	return &mermaidIDs{
		nodes:  make(map[string]string),
		graphs: make(map[string]string),
		used:   make(map[string]bool),
	}
}

func (m *mermaidIDs) node(name string) string {
	return m.assign(m.nodes, name, sanitizeMermaidID(name))
}

func (m *mermaidIDs) graph(name string) string {
	return m.assign(m.graphs, name, sanitizeMermaidID("graph_"+name))
}

func (m *mermaidIDs) assign(seen map[string]string, name, base string) string {
	if id, ok := seen[name]; ok {
		return id
	}
	id := base
	for n := 2; m.used[id]; n++ {
		id = fmt.Sprintf("%s_%d", base, n)
	}
	seen[name] = id
	m.used[id] = true
	return id
}

func sanitizeMermaidID(id string) string {
	if id == "" {
		return "__start__"
	}
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "\"", "_")
	return s
}
